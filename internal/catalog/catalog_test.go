package catalog

import "testing"

func TestCourseByID(t *testing.T) {
	meta, ok := CourseByID("BCA")
	if !ok {
		t.Fatal("BCA 应存在")
	}
	if meta.Name != "Bachelor of Computer Applications" {
		t.Errorf("期望课程名=Bachelor of Computer Applications，实际=%s", meta.Name)
	}
	if meta.Semesters != 6 {
		t.Errorf("期望学期数=6，实际=%d", meta.Semesters)
	}

	if _, ok := CourseByID("MBA"); ok {
		t.Error("未定义课程不应存在")
	}
}

func TestSubjects(t *testing.T) {
	subjects := Subjects("BCA", 1)
	if len(subjects) != 4 {
		t.Fatalf("期望 BCA 第1学期 4 门科目，实际=%d", len(subjects))
	}
	if subjects[0] != "Programming in C" {
		t.Errorf("期望首科目=Programming in C，实际=%s", subjects[0])
	}

	if got := Subjects("BCA", 99); len(got) != 0 {
		t.Errorf("未定义学期应返回空列表，实际=%v", got)
	}
	if got := Subjects("UNKNOWN", 1); len(got) != 0 {
		t.Errorf("未定义课程应返回空列表，实际=%v", got)
	}
}

func TestSemesterOptions(t *testing.T) {
	opts := SemesterOptions("BCA")
	if len(opts) != 6 {
		t.Fatalf("期望 BCA 6 个学期选项，实际=%d", len(opts))
	}
	if opts[0].Label != "Semester 1" || opts[5].Label != "Semester 6" {
		t.Errorf("学期标签不符: %v", opts)
	}

	// 研究型课程按学年呈现
	phd := SemesterOptions("PHD")
	if len(phd) != 3 {
		t.Fatalf("期望 PHD 3 个学年选项，实际=%d", len(phd))
	}
	if phd[0].Label != "Year 1" || phd[2].Label != "Year 3" {
		t.Errorf("PHD 学年标签不符: %v", phd)
	}

	if got := SemesterOptions("UNKNOWN"); len(got) != 0 {
		t.Errorf("未定义课程应返回空选项，实际=%v", got)
	}
}

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()
	if len(slots) != 5 {
		t.Fatalf("期望 5 个节次，实际=%d", len(slots))
	}
	if slots[0].Label != "09:00 - 10:00" {
		t.Errorf("期望第1节=09:00 - 10:00，实际=%s", slots[0].Label)
	}
	if slots[4].Start != "14:00" || slots[4].End != "15:00" {
		t.Errorf("第5节 24 小时制时间不符: %+v", slots[4])
	}
}

func TestDayName(t *testing.T) {
	if got := DayName("2026-02-02"); got != "Monday" {
		t.Errorf("期望Monday，实际=%s", got)
	}
	if got := DayName("not-a-date"); got != "" {
		t.Errorf("非法日期应返回空串，实际=%s", got)
	}
}

func TestCatalogImmutability(t *testing.T) {
	// 返回值是副本，修改不应影响内部表
	s := Subjects("BCA", 1)
	s[0] = "Tampered"
	if Subjects("BCA", 1)[0] != "Programming in C" {
		t.Error("Subjects 返回值应为副本")
	}

	slots := TimeSlots()
	slots[0].Label = "tampered"
	if TimeSlots()[0].Label != "09:00 - 10:00" {
		t.Error("TimeSlots 返回值应为副本")
	}
}
