package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"attendtrack/backend/internal/model"
)

func TestExport_Attendance(t *testing.T) {
	repo, students, attendance, _ := newMockRepo()
	svc := NewExportService(repo, testLogger())
	ctx := context.Background()

	seedStudentRecord(t, students, "STU001", "BCA2025001", "Rahul Sharma", "BCA", 1)
	seedStudentRecord(t, students, "STU002", "BCA2025002", "Priya Patel", "BCA", 1)

	_ = attendance.Upsert(ctx, &model.AttendanceSlot{
		Course: "BCA", Semester: 1, Date: "2026-02-02", SlotNo: 1,
		Subject:  "Programming in C",
		Statuses: model.StatusMap{"STU001": "P", "STU002": "A"},
	})
	_ = attendance.Upsert(ctx, &model.AttendanceSlot{
		Course: "BCA", Semester: 1, Date: "2026-02-02", SlotNo: 2,
		Subject:  "Mathematics-I",
		Statuses: model.StatusMap{"STU001": "P", "STU002": "P"},
	})

	buf, filename, err := svc.ExportAttendance(ctx, "BCA", 1)
	if err != nil {
		t.Fatalf("ExportAttendance 应成功: %v", err)
	}
	if filename != "attendance_BCA_sem1.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	sheet := "考勤登记表"
	if got, _ := f.GetCellValue(sheet, "A2"); got != "学号" {
		t.Errorf("表头不符: %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "C2"); got != "2026-02-02" {
		t.Errorf("日期列不符: %q", got)
	}
	// STU001 当日 2/2 出席
	if got, _ := f.GetCellValue(sheet, "C3"); got != "2/2" {
		t.Errorf("STU001 日单元格不符: %q", got)
	}
	// STU002 当日 1/2 出席，出勤率 50.0%
	if got, _ := f.GetCellValue(sheet, "C4"); got != "1/2" {
		t.Errorf("STU002 日单元格不符: %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "F4"); got != "50.0%" {
		t.Errorf("STU002 出勤率不符: %q", got)
	}
}

func TestExport_Attendance_NoStudents(t *testing.T) {
	repo, _, _, _ := newMockRepo()
	svc := NewExportService(repo, testLogger())

	if _, _, err := svc.ExportAttendance(context.Background(), "BCA", 1); !errors.Is(err, ErrExportNoStudents) {
		t.Errorf("期望 ErrExportNoStudents，实际 %v", err)
	}
}

func TestExport_Marks(t *testing.T) {
	repo, students, _, _ := newMockRepo()
	svc := NewExportService(repo, testLogger())
	ctx := context.Background()

	_ = students.Create(ctx, &model.Student{
		StudentID: "STU001", Roll: "BCA2025001", Name: "Rahul Sharma",
		Course: "BCA", Semester: 1,
		Marks: model.MarkMap{
			"Programming in C": {Obtained: 85, MaxMarks: 100},
			"Mathematics-I":    {Obtained: 35, MaxMarks: 50},
		},
	})

	buf, filename, err := svc.ExportMarks(ctx, "BCA", 1)
	if err != nil {
		t.Fatalf("ExportMarks 应成功: %v", err)
	}
	if filename != "marks_BCA_sem1.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	sheet := "成绩表"
	// 科目列顺序跟随课程表: Programming in C 在 C 列
	if got, _ := f.GetCellValue(sheet, "C2"); got != "Programming in C" {
		t.Errorf("科目表头不符: %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "C3"); got != "85/100" {
		t.Errorf("成绩单元格不符: %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "D3"); got != "35/50" {
		t.Errorf("成绩单元格不符: %q", got)
	}
	// (85 + 70) / 2 = 77.5 → Good
	if got, _ := f.GetCellValue(sheet, "G3"); got != "77.5%" {
		t.Errorf("均分不符: %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "H3"); got != "Good" {
		t.Errorf("评语不符: %q", got)
	}
}
