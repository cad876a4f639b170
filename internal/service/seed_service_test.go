package service

import (
	"context"
	"testing"

	"attendtrack/backend/internal/model"
)

func newSeedTestService() (SeedService, *mockStudentRepo, *mockAttendanceRepo, *mockAppStateRepo) {
	repo, students, attendance, appState := newMockRepo()
	svc := NewSeedService(testConfig(), repo, NewTimetableService(), testLogger())
	return svc, students, attendance, appState
}

func TestSeed_Bootstrap_FirstRun(t *testing.T) {
	svc, students, attendance, appState := newSeedTestService()
	ctx := context.Background()

	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap 应成功: %v", err)
	}

	if appState.state[model.StateKeyVersion] != "v2.0" {
		t.Errorf("版本标记未写入: %q", appState.state[model.StateKeyVersion])
	}
	if appState.state[model.StateKeyDemoDone] != "true" {
		t.Errorf("演示标记未写入: %q", appState.state[model.StateKeyDemoDone])
	}

	// 内置花名册 6 人
	if len(students.students) != 6 {
		t.Fatalf("期望 6 名种子学生，实际 %d", len(students.students))
	}

	// 演示周：BCA 与 MCA 各 5 天 × 5 节
	if len(attendance.slots) != 50 {
		t.Errorf("期望 50 条演示考勤记录，实际 %d", len(attendance.slots))
	}

	// STU001 全勤，成绩固定
	stu1, err := students.GetByID(ctx, "STU001")
	if err != nil {
		t.Fatal(err)
	}
	mark, ok := stu1.Marks["Programming in C"]
	if !ok || mark.Obtained != 85 || mark.MaxMarks != 100 {
		t.Errorf("STU001 演示成绩不符: %+v", stu1.Marks)
	}

	slot, err := attendance.Get(ctx, "BCA", 1, "2026-02-02", 1)
	if err != nil {
		t.Fatalf("演示周一第1节应存在: %v", err)
	}
	if slot.Statuses["STU001"] != "P" || slot.Statuses["STU002"] != "P" {
		t.Errorf("周一考勤模式不符: %v", slot.Statuses)
	}

	// 周二 STU002 缺勤（P,A,P,A,P 模式）
	slot, _ = attendance.Get(ctx, "BCA", 1, "2026-02-03", 1)
	if slot.Statuses["STU002"] != "A" {
		t.Errorf("周二 STU002 应缺勤: %v", slot.Statuses)
	}
}

func TestSeed_Bootstrap_Idempotent(t *testing.T) {
	svc, students, attendance, _ := newSeedTestService()
	ctx := context.Background()

	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatal(err)
	}
	studentCount := len(students.students)
	slotCount := len(attendance.slots)

	// 再次引导不得重复注入
	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatal(err)
	}
	if len(students.students) != studentCount || len(attendance.slots) != slotCount {
		t.Errorf("重复引导改变了数据: students=%d slots=%d", len(students.students), len(attendance.slots))
	}
}

func TestSeed_Bootstrap_VersionMismatchWipes(t *testing.T) {
	svc, students, attendance, appState := newSeedTestService()
	ctx := context.Background()

	// 旧版本遗留数据
	appState.state[model.StateKeyVersion] = "v1.0"
	appState.state[model.StateKeyDemoDone] = "true"
	_ = students.Create(ctx, &model.Student{StudentID: "OLD001", Roll: "OLD", Name: "Legacy", Course: "BCA", Semester: 1})
	_ = attendance.Upsert(ctx, &model.AttendanceSlot{
		Course: "BCA", Semester: 1, Date: "2025-01-01", SlotNo: 1,
		Statuses: model.StatusMap{"OLD001": "P"},
	})

	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatal(err)
	}

	if appState.state[model.StateKeyVersion] != "v2.0" {
		t.Errorf("版本标记未更新: %q", appState.state[model.StateKeyVersion])
	}
	if _, err := students.GetByID(ctx, "OLD001"); err == nil {
		t.Error("旧版本学生应被清空")
	}
	if _, err := attendance.Get(ctx, "BCA", 1, "2025-01-01", 1); err == nil {
		t.Error("旧版本考勤应被清空")
	}

	// 清空后按新版本重新种子 + 注入演示数据
	if len(students.students) != 6 {
		t.Errorf("清空后应重新加载种子花名册，实际 %d 人", len(students.students))
	}
}

func TestSeed_Bootstrap_DemoSkippedWhenFewStudents(t *testing.T) {
	repo, students, attendance, _ := newMockRepo()
	cfg := testConfig()
	cfg.Seed.DemoData = false
	svc := NewSeedService(cfg, repo, NewTimetableService(), testLogger())
	ctx := context.Background()

	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatal(err)
	}
	if len(students.students) != 0 || len(attendance.slots) != 0 {
		t.Errorf("关闭演示数据时应以空数据集启动: students=%d slots=%d", len(students.students), len(attendance.slots))
	}
}

func TestSeed_ResetAll(t *testing.T) {
	svc, students, attendance, appState := newSeedTestService()
	ctx := context.Background()

	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatal(err)
	}

	msg, err := svc.ResetAll(ctx)
	if err != nil {
		t.Fatalf("ResetAll 应成功: %v", err)
	}
	if msg != "所有数据已清除" {
		t.Errorf("确认消息不符: %q", msg)
	}

	// 重置后重走初始化：种子花名册与演示数据回到首启状态
	if len(students.students) != 6 {
		t.Errorf("重置后应重新加载种子花名册，实际 %d 人", len(students.students))
	}
	if len(attendance.slots) != 50 {
		t.Errorf("重置后应重新注入演示考勤，实际 %d 条", len(attendance.slots))
	}
	if appState.state[model.StateKeyDemoDone] != "true" {
		t.Error("演示标记应在重新注入后写回")
	}
	// 版本标记保留，避免重启再次触发全量清空
	if appState.state[model.StateKeyVersion] != "v2.0" {
		t.Errorf("版本标记不应被移除: %q", appState.state[model.StateKeyVersion])
	}
}
