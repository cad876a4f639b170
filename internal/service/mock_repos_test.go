package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendtrack/backend/config"
	"attendtrack/backend/internal/model"
	"attendtrack/backend/internal/repository"
)

// ── 内存版 Repository，供 Service 层单元测试使用 ──

type mockStudentRepo struct {
	students []*model.Student
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	cp := *student
	m.students = append(m.students, &cp)
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	for _, s := range m.students {
		if s.StudentID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByRoll(_ context.Context, roll string) (*model.Student, error) {
	for _, s := range m.students {
		if s.Roll == roll {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	out := make([]model.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockStudentRepo) ListByCourse(_ context.Context, course string, semester *int) ([]model.Student, error) {
	var out []model.Student
	for _, s := range m.students {
		if s.Course != course {
			continue
		}
		if semester != nil && s.Semester != *semester {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	for i, s := range m.students {
		if s.StudentID == student.StudentID {
			cp := *student
			m.students[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	for i, s := range m.students {
		if s.StudentID == id {
			m.students = append(m.students[:i], m.students[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockStudentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.students)), nil
}

func (m *mockStudentRepo) DeleteAll(_ context.Context) error {
	m.students = nil
	return nil
}

type slotKey struct {
	course   string
	semester int
	date     string
	slotNo   int
}

type mockAttendanceRepo struct {
	slots map[slotKey]*model.AttendanceSlot
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{slots: map[slotKey]*model.AttendanceSlot{}}
}

func (m *mockAttendanceRepo) key(s *model.AttendanceSlot) slotKey {
	return slotKey{s.Course, s.Semester, s.Date, s.SlotNo}
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, slot *model.AttendanceSlot) error {
	cp := *slot
	cp.Statuses = model.StatusMap{}
	for k, v := range slot.Statuses {
		cp.Statuses[k] = v
	}
	m.slots[m.key(slot)] = &cp
	return nil
}

func (m *mockAttendanceRepo) Get(_ context.Context, course string, semester int, date string, slotNo int) (*model.AttendanceSlot, error) {
	if s, ok := m.slots[slotKey{course, semester, date, slotNo}]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Exists(_ context.Context, course string, semester int, date string, slotNo int) (bool, error) {
	_, ok := m.slots[slotKey{course, semester, date, slotNo}]
	return ok, nil
}

func (m *mockAttendanceRepo) ListByCourseSemester(_ context.Context, course string, semester int) ([]model.AttendanceSlot, error) {
	var out []model.AttendanceSlot
	for _, s := range m.slots {
		if s.Course == course && s.Semester == semester {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) ListAll(_ context.Context) ([]model.AttendanceSlot, error) {
	var out []model.AttendanceSlot
	for _, s := range m.slots {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, slot *model.AttendanceSlot) error {
	return m.Upsert(context.Background(), slot)
}

func (m *mockAttendanceRepo) DeleteAll(_ context.Context) error {
	m.slots = map[slotKey]*model.AttendanceSlot{}
	return nil
}

type mockAppStateRepo struct {
	state map[string]string
}

func newMockAppStateRepo() *mockAppStateRepo {
	return &mockAppStateRepo{state: map[string]string{}}
}

func (m *mockAppStateRepo) Get(_ context.Context, key string) (string, error) {
	return m.state[key], nil
}

func (m *mockAppStateRepo) Set(_ context.Context, key, value string) error {
	m.state[key] = value
	return nil
}

func (m *mockAppStateRepo) Delete(_ context.Context, key string) error {
	delete(m.state, key)
	return nil
}

// ── 测试装配 ──

func newMockRepo() (*repository.Repository, *mockStudentRepo, *mockAttendanceRepo, *mockAppStateRepo) {
	students := &mockStudentRepo{}
	attendance := newMockAttendanceRepo()
	appState := newMockAppStateRepo()
	repo := &repository.Repository{
		Student:    students,
		Attendance: attendance,
		AppState:   appState,
	}
	return repo, students, attendance, appState
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "unit-test-secret-0123456789",
			AccessTokenTTL: time.Hour,
			Users: []config.Credential{
				{Username: "admin", Password: "admin123", Name: "Admin", Role: "admin"},
				{Username: "teacher", Password: "pass123", Name: "Faculty", Role: "teacher"},
			},
		},
		Seed: config.SeedConfig{Timeout: time.Second, DemoData: true},
		App:  config.AppConfig{Version: "v2.0", AcademicYear: "2025-26"},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
