package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"attendtrack/backend/internal/dto"
	"attendtrack/backend/internal/service"
	"attendtrack/backend/pkg/jwt"
	"attendtrack/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult *dto.SessionResponse
	loginErr    error
	logoutErr   error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.SessionResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) Me(claims *jwt.Claims) *dto.SessionUser {
	return &dto.SessionUser{Username: claims.Username, Name: claims.Name, Role: claims.Role}
}

// ── Mock StudentService ──

type mockStudentService struct {
	addResult    *dto.StudentResponse
	addErr       error
	deleteMsg    string
	deleteErr    error
	getResult    *dto.StudentResponse
	getErr       error
	listResult   []dto.StudentResponse
	listErr      error
	marksMsg     string
	marksErr     error
	avgResult    float64
	avgErr       error
	reportResult *dto.StudentReport
	reportErr    error
}

func (m *mockStudentService) Add(_ context.Context, _ *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	return m.addResult, m.addErr
}
func (m *mockStudentService) Delete(_ context.Context, _ string) (string, error) {
	return m.deleteMsg, m.deleteErr
}
func (m *mockStudentService) Get(_ context.Context, _ string) (*dto.StudentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockStudentService) GetByRoll(_ context.Context, _ string) (*dto.StudentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockStudentService) List(_ context.Context) ([]dto.StudentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockStudentService) ListByCourse(_ context.Context, _ string, _ *int) ([]dto.StudentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockStudentService) UpdateMarks(_ context.Context, _ string, _ *dto.UpdateMarksRequest) (string, error) {
	return m.marksMsg, m.marksErr
}
func (m *mockStudentService) SemesterAvg(_ context.Context, _ string) (float64, error) {
	return m.avgResult, m.avgErr
}
func (m *mockStudentService) Report(_ context.Context, _ string) (*dto.StudentReport, error) {
	return m.reportResult, m.reportErr
}

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	markMsg       string
	markErr       error
	isMarked      bool
	isMarkedErr   error
	slotResult    *dto.SlotResponse
	slotErr       error
	summaryResult *dto.AttendanceSummary
	summaryErr    error
	courseResult  []dto.CourseAttendanceEntry
	courseErr     error
}

func (m *mockAttendanceService) MarkSlot(_ context.Context, _ *dto.MarkSlotRequest) (string, error) {
	return m.markMsg, m.markErr
}
func (m *mockAttendanceService) IsMarked(_ context.Context, _ string, _ int, _ string, _ int) (bool, error) {
	return m.isMarked, m.isMarkedErr
}
func (m *mockAttendanceService) GetSlot(_ context.Context, _ string, _ int, _ string, _ int) (*dto.SlotResponse, error) {
	return m.slotResult, m.slotErr
}
func (m *mockAttendanceService) StudentSummary(_ context.Context, _ string) (*dto.AttendanceSummary, error) {
	return m.summaryResult, m.summaryErr
}
func (m *mockAttendanceService) CourseSummary(_ context.Context, _ string, _ int) ([]dto.CourseAttendanceEntry, error) {
	return m.courseResult, m.courseErr
}

// ═══════════════════════════════════════════════════════════
// 测试工具
// ═══════════════════════════════════════════════════════════

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应体不是合法 JSON: %v", err)
	}
	return resp
}

// ═══════════════════════════════════════════════════════════
// Auth
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.SessionResponse{
			Token:     "token",
			ExpiresIn: 3600,
			User:      dto.SessionUser{Username: "admin", Name: "Admin", Role: "admin"},
		},
	}
	h := NewAuthHandler(mock)
	r := gin.New()
	r.POST("/login", h.Login)

	w := performJSON(r, http.MethodPost, "/login", dto.LoginRequest{Username: "admin", Password: "admin123"})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Message != "登录成功" {
		t.Errorf("消息不符: %q", resp.Message)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})
	r := gin.New()
	r.POST("/login", h.Login)

	w := performJSON(r, http.MethodPost, "/login", dto.LoginRequest{Username: "admin", Password: "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际 %d", w.Code)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrUsernameRequired})
	r := gin.New()
	r.POST("/login", h.Login)

	w := performJSON(r, http.MethodPost, "/login", dto.LoginRequest{Password: "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际 %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Message != "用户名不能为空" {
		t.Errorf("消息不符: %q", resp.Message)
	}
}

// ═══════════════════════════════════════════════════════════
// Student
// ═══════════════════════════════════════════════════════════

func TestStudentHandler_Create(t *testing.T) {
	mock := &mockStudentService{
		addResult: &dto.StudentResponse{ID: "STU001", Roll: "BCA2025001", Name: "Rahul Sharma"},
	}
	h := NewStudentHandler(mock)
	r := gin.New()
	r.POST("/students", h.Create)

	w := performJSON(r, http.MethodPost, "/students", dto.CreateStudentRequest{
		Roll: "BCA2025001", Name: "Rahul Sharma", Course: "BCA", Semester: 1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际 %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Message != "学生添加成功" {
		t.Errorf("消息不符: %q", resp.Message)
	}
}

func TestStudentHandler_Create_Errors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"缺姓名", service.ErrStudentNameRequired, http.StatusBadRequest},
		{"课程非法", service.ErrStudentCourseInvalid, http.StatusBadRequest},
		{"学号冲突", fmt.Errorf("%w: 学号已被占用", service.ErrDuplicateRoll), http.StatusConflict},
	}
	for _, tc := range cases {
		h := NewStudentHandler(&mockStudentService{addErr: tc.err})
		r := gin.New()
		r.POST("/students", h.Create)

		w := performJSON(r, http.MethodPost, "/students", dto.CreateStudentRequest{})
		if w.Code != tc.wantCode {
			t.Errorf("%s: 期望 %d，实际 %d", tc.name, tc.wantCode, w.Code)
		}
	}
}

func TestStudentHandler_Delete(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{deleteMsg: `已删除 "Rahul Sharma"`})
	r := gin.New()
	r.DELETE("/students/:id", h.Delete)

	w := performJSON(r, http.MethodDelete, "/students/STU001", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Message != `已删除 "Rahul Sharma"` {
		t.Errorf("消息不符: %q", resp.Message)
	}
}

func TestStudentHandler_Delete_NotFound(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{deleteErr: service.ErrStudentNotFound})
	r := gin.New()
	r.DELETE("/students/:id", h.Delete)

	w := performJSON(r, http.MethodDelete, "/students/STU999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际 %d", w.Code)
	}
}

func TestStudentHandler_UpdateMarks_Invalid(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{marksErr: service.ErrMarksExceedMax})
	r := gin.New()
	r.PUT("/students/:id/marks", h.UpdateMarks)

	w := performJSON(r, http.MethodPut, "/students/STU001/marks", dto.UpdateMarksRequest{
		Subject: "Programming in C", Obtained: 120, MaxMarks: 100,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际 %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Message != "得分不能超过满分" {
		t.Errorf("消息不符: %q", resp.Message)
	}
}

// ═══════════════════════════════════════════════════════════
// Attendance
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandler_MarkSlot(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{markMsg: "第 1 节考勤已保存（Programming in C）"})
	r := gin.New()
	r.POST("/attendance/slots", h.MarkSlot)

	w := performJSON(r, http.MethodPost, "/attendance/slots", dto.MarkSlotRequest{
		Course: "BCA", Semester: 1, Date: "2026-02-02", SlotNo: 1,
		Subject:  "Programming in C",
		Statuses: map[string]string{"STU001": "P"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
}

func TestAttendanceHandler_MarkSlot_BadStatus(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{markErr: service.ErrAttendanceBadStatus})
	r := gin.New()
	r.POST("/attendance/slots", h.MarkSlot)

	w := performJSON(r, http.MethodPost, "/attendance/slots", dto.MarkSlotRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际 %d", w.Code)
	}
}

func TestAttendanceHandler_GetSlot_QueryValidation(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})
	r := gin.New()
	r.GET("/attendance/slots", h.GetSlot)

	// 缺 course
	w := performJSON(r, http.MethodGet, "/attendance/slots?semester=1&date=2026-02-02&slot=1", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺 course 期望 400，实际 %d", w.Code)
	}
	// slot 非法
	w = performJSON(r, http.MethodGet, "/attendance/slots?course=BCA&semester=1&date=2026-02-02&slot=abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("非法 slot 期望 400，实际 %d", w.Code)
	}
}

func TestAttendanceHandler_GetSlot_NotFound(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{slotErr: service.ErrSlotNotFound})
	r := gin.New()
	r.GET("/attendance/slots", h.GetSlot)

	w := performJSON(r, http.MethodGet, "/attendance/slots?course=BCA&semester=1&date=2026-02-02&slot=1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际 %d", w.Code)
	}
}

func TestAttendanceHandler_IsMarked(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{isMarked: true})
	r := gin.New()
	r.GET("/attendance/slots/marked", h.IsMarked)

	w := performJSON(r, http.MethodGet, "/attendance/slots/marked?course=BCA&semester=1&date=2026-02-02&slot=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	var resp struct {
		Data struct {
			Marked bool `json:"marked"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Data.Marked {
		t.Error("期望 marked=true")
	}
}

// ═══════════════════════════════════════════════════════════
// Catalog / Timetable
// ═══════════════════════════════════════════════════════════

func TestCatalogHandler_Courses(t *testing.T) {
	h := NewCatalogHandler()
	r := gin.New()
	r.GET("/catalog/courses", h.Courses)

	w := performJSON(r, http.MethodGet, "/catalog/courses", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 5 {
		t.Errorf("期望 5 门课程，实际 %d", len(resp.Data))
	}
	if resp.Data[0].ID != "BCA" {
		t.Errorf("课程顺序不符: %v", resp.Data)
	}
}

func TestCatalogHandler_Subjects_UnknownCourse(t *testing.T) {
	h := NewCatalogHandler()
	r := gin.New()
	r.GET("/catalog/courses/:id/subjects", h.Subjects)

	w := performJSON(r, http.MethodGet, "/catalog/courses/MBA/subjects?semester=1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("未知课程期望 404，实际 %d", w.Code)
	}
}

func TestTimetableHandler_Get(t *testing.T) {
	h := NewTimetableHandler(service.NewTimetableService())
	r := gin.New()
	r.GET("/timetable", h.Get)

	w := performJSON(r, http.MethodGet, "/timetable?course=BCA&semester=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	var resp struct {
		Data dto.TimetableResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.Days) != 5 {
		t.Errorf("期望 5 个教学日，实际 %d", len(resp.Data.Days))
	}
}

func TestTimetableHandler_ExportICS_BadDate(t *testing.T) {
	h := NewTimetableHandler(service.NewTimetableService())
	r := gin.New()
	r.GET("/timetable/export.ics", h.ExportICS)

	w := performJSON(r, http.MethodGet, "/timetable/export.ics?course=BCA&semester=1&week_start=2026-02-03", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("非周一期望 400，实际 %d", w.Code)
	}
}
