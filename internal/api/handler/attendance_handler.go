package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"attendtrack/backend/internal/dto"
	"attendtrack/backend/internal/service"
	"attendtrack/backend/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// MarkSlot 保存一节课的考勤
// POST /api/v1/attendance/slots
func (h *AttendanceHandler) MarkSlot(c *gin.Context) {
	var req dto.MarkSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	msg, err := h.attendanceSvc.MarkSlot(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttendanceDateRequired),
			errors.Is(err, service.ErrAttendanceCourseRequired),
			errors.Is(err, service.ErrAttendanceNoStudents),
			errors.Is(err, service.ErrAttendanceBadStatus):
			response.BadRequest(c, 13001, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, msg, nil)
}

// GetSlot 查询单节考勤
// GET /api/v1/attendance/slots?course=BCA&semester=1&date=2026-02-02&slot=1
func (h *AttendanceHandler) GetSlot(c *gin.Context) {
	course, semester, date, slotNo, ok := h.slotQuery(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.GetSlot(c.Request.Context(), course, semester, date, slotNo)
	if err != nil {
		if errors.Is(err, service.ErrSlotNotFound) {
			response.NotFound(c, 13002, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, "", result)
}

// IsMarked 该节是否已点名
// GET /api/v1/attendance/slots/marked?course=BCA&semester=1&date=2026-02-02&slot=1
func (h *AttendanceHandler) IsMarked(c *gin.Context) {
	course, semester, date, slotNo, ok := h.slotQuery(c)
	if !ok {
		return
	}

	marked, err := h.attendanceSvc.IsMarked(c.Request.Context(), course, semester, date, slotNo)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, "", gin.H{"marked": marked})
}

// StudentSummary 学生出勤汇总
// GET /api/v1/students/:id/attendance
func (h *AttendanceHandler) StudentSummary(c *gin.Context) {
	result, err := h.attendanceSvc.StudentSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 12004, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, "", result)
}

// CourseSummary 班级出勤汇总
// GET /api/v1/attendance/course-summary?course=BCA&semester=1
func (h *AttendanceHandler) CourseSummary(c *gin.Context) {
	course, semester, ok := QueryCourseSemester(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.CourseSummary(c.Request.Context(), course, semester)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, "", result)
}

func (h *AttendanceHandler) slotQuery(c *gin.Context) (string, int, string, int, bool) {
	course, semester, ok := QueryCourseSemester(c)
	if !ok {
		return "", 0, "", 0, false
	}
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date 不能为空")
		return "", 0, "", 0, false
	}
	slotNo, err := strconv.Atoi(c.Query("slot"))
	if err != nil || slotNo <= 0 {
		response.BadRequest(c, 10001, "slot 必须为正整数")
		return "", 0, "", 0, false
	}
	return course, semester, date, slotNo, true
}
