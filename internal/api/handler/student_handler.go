package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"attendtrack/backend/internal/dto"
	"attendtrack/backend/internal/service"
	"attendtrack/backend/pkg/response"
)

// StudentHandler 学生模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// Create 添加学生
// POST /api/v1/students
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.studentSvc.Add(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNameRequired),
			errors.Is(err, service.ErrStudentRollRequired),
			errors.Is(err, service.ErrStudentCourseInvalid),
			errors.Is(err, service.ErrStudentSemesterRequired):
			response.BadRequest(c, 12001, err.Error())
		case errors.Is(err, service.ErrDuplicateRoll):
			response.Conflict(c, 12002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, "学生添加成功", result)
}

// List 学生列表
// GET /api/v1/students?course=BCA&semester=1
// course 缺省时返回全部学生，semester 仅在给定 course 时生效
func (h *StudentHandler) List(c *gin.Context) {
	course := c.Query("course")
	if course == "" {
		result, err := h.studentSvc.List(c.Request.Context())
		if err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, "", result)
		return
	}

	var semester *int
	if raw := c.Query("semester"); raw != "" {
		n, ok := parsePositiveInt(raw)
		if !ok {
			response.BadRequest(c, 10001, "semester 必须为正整数")
			return
		}
		semester = &n
	}

	result, err := h.studentSvc.ListByCourse(c.Request.Context(), course, semester)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, "", result)
}

// Get 查询单个学生
// GET /api/v1/students/:id
func (h *StudentHandler) Get(c *gin.Context) {
	result, err := h.studentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, "", result)
}

// GetByRoll 按学号查询学生
// GET /api/v1/students/by-roll/:roll
func (h *StudentHandler) GetByRoll(c *gin.Context) {
	result, err := h.studentSvc.GetByRoll(c.Request.Context(), c.Param("roll"))
	if err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, "", result)
}

// Delete 删除学生（级联清理考勤状态）
// DELETE /api/v1/students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	msg, err := h.studentSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, msg, nil)
}

// UpdateMarks 录入单科成绩
// PUT /api/v1/students/:id/marks
func (h *StudentHandler) UpdateMarks(c *gin.Context) {
	var req dto.UpdateMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	msg, err := h.studentSvc.UpdateMarks(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMarksSubjectRequired),
			errors.Is(err, service.ErrMarksNegative),
			errors.Is(err, service.ErrMarksMaxInvalid),
			errors.Is(err, service.ErrMarksExceedMax):
			response.BadRequest(c, 12003, err.Error())
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 12004, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, msg, nil)
}

// SemesterAvg 学期均分
// GET /api/v1/students/:id/semester-avg
func (h *StudentHandler) SemesterAvg(c *gin.Context) {
	avg, err := h.studentSvc.SemesterAvg(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, "", gin.H{"semester_avg": avg})
}

// Report 完整报告
// GET /api/v1/students/:id/report
func (h *StudentHandler) Report(c *gin.Context) {
	result, err := h.studentSvc.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, "", result)
}

func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrStudentNotFound) {
		response.NotFound(c, 12004, err.Error())
		return
	}
	response.InternalError(c)
}
