package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"attendtrack/backend/internal/service"
	"attendtrack/backend/pkg/response"
)

// TimetableHandler 课表模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// Get 周课表
// GET /api/v1/timetable?course=BCA&semester=1
func (h *TimetableHandler) Get(c *gin.Context) {
	course, semester, ok := QueryCourseSemester(c)
	if !ok {
		return
	}

	response.OK(c, "", h.timetableSvc.Generate(course, semester))
}

// ExportICS 导出一周课表为日历文件
// GET /api/v1/timetable/export.ics?course=BCA&semester=1&week_start=2026-02-02
func (h *TimetableHandler) ExportICS(c *gin.Context) {
	course, semester, ok := QueryCourseSemester(c)
	if !ok {
		return
	}
	weekStart := c.Query("week_start")
	if weekStart == "" {
		response.BadRequest(c, 10001, "week_start 不能为空")
		return
	}

	buf, filename, err := h.timetableSvc.ExportICS(course, semester, weekStart)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTimetableBadDate):
			response.BadRequest(c, 14001, err.Error())
		case errors.Is(err, service.ErrTimetableNoSubjects):
			response.NotFound(c, 14002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
