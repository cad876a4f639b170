package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"attendtrack/backend/internal/service"
	"attendtrack/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAttendance 导出考勤登记表
// GET /api/v1/export/attendance?course=BCA&semester=1
func (h *ExportHandler) ExportAttendance(c *gin.Context) {
	course, semester, ok := QueryCourseSemester(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportAttendance(c.Request.Context(), course, semester)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	h.sendXLSX(c, buf, filename)
}

// ExportMarks 导出成绩表
// GET /api/v1/export/marks?course=BCA&semester=1
func (h *ExportHandler) ExportMarks(c *gin.Context) {
	course, semester, ok := QueryCourseSemester(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportMarks(c.Request.Context(), course, semester)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	h.sendXLSX(c, buf, filename)
}

func (h *ExportHandler) sendXLSX(c *gin.Context, buf *bytes.Buffer, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoStudents):
		response.NotFound(c, 16101, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
