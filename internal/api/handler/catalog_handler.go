package handler

import (
	"github.com/gin-gonic/gin"

	"attendtrack/backend/internal/catalog"
	"attendtrack/backend/pkg/response"
)

// CatalogHandler 静态目录 HTTP 处理器
// 课程、课程表、节次均为进程内只读数据，无 Service 层
type CatalogHandler struct{}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// Courses 全部课程元数据
// GET /api/v1/catalog/courses
func (h *CatalogHandler) Courses(c *gin.Context) {
	response.OK(c, "", catalog.Courses())
}

// Course 单个课程元数据
// GET /api/v1/catalog/courses/:id
func (h *CatalogHandler) Course(c *gin.Context) {
	meta, ok := catalog.CourseByID(c.Param("id"))
	if !ok {
		response.NotFound(c, 15001, "课程不存在")
		return
	}
	response.OK(c, "", meta)
}

// Semesters 学期下拉选项
// GET /api/v1/catalog/courses/:id/semesters
func (h *CatalogHandler) Semesters(c *gin.Context) {
	if _, ok := catalog.CourseByID(c.Param("id")); !ok {
		response.NotFound(c, 15001, "课程不存在")
		return
	}
	response.OK(c, "", catalog.SemesterOptions(c.Param("id")))
}

// Subjects 某课程某学期的科目表
// GET /api/v1/catalog/courses/:id/subjects?semester=1
func (h *CatalogHandler) Subjects(c *gin.Context) {
	if _, ok := catalog.CourseByID(c.Param("id")); !ok {
		response.NotFound(c, 15001, "课程不存在")
		return
	}
	semester, ok := parsePositiveInt(c.Query("semester"))
	if !ok {
		response.BadRequest(c, 10001, "semester 必须为正整数")
		return
	}
	response.OK(c, "", catalog.Subjects(c.Param("id"), semester))
}

// TimeSlots 每日固定节次
// GET /api/v1/catalog/slots
func (h *CatalogHandler) TimeSlots(c *gin.Context) {
	response.OK(c, "", catalog.TimeSlots())
}
