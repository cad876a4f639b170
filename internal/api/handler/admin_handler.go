package handler

import (
	"github.com/gin-gonic/gin"

	"attendtrack/backend/internal/service"
	"attendtrack/backend/pkg/response"
)

// AdminHandler 管理操作 HTTP 处理器
type AdminHandler struct {
	seedSvc service.SeedService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(seedSvc service.SeedService) *AdminHandler {
	return &AdminHandler{seedSvc: seedSvc}
}

// Reset 清空全部业务数据
// POST /api/v1/admin/reset
func (h *AdminHandler) Reset(c *gin.Context) {
	msg, err := h.seedSvc.ResetAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, msg, nil)
}
