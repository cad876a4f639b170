package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"attendtrack/backend/pkg/jwt"
	"attendtrack/backend/pkg/response"
)

// MustGetClaims 从 Gin 上下文中安全提取会话声明。
// 如果认证中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}

// QueryCourseSemester 从查询参数提取 course 与 semester。
// 两者缺一即写入 400 响应并返回 ok=false。
func QueryCourseSemester(c *gin.Context) (string, int, bool) {
	course := c.Query("course")
	if course == "" {
		response.BadRequest(c, 10001, "course 不能为空")
		return "", 0, false
	}
	semester, err := strconv.Atoi(c.Query("semester"))
	if err != nil || semester <= 0 {
		response.BadRequest(c, 10001, "semester 必须为正整数")
		return "", 0, false
	}
	return course, semester, true
}

func parsePositiveInt(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
