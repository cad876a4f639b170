package dto

// ── 会话门卫 DTO ──

// LoginRequest 登录请求
// 缺失字段的提示语由 Service 层给出，故不用 binding:required
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionUser 会话身份（用户名、显示名、角色）
type SessionUser struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// SessionResponse 登录成功响应
type SessionResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expires_in"`
	User      SessionUser `json:"user"`
}
