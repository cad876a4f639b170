package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"attendtrack/backend/config"
	"attendtrack/backend/internal/dto"
	"attendtrack/backend/pkg/jwt"
	"attendtrack/backend/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrUsernameRequired   = errors.New("用户名不能为空")
	ErrPasswordRequired   = errors.New("密码不能为空")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
)

// AuthService 会话门卫业务接口
//
// 凭据表来自配置，按原始约定明文比较，仅作访问门禁而非安全边界。
// 登出通过 Redis 黑名单使 Token 立即失效；Redis 不可用时退化为
// 仅依赖 Token 自然过期。
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	// Logout 将会话 jti 加入黑名单，剩余 TTL 与 Token 一致
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(claims *jwt.Claims) *dto.SessionUser
}

type authService struct {
	cfg    *config.Config
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}

	// 凭据表为固定配置，逐条精确比较
	var matched *config.Credential
	for i := range s.cfg.Auth.Users {
		cred := &s.cfg.Auth.Users[i]
		if cred.Username == username && cred.Password == req.Password {
			matched = cred
			break
		}
	}
	if matched == nil {
		s.logger.Warn("登录失败", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateToken(matched.Username, matched.Name, matched.Role)
	if err != nil {
		s.logger.Error("生成 Token 失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("登录成功", zap.String("username", username), zap.String("role", matched.Role))

	return &dto.SessionResponse{
		Token:     token,
		ExpiresIn: int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.SessionUser{
			Username: matched.Username,
			Name:     matched.Name,
			Role:     matched.Role,
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil {
		// 黑名单不可用，Token 只能等待自然过期
		s.logger.Warn("Redis 不可用，登出仅在客户端生效", zap.String("username", claims.Username))
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.RevokeSession(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("会话注销失败", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}

	s.logger.Info("登出成功", zap.String("username", claims.Username))
	return nil
}

func (s *authService) Me(claims *jwt.Claims) *dto.SessionUser {
	return &dto.SessionUser{
		Username: claims.Username,
		Name:     claims.Name,
		Role:     claims.Role,
	}
}
