package jwt

import (
	"errors"
	"testing"
	"time"

	"attendtrack/backend/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-at-least-16-chars",
		AccessTokenTTL: ttl,
	})
}

func TestManager_GenerateAndParse(t *testing.T) {
	m := newTestManager(time.Hour)

	token, err := m.GenerateToken("teacher", "Faculty", "teacher")
	if err != nil {
		t.Fatalf("GenerateToken 应成功: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 应成功: %v", err)
	}
	if claims.Username != "teacher" {
		t.Errorf("期望Username=teacher，实际=%s", claims.Username)
	}
	if claims.Name != "Faculty" {
		t.Errorf("期望Name=Faculty，实际=%s", claims.Name)
	}
	if claims.Role != "teacher" {
		t.Errorf("期望Role=teacher，实际=%s", claims.Role)
	}
	if claims.ID == "" {
		t.Error("jti 不应为空")
	}
}

func TestManager_ParseExpired(t *testing.T) {
	m := newTestManager(-time.Minute)

	token, err := m.GenerateToken("admin", "Admin", "admin")
	if err != nil {
		t.Fatalf("GenerateToken 应成功: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestManager_ParseTampered(t *testing.T) {
	m := newTestManager(time.Hour)
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-16-chars-min",
		AccessTokenTTL: time.Hour,
	})

	token, err := other.GenerateToken("admin", "Admin", "admin")
	if err != nil {
		t.Fatalf("GenerateToken 应成功: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
