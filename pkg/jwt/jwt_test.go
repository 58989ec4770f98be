package jwt

import (
	"testing"
	"time"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// TestGenerateAndParse 测试Token生成与解析往返
func TestGenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(42, "user@example.com", "测试用户")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Token对不应为空")
	}
	if pair.ExpiresIn != int64((2 * time.Hour).Seconds()) {
		t.Errorf("期望过期时间%d秒，实际%d", int64((2*time.Hour).Seconds()), pair.ExpiresIn)
	}

	claims, err := m.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("解析Token失败: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("期望UserID=42，实际%d", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("期望邮箱user@example.com，实际%s", claims.Email)
	}
	if claims.Name != "测试用户" {
		t.Errorf("期望姓名测试用户，实际%s", claims.Name)
	}
	if claims.Issuer != "bookreview" {
		t.Errorf("期望签发者bookreview，实际%s", claims.Issuer)
	}
}

// TestParseToken_Expired 测试过期Token
func TestParseToken_Expired(t *testing.T) {
	// 有效期为负,生成即过期
	m := NewManager("test-secret", -time.Minute, 7*24*time.Hour)

	pair, err := m.GenerateToken(1, "user@example.com", "测试用户")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	_, err = m.ParseToken(pair.AccessToken)
	if err != apperrors.ErrTokenExpired {
		t.Errorf("期望ErrTokenExpired，实际%v", err)
	}
}

// TestParseToken_WrongSecret 测试密钥不匹配
func TestParseToken_WrongSecret(t *testing.T) {
	m1 := NewManager("secret-one", 2*time.Hour, 7*24*time.Hour)
	m2 := NewManager("secret-two", 2*time.Hour, 7*24*time.Hour)

	pair, err := m1.GenerateToken(1, "user@example.com", "测试用户")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	_, err = m2.ParseToken(pair.AccessToken)
	if err != apperrors.ErrInvalidToken {
		t.Errorf("密钥不匹配应返回ErrInvalidToken，实际%v", err)
	}
}

// TestParseToken_Garbage 测试非法Token字符串
func TestParseToken_Garbage(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	for _, token := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := m.ParseToken(token); err != apperrors.ErrInvalidToken {
			t.Errorf("解析%q应返回ErrInvalidToken，实际%v", token, err)
		}
	}
}

// TestRefreshAccessToken 测试Token刷新
func TestRefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(42, "user@example.com", "测试用户")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	newAccess, err := m.RefreshAccessToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("刷新Token失败: %v", err)
	}

	claims, err := m.ParseToken(newAccess)
	if err != nil {
		t.Fatalf("解析新Token失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("刷新后UserID应保持42，实际%d", claims.UserID)
	}
}
