package token

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"voca-app-backend/internal/config"
	"voca-app-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(accessTTL, refreshTTL time.Duration) *Manager {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.RefreshSecretKey = "test-refresh-secret"
	cfg.JWT.AccessTokenTTL = accessTTL
	cfg.JWT.RefreshTokenTTL = refreshTTL
	cfg.JWT.Issuer = "voca-app"
	cfg.JWT.Audience = "voca-users"
	return NewManager(cfg)
}

func testUser() *model.User {
	return &model.User{
		ID:       42,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     model.RoleUser,
	}
}

func TestManager_AccessTokenRoundTrip(t *testing.T) {
	m := newTestManager(time.Hour, 7*24*time.Hour)

	tokenString, err := m.IssueAccessToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := m.VerifyAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, "voca-app", claims.Issuer)
}

func TestManager_RefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager(time.Hour, 7*24*time.Hour)

	tokenString, err := m.IssueRefreshToken(42)
	require.NoError(t, err)

	claims, err := m.VerifyRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestManager_VerifyAccessToken_Expired(t *testing.T) {
	m := newTestManager(-time.Minute, 7*24*time.Hour)

	tokenString, err := m.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(tokenString)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnauthenticated))

	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "TOKEN_EXPIRED", appErr.Code)
}

func TestManager_VerifyAccessToken_WrongSecret(t *testing.T) {
	m := newTestManager(time.Hour, 7*24*time.Hour)
	other := newTestManager(time.Hour, 7*24*time.Hour)
	other.secretKey = []byte("another-secret")

	tokenString, err := m.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(tokenString)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnauthenticated))
}

func TestManager_RefreshTokenNotValidAsAccessToken(t *testing.T) {
	m := newTestManager(time.Hour, 7*24*time.Hour)

	refreshToken, err := m.IssueRefreshToken(42)
	require.NoError(t, err)

	// アクセス用とリフレッシュ用で鍵が違うため検証は通らない
	_, err = m.VerifyAccessToken(refreshToken)
	require.Error(t, err)
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "正常系: Bearerトークン", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "正常系: 小文字のbearer", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "異常系: ヘッダーなし", header: "", want: ""},
		{name: "異常系: スキーマ違い", header: "Basic dXNlcjpwYXNz", want: ""},
		{name: "異常系: トークン欠落", header: "Bearer", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractBearer(r))
		})
	}
}
