// internal/token/token.go
package token

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"voca-app-backend/internal/config"
	"voca-app-backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims はアクセストークンのペイロード。
// 認証ミドルウェアがDBを引かずに主体を復元できるだけの情報を持つ。
type AccessClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims はリフレッシュトークンの最小ペイロード
type RefreshClaims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// Manager はJWTの発行と検証を担います
type Manager struct {
	secretKey        []byte
	refreshSecretKey []byte
	accessTTL        time.Duration
	refreshTTL       time.Duration
	issuer           string
	audience         string
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		secretKey:        []byte(cfg.JWT.SecretKey),
		refreshSecretKey: []byte(cfg.JWT.RefreshSecretKey),
		accessTTL:        cfg.JWT.AccessTokenTTL,
		refreshTTL:       cfg.JWT.RefreshTokenTTL,
		issuer:           cfg.JWT.Issuer,
		audience:         cfg.JWT.Audience,
	}
}

// IssueAccessToken はユーザー情報を埋め込んだ短命トークンを発行します
func (m *Manager) IssueAccessToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
}

// IssueRefreshToken はユーザーIDのみを持つ7日有効のトークンを発行します
func (m *Manager) IssueRefreshToken(userID int64) (string, error) {
	now := time.Now()
	claims := &RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecretKey)
}

// VerifyAccessToken は署名・発行者・受信者・有効期限を検証してクレームを返します
func (m *Manager) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	err := m.verify(tokenString, claims, m.secretKey)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *Manager) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	err := m.verify(tokenString, claims, m.refreshSecretKey)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *Manager) verify(tokenString string, claims jwt.Claims, key []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return key, nil
		},
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.NewAppError("TOKEN_EXPIRED", "Token 已过期", "", model.ErrUnauthenticated)
		}
		return model.NewAppError("TOKEN_INVALID", "Token 无效", "", model.ErrUnauthenticated)
	}
	if !token.Valid {
		return model.NewAppError("TOKEN_INVALID", "Token 无效", "", model.ErrUnauthenticated)
	}
	return nil
}

// ExtractBearer は Authorization ヘッダーから Bearer トークンを取り出します。
// 無ければ空文字列を返す。
func ExtractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
