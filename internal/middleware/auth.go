package middleware

import (
	"context"
	"net/http"
	"strconv"

	"voca-app-backend/internal/model"
	"voca-app-backend/internal/token"
	"voca-app-backend/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// Authenticate は Bearer トークンを必須とする認証ミドルウェアです。
// トークンが無い・無効・期限切れの場合は 401 を返して処理を打ち切る。
func Authenticate(tm *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			tokenString := token.ExtractBearer(r)
			if tokenString == "" {
				logger.Warn("Auth failed: Authorization header missing or malformed")
				appErr := model.NewAppError("UNAUTHORIZED", "缺少认证 Token", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			claims, err := tm.VerifyAccessToken(tokenString)
			if err != nil {
				logger.Warn("Auth failed: invalid access token", "error", err)
				webutil.HandleError(w, logger, err)
				return
			}

			authUser := &model.AuthUser{
				UserID:   claims.UserID,
				Username: claims.Username,
				Email:    claims.Email,
				Role:     claims.Role,
			}
			ctx := context.WithValue(r.Context(), model.AuthUserKey, authUser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthenticate はトークンがあれば主体をコンテキストに載せ、
// 無い・検証に失敗した場合は匿名のまま処理を続行するミドルウェアです。
func OptionalAuthenticate(tm *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := token.ExtractBearer(r)
			if tokenString != "" {
				if claims, err := tm.VerifyAccessToken(tokenString); err == nil {
					authUser := &model.AuthUser{
						UserID:   claims.UserID,
						Username: claims.Username,
						Email:    claims.Email,
						Role:     claims.Role,
					}
					ctx := context.WithValue(r.Context(), model.AuthUserKey, authUser)
					r = r.WithContext(ctx)
				} else {
					GetLogger(r.Context()).Debug("Optional auth: token rejected, continuing anonymously", "error", err)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles は許可ロール一覧に含まれないユーザーを 403 で拒否します。
// Authenticate の後段に置くこと。
func RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authUser, err := GetAuthUser(r.Context())
			if err != nil {
				webutil.HandleError(w, logger, err)
				return
			}

			for _, role := range allowedRoles {
				if authUser.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("Role check failed", "user_id", authUser.UserID, "role", authUser.Role)
			appErr := model.NewAppError("FORBIDDEN", "权限不足", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
		})
	}
}

// RequireOwnerOrAdmin はパスパラメータのユーザーIDが呼び出し主体と一致するか、
// 主体が管理者であることを要求します。
func RequireOwnerOrAdmin(paramName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authUser, err := GetAuthUser(r.Context())
			if err != nil {
				webutil.HandleError(w, logger, err)
				return
			}

			resourceUserID, parseErr := strconv.ParseInt(chi.URLParam(r, paramName), 10, 64)
			if parseErr != nil {
				appErr := model.NewAppError("INVALID_PARAM", "用户ID格式错误", paramName, model.ErrInvalidInput)
				webutil.HandleError(w, logger, appErr)
				return
			}

			if authUser.UserID != resourceUserID && !authUser.IsAdmin() {
				logger.Warn("Ownership check failed", "user_id", authUser.UserID, "resource_user_id", resourceUserID)
				appErr := model.NewAppError("FORBIDDEN", "只能访问自己的资源", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetAuthUser はコンテキストから認証済みユーザーを取得します。
// Authenticate を通っていないルートで呼ぶと ErrUnauthenticated になる。
func GetAuthUser(ctx context.Context) (*model.AuthUser, error) {
	user, ok := ctx.Value(model.AuthUserKey).(*model.AuthUser)
	if !ok || user == nil {
		return nil, model.NewAppError("UNAUTHORIZED", "用户未认证", "", model.ErrUnauthenticated)
	}
	return user, nil
}

// GetOptionalAuthUser は主体がいれば返し、匿名なら nil を返します。
func GetOptionalAuthUser(ctx context.Context) *model.AuthUser {
	user, _ := ctx.Value(model.AuthUserKey).(*model.AuthUser)
	return user
}
