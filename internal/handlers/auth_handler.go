// internal/handlers/auth_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"voca-app-backend/internal/middleware"
	"voca-app-backend/internal/model"
	"voca-app-backend/internal/service"
	"voca-app-backend/internal/webutil"
)

type AuthHandler struct {
	service service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(s service.AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		service: s,
		logger:  logger,
	}
}

// Register は新規登録のハンドラ
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Register"))

	var req model.RegisterRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid register request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		logger.Warn("Register failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("User registered successfully", slog.Int64("user_id", resp.UserID))
	webutil.Success(w, logger, http.StatusCreated, "注册成功", resp)
}

// Login はログインのハンドラ
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Login"))

	var req model.LoginRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid login request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Login successful", slog.Int64("user_id", resp.UserID))
	webutil.Success(w, logger, http.StatusOK, "登录成功", resp)
}

// RefreshToken はトークン更新のハンドラ
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "RefreshToken"))

	var req model.RefreshTokenRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid refresh request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.RefreshToken(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "Token 刷新成功", resp)
}

// SendCode はメール検証コード送信のハンドラ
func (h *AuthHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SendCode"))

	var req model.SendCodeRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid send-code request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.SendVerificationCode(r.Context(), &req)
	if err != nil {
		logger.Error("Failed to send verification code", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "验证码已发送", resp)
}

// ForgotPassword はパスワード再設定のハンドラ
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ForgotPassword"))

	var req model.ForgotPasswordRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid forgot-password request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "密码重置成功", nil)
}

// Logout はログアウトのハンドラ（要認証）
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Logout"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.Logout(r.Context(), authUser.UserID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "退出登录成功", nil)
}
