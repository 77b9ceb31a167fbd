// internal/handlers/learning_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"voca-app-backend/internal/middleware"
	"voca-app-backend/internal/model"
	"voca-app-backend/internal/service"
	"voca-app-backend/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type LearningHandler struct {
	service service.LearningService
	logger  *slog.Logger
}

func NewLearningHandler(s service.LearningService, logger *slog.Logger) *LearningHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LearningHandler{
		service: s,
		logger:  logger,
	}
}

// GetModes は学習モード一覧取得のハンドラ
func (h *LearningHandler) GetModes(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetModes"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.GetModes(r.Context(), authUser.UserID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "获取成功", resp)
}

// StartSession は学習セッション開始のハンドラ
func (h *LearningHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartSession"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.StartSessionRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid start session request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.StartSession(r.Context(), authUser.UserID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Learning session started", slog.String("session_id", resp.SessionID))
	webutil.Success(w, logger, http.StatusCreated, "学习会话已创建", resp)
}

// SubmitAnswer は回答提出のハンドラ
func (h *LearningHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitAnswer"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		appErr := model.NewAppError("INVALID_PARAM", "路径参数格式错误", "sessionId", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.SubmitAnswerRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid submit answer request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.SubmitAnswer(r.Context(), authUser.UserID, sessionID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "回答已记录", resp)
}

// CompleteSession はセッション完了のハンドラ
func (h *LearningHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CompleteSession"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		appErr := model.NewAppError("INVALID_PARAM", "路径参数格式错误", "sessionId", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.CompleteSession(r.Context(), authUser.UserID, sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Learning session completed", slog.String("session_id", sessionID))
	webutil.Success(w, logger, http.StatusOK, "学习会话已完成", resp)
}
