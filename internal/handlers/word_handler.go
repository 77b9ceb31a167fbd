// internal/handlers/word_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"voca-app-backend/internal/model"
	"voca-app-backend/internal/service"
	"voca-app-backend/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type WordHandler struct {
	service service.WordService
	logger  *slog.Logger
}

func NewWordHandler(s service.WordService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{
		service: s,
		logger:  logger,
	}
}

// GetWord は単語詳細取得のハンドラ。認証不要
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWord"))

	wordID, err := webutil.PathInt64(chi.URLParam(r, "wordId"), "wordId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.GetWord(r.Context(), wordID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "获取成功", resp)
}

// CreateWord は単語作成のハンドラ。認証ユーザーなら誰でも追加できる
func (h *WordHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateWord"))

	var req model.CreateWordRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid create word request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.CreateWord(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word created", slog.Int64("word_id", resp.WordID))
	webutil.Success(w, logger, http.StatusCreated, "单词创建成功", resp)
}

// UpdateWord は単語更新のハンドラ。管理者のみ
func (h *WordHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateWord"))

	wordID, err := webutil.PathInt64(chi.URLParam(r, "wordId"), "wordId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.UpdateWordRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid update word request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.UpdateWord(r.Context(), wordID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "单词更新成功", resp)
}

// DeleteWord は単語削除のハンドラ。管理者のみ
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWord"))

	wordID, err := webutil.PathInt64(chi.URLParam(r, "wordId"), "wordId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.DeleteWord(r.Context(), wordID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "单词删除成功", nil)
}
