// internal/handlers/wordlist_handler.go
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

type WordListHandler struct {
	service service.WordListService
	logger  *slog.Logger
}

func NewWordListHandler(s service.WordListService, logger *slog.Logger) *WordListHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordListHandler{
		service: s,
		logger:  logger,
	}
}

// GetWordLists は词库一覧取得のハンドラ。認証は任意
func (h *WordListHandler) GetWordLists(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWordLists"))

	query := &model.WordListQuery{
		Page:   webutil.QueryInt(r, "page", 1),
		Limit:  webutil.QueryInt(r, "limit", 10),
		Type:   r.URL.Query().Get("type"),
		Search: r.URL.Query().Get("search"),
	}
	if query.Type == "" {
		query.Type = model.WordListTypeAll
	}

	viewer := middleware.GetOptionalAuthUser(r.Context())

	resp, err := h.service.GetWordLists(r.Context(), query, viewer)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "获取成功", resp)
}

// GetWordList は词库詳細取得のハンドラ。認証は任意
func (h *WordListHandler) GetWordList(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWordList"))

	listID, err := webutil.PathInt64(chi.URLParam(r, "wordListId"), "wordListId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	viewer := middleware.GetOptionalAuthUser(r.Context())

	resp, err := h.service.GetWordList(r.Context(), listID, viewer)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "获取成功", resp)
}

// GetWordListWords は词库内の単語一覧取得のハンドラ
func (h *WordListHandler) GetWordListWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWordListWords"))

	listID, err := webutil.PathInt64(chi.URLParam(r, "wordListId"), "wordListId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	page := webutil.QueryInt(r, "page", 1)
	limit := webutil.QueryInt(r, "limit", 20)

	resp, err := h.service.GetWordListWords(r.Context(), listID, page, limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "获取成功", resp)
}

// CreateWordList は词库作成のハンドラ
func (h *WordListHandler) CreateWordList(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateWordList"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CreateWordListRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid create word list request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.CreateWordList(r.Context(), authUser, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word list created", slog.Int64("word_list_id", resp.WordListID))
	webutil.Success(w, logger, http.StatusCreated, "词库创建成功", resp)
}

// UpdateWordList は词库更新のハンドラ
func (h *WordListHandler) UpdateWordList(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateWordList"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	listID, err := webutil.PathInt64(chi.URLParam(r, "wordListId"), "wordListId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.UpdateWordListRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid update word list request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.UpdateWordList(r.Context(), authUser, listID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "词库更新成功", resp)
}

// DeleteWordList は词库削除のハンドラ
func (h *WordListHandler) DeleteWordList(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWordList"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	listID, err := webutil.PathInt64(chi.URLParam(r, "wordListId"), "wordListId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.DeleteWordList(r.Context(), authUser, listID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "词库删除成功", nil)
}

// AddWords は词库への単語一括追加のハンドラ
func (h *WordListHandler) AddWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AddWords"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	listID, err := webutil.PathInt64(chi.URLParam(r, "wordListId"), "wordListId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.AddWordsRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid add words request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.AddWords(r.Context(), authUser, listID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "单词添加成功", resp)
}

// RemoveWord は词库からの単語除外のハンドラ
func (h *WordListHandler) RemoveWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "RemoveWord"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	listID, err := webutil.PathInt64(chi.URLParam(r, "wordListId"), "wordListId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	wordID, err := webutil.PathInt64(chi.URLParam(r, "wordId"), "wordId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.RemoveWord(r.Context(), authUser, listID, wordID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "单词移除成功", resp)
}

// GetMyWordLists は参加中词库一覧のハンドラ（/api/user-wordlist/my）
func (h *WordListHandler) GetMyWordLists(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMyWordLists"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	page := webutil.QueryInt(r, "page", 1)
	limit := webutil.QueryInt(r, "limit", 10)
	search := r.URL.Query().Get("search")

	resp, err := h.service.GetMyWordLists(r.Context(), authUser.UserID, page, limit, search)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "获取成功", resp)
}

// JoinWordList は词库参加のハンドラ
func (h *WordListHandler) JoinWordList(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "JoinWordList"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.AddUserWordListRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid join word list request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.JoinWordList(r.Context(), authUser.UserID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("User joined word list", slog.Int64("user_id", authUser.UserID), slog.Int64("word_list_id", req.WordListID))
	webutil.Success(w, logger, http.StatusCreated, "词库添加成功", resp)
}

// LeaveWordList は词库参加解除のハンドラ
func (h *WordListHandler) LeaveWordList(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "LeaveWordList"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	listID, err := webutil.PathInt64(chi.URLParam(r, "wordListId"), "wordListId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.LeaveWordList(r.Context(), authUser.UserID, listID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "词库移除成功", nil)
}
