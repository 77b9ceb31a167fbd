// internal/handlers/user_handler.go
package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"voca-app-backend/internal/middleware"
	"voca-app-backend/internal/model"
	"voca-app-backend/internal/service"
	"voca-app-backend/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService     service.UserService
	wordListService service.WordListService
	logger          *slog.Logger
}

func NewUserHandler(us service.UserService, wls service.WordListService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService:     us,
		wordListService: wls,
		logger:          logger,
	}
}

// GetProfile は自分のプロフィール取得のハンドラ
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProfile"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	user, err := h.userService.GetProfile(r.Context(), authUser.UserID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "获取成功", user)
}

// UpdateProfile はプロフィール更新のハンドラ
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateProfile"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.UpdateProfileRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid profile update request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), authUser.UserID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Profile updated", slog.Int64("user_id", authUser.UserID))
	webutil.Success(w, logger, http.StatusOK, "资料更新成功", user)
}

// UpdateStudyGoal は学習目標更新のハンドラ
func (h *UserHandler) UpdateStudyGoal(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateStudyGoal"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.UpdateStudyGoalRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid study goal request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	user, err := h.userService.UpdateStudyGoal(r.Context(), authUser.UserID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "学习目标更新成功", user)
}

// UploadAvatar はアバター画像アップロードのハンドラ。
// multipart/form-data の avatar フィールドを受け取る。
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UploadAvatar"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	// フォーム全体はメモリ上限つきでパースする
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		logger.Warn("Failed to parse multipart form", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_FORM", "上传表单格式错误", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		logger.Warn("Avatar file missing", slog.String("error", err.Error()))
		appErr := model.NewAppError("FILE_MISSING", "请选择要上传的图片", "avatar", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read avatar file", slog.Any("error", err))
		appErr := model.NewAppError("INTERNAL_SERVER_ERROR", "文件读取失败", "", err)
		webutil.HandleError(w, logger, appErr)
		return
	}

	url, err := h.userService.UploadAvatar(r.Context(), authUser.UserID, data, header.Header.Get("Content-Type"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Avatar uploaded", slog.Int64("user_id", authUser.UserID))
	webutil.Success(w, logger, http.StatusOK, "头像上传成功", map[string]string{"userAvatar": url})
}

// DeleteAvatar はアバター削除のハンドラ
func (h *UserHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteAvatar"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.userService.DeleteAvatar(r.Context(), authUser.UserID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "头像删除成功", nil)
}

// GetStats は自分の学習統計取得のハンドラ
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStats"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	stats, err := h.userService.GetStats(r.Context(), authUser.UserID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "获取成功", stats)
}

// GetUserStats は指定ユーザーの学習統計取得のハンドラ。
// RequireOwnerOrAdmin("userId") の後段で使う。
func (h *UserHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetUserStats"))

	userID, err := webutil.PathInt64(chi.URLParam(r, "userId"), "userId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	stats, err := h.userService.GetStats(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "获取成功", stats)
}

// GetMyWordLists は参加中词库一覧取得のハンドラ
func (h *UserHandler) GetMyWordLists(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMyWordLists"))

	authUser, err := middleware.GetAuthUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	page := webutil.QueryInt(r, "page", 1)
	limit := webutil.QueryInt(r, "limit", 10)
	search := r.URL.Query().Get("search")

	resp, err := h.wordListService.GetMyWordLists(r.Context(), authUser.UserID, page, limit, search)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.Success(w, logger, http.StatusOK, "获取成功", resp)
}
