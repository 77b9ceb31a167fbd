// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"voca-app-backend/internal/model"
)

// production は true のとき error フィールドの出力を抑止します。
// 起動時に config から一度だけ設定する。
var production bool

func SetProductionMode(enabled bool) {
	production = enabled
}

// Envelope は全APIレスポンス共通の形 {code, message, data, timestamp}。
// Error はエラー時のみ、かつ非production環境のみ付与される。
type Envelope struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Error     any    `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Success は成功レスポンスをエンベロープで返します
func Success(w http.ResponseWriter, logger *slog.Logger, statusCode int, message string, data any) {
	respondJSON(w, logger, statusCode, Envelope{
		Code:      statusCode,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// HandleError はエラーを解釈し、適切なJSONエラーレスポンスを返します。
// これがアプリケーションのエラーハンドリングの中心となります。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := MapErrorToStatusCode(err)

	env := Envelope{
		Code:      statusCode,
		Data:      nil,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	var appErr *model.AppError
	if errors.As(err, &appErr) {
		env.Message = appErr.Message
		if !production {
			env.Error = appErr
		}
	} else {
		// 予期せぬエラー。詳細はログにのみ出す
		logger.Error("Unhandled error", "error", err)
		env.Message = "服务器内部错误"
		if !production {
			env.Error = err.Error()
		}
	}

	respondJSON(w, logger, statusCode, env)
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	var appErr *model.AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		err = appErr.Unwrap()
	}

	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrBusiness):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error marshaling JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code":500,"message":"服务器内部错误","data":null}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// NotFoundHandler は未定義ルートへの404レスポンスを返します
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	env := Envelope{
		Code:      http.StatusNotFound,
		Message:   "接口 " + r.Method + " " + r.URL.Path + " 不存在",
		Data:      nil,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	respondJSON(w, slog.Default(), http.StatusNotFound, env)
}
