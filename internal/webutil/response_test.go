// internal/webutil/response_test.go
package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"voca-app-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, testLogger, http.StatusCreated, "注册成功", map[string]string{"key": "value"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusCreated, env.Code)
	assert.Equal(t, "注册成功", env.Message)
	assert.NotNil(t, env.Data)
	assert.NotEmpty(t, env.Timestamp)
	assert.Nil(t, env.Error)
}

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "入力エラーは400", err: model.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "認証エラーは401", err: model.ErrUnauthenticated, want: http.StatusUnauthorized},
		{name: "権限エラーは403", err: model.ErrForbidden, want: http.StatusForbidden},
		{name: "未検出は404", err: model.ErrNotFound, want: http.StatusNotFound},
		{name: "重複は409", err: model.ErrConflict, want: http.StatusConflict},
		{name: "業務エラーは422", err: model.ErrBusiness, want: http.StatusUnprocessableEntity},
		{name: "未知のエラーは500", err: errors.New("boom"), want: http.StatusInternalServerError},
		{
			name: "AppErrorは包んだセンチネルで判定",
			err:  model.NewAppError("DUPLICATE_EMAIL", "该邮箱已被注册", "email", model.ErrConflict),
			want: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleError(t *testing.T) {
	t.Run("AppErrorはメッセージと詳細を返す", func(t *testing.T) {
		SetProductionMode(false)
		rec := httptest.NewRecorder()
		HandleError(rec, testLogger, model.NewAppError("WORDLIST_NOT_FOUND", "词库不存在", "wordListId", model.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, http.StatusNotFound, env.Code)
		assert.Equal(t, "词库不存在", env.Message)
		assert.NotNil(t, env.Error)
	})

	t.Run("production環境ではerrorフィールドを隠す", func(t *testing.T) {
		SetProductionMode(true)
		defer SetProductionMode(false)

		rec := httptest.NewRecorder()
		HandleError(rec, testLogger, model.NewAppError("WORDLIST_NOT_FOUND", "词库不存在", "wordListId", model.ErrNotFound))

		env := decodeEnvelope(t, rec)
		assert.Equal(t, "词库不存在", env.Message)
		assert.Nil(t, env.Error)
	})

	t.Run("予期しないエラーは固定メッセージで500", func(t *testing.T) {
		SetProductionMode(false)
		rec := httptest.NewRecorder()
		HandleError(rec, testLogger, errors.New("database gone"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "服务器内部错误", env.Message)
	})
}

func TestNotFoundHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	NotFoundHandler(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "接口 GET /api/nope 不存在", env.Message)
}
