// internal/webutil/request_test.go
package webutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voca-app-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("正常系: 妥当なボディ", func(t *testing.T) {
		var req model.SendCodeRequest
		err := DecodeAndValidate(postJSON(`{"email":"alice@example.com"}`), &req)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", req.Email)
	})

	t.Run("異常系: JSONとして不正", func(t *testing.T) {
		var req model.SendCodeRequest
		err := DecodeAndValidate(postJSON(`{"email":`), &req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})

	t.Run("異常系: 未定義フィールドを含む", func(t *testing.T) {
		var req model.SendCodeRequest
		err := DecodeAndValidate(postJSON(`{"email":"alice@example.com","extra":1}`), &req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})

	t.Run("異常系: 全フィールドのバリデーションエラーを集約", func(t *testing.T) {
		var req model.RegisterRequest
		err := DecodeAndValidate(postJSON(`{"email":"not-an-email","password":"123","confirmPassword":"","code":"12"}`), &req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))

		var appErr *model.AppError
		require.True(t, errors.As(err, &appErr))
		// json タグ名でフィールドが列挙される
		assert.Contains(t, appErr.Field, "email")
		assert.Contains(t, appErr.Field, "password")
		assert.Contains(t, appErr.Field, "confirmPassword")
		assert.Contains(t, appErr.Field, "code")
		// 複数メッセージは「；」で連結される
		assert.Contains(t, appErr.Message, "；")
	})
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "正常系: 数値を取得", query: "page=3", want: 3},
		{name: "異常系: 未指定は既定値", query: "", want: 1},
		{name: "異常系: 数値でないものは既定値", query: "page=abc", want: 1},
		{name: "異常系: 0以下は既定値", query: "page=-1", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			assert.Equal(t, tt.want, QueryInt(r, "page", 1))
		})
	}
}

func TestPathInt64(t *testing.T) {
	t.Run("正常系", func(t *testing.T) {
		id, err := PathInt64("42", "wordListId")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("異常系: 数値でない", func(t *testing.T) {
		_, err := PathInt64("abc", "wordListId")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})

	t.Run("異常系: 0以下", func(t *testing.T) {
		_, err := PathInt64("0", "wordListId")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})
}
