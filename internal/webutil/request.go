package webutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"voca-app-backend/internal/model"

	"github.com/go-playground/validator/v10"
)

// DecodeJSONBody はリクエストボディをデコードします。
// 未定義フィールドはエラーとして扱う。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError("INVALID_BODY", "请求体不能为空", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.NewAppError("INVALID_BODY", "请求体格式错误", "", model.ErrInvalidInput)
	}
	return nil
}

// DecodeAndValidate はデコードとバリデーションをまとめて実行します。
// バリデーションエラーは全フィールド分を翻訳済みメッセージに集約する。
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSONBody(r, dst); err != nil {
		return err
	}
	if err := Validator.Struct(dst); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return NewValidationErrorResponse(errs)
		}
		return model.NewAppError("VALIDATION_ERROR", "参数校验失败", "", model.ErrInvalidInput)
	}
	return nil
}

// NewValidationErrorResponse はバリデーションエラー群を1つのAppErrorに集約します
func NewValidationErrorResponse(errs validator.ValidationErrors) *model.AppError {
	var fields []string
	var messages []string

	for _, err := range errs {
		fields = append(fields, err.Field())
		messages = append(messages, err.Translate(Trans))
	}

	return model.NewAppError(
		"VALIDATION_ERROR",
		strings.Join(messages, "；"),
		strings.Join(fields, ","),
		model.ErrInvalidInput,
	)
}

// QueryInt はクエリパラメータを int として取得します。無効な値は既定値にフォールバックする
func QueryInt(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

// PathInt64 はパスパラメータを int64 として解釈します
func PathInt64(value string, field string) (int64, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, model.NewAppError("INVALID_PARAM", "路径参数格式错误", field, model.ErrInvalidInput)
	}
	return parsed, nil
}
