// internal/model/error.go
package model

import "errors"

// アプリケーション共通のセンチネルエラー
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("resource conflict")
	ErrBusiness        = errors.New("business rule violation")
	ErrInternalServer  = errors.New("internal server error")
)

// AppError はコード・メッセージ・対象フィールドを持つアプリケーションエラー。
// Err には上記のセンチネルをラップし、HTTPステータスへの変換は webutil 側で一度だけ行う。
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Field:   field,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// FieldError は検証エラー1フィールド分の詳細
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}
