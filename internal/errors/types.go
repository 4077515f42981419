// Package errors は、conflo アプリケーション用の構造化エラーハンドリングを提供します。
package errors

import (
	"fmt"
)

// AppError はアプリケーション固有のエラーを表します。
type AppError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"cause,omitempty"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// 構造化フィールドの標準キー
const (
	FieldPath       = "path"
	FieldReference  = "reference"
	FieldChain      = "chain"
	FieldComponent  = "component"
	FieldOption     = "option"
	FieldKnown      = "known"
	FieldGot        = "got"
	FieldLimit      = "limit"
	FieldEnvVar     = "env_var"
	FieldSuggestion = "suggestion"
	FieldCandidates = "candidates"
)

// Error は error インターフェースを実装します。
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap は原因エラーを返します。
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsBenign はリロード通知時に無視してよいエラーかどうかを判定します。
func (e *AppError) IsBenign() bool {
	switch e.Code {
	case ErrComponentUnregistered, ErrComponentUnitNotFound:
		return true
	default:
		return false
	}
}

// Field は指定キーのフィールド値を返します。
func (e *AppError) Field(key string) (interface{}, bool) {
	if e.Fields == nil {
		return nil, false
	}
	value, ok := e.Fields[key]
	return value, ok
}

// WithField はエラーにフィールドを追加します。
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithCause は原因エラーを設定します。
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithPath はエラーに発生位置を設定します。
// 位置は文字列化済みのコンテキストパスとして保持します。
func (e *AppError) WithPath(path fmt.Stringer) *AppError {
	return e.WithField(FieldPath, path.String())
}

// CodeOf はエラーからエラーコードを取り出します。
// AppError でない場合は ErrUnknown を返します。
func CodeOf(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrUnknown
}

// AsAppError はエラーをAppErrorとして取り出します。
func AsAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}
