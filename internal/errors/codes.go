package errors

import "strings"

// ErrorCode はエラーコードを表します。
type ErrorCode string

// ErrorCategory はエラーカテゴリを表します。
type ErrorCategory string

const (
	ErrorCategoryEnv       ErrorCategory = "ENV"
	ErrorCategoryReference ErrorCategory = "REF"
	ErrorCategoryDocument  ErrorCategory = "DOC"
	ErrorCategoryComponent ErrorCategory = "COMPONENT"
	ErrorCategoryOption    ErrorCategory = "OPTION"
	ErrorCategoryUnknown   ErrorCategory = "UNKNOWN"
)

// 環境変数ソース関連エラー
const (
	ErrEnvSourceUndefined ErrorCode = "ENV_SOURCE_UNDEFINED"
	ErrEnvSourceInvalid   ErrorCode = "ENV_SOURCE_INVALID"
)

// 参照解決関連エラー
const (
	ErrRefInvalid       ErrorCode = "REF_INVALID"
	ErrRefValueInvalid  ErrorCode = "REF_VALUE_INVALID"
	ErrRefCircular      ErrorCode = "REF_CIRCULAR"
	ErrRefDepthExceeded ErrorCode = "REF_DEPTH_EXCEEDED"
)

// ドキュメント関連エラー
const (
	ErrDocMalformed ErrorCode = "DOC_MALFORMED"
)

// コンポーネント関連エラー
const (
	ErrComponentDuplicate        ErrorCode = "COMPONENT_DUPLICATE"
	ErrComponentUnsupported      ErrorCode = "COMPONENT_UNSUPPORTED"
	ErrComponentValidatorInvalid ErrorCode = "COMPONENT_VALIDATOR_INVALID"
	ErrComponentValidationFailed ErrorCode = "COMPONENT_VALIDATION_FAILED"
)

// リロード通知で無害として扱うエラー
const (
	ErrComponentUnregistered ErrorCode = "COMPONENT_UNREGISTERED"
	ErrComponentUnitNotFound ErrorCode = "COMPONENT_UNIT_NOT_FOUND"
)

// オプション関連エラー
const (
	ErrOptionUnknown     ErrorCode = "OPTION_UNKNOWN"
	ErrOptionEnumInvalid ErrorCode = "OPTION_ENUM_INVALID"
)

// 汎用エラー
const (
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
)

// Category はエラーコードのカテゴリを返します。
func (c ErrorCode) Category() ErrorCategory {
	parts := strings.Split(string(c), "_")
	if len(parts) == 0 {
		return ErrorCategoryUnknown
	}

	switch parts[0] {
	case "ENV":
		return ErrorCategoryEnv
	case "REF":
		return ErrorCategoryReference
	case "DOC":
		return ErrorCategoryDocument
	case "COMPONENT":
		return ErrorCategoryComponent
	case "OPTION":
		return ErrorCategoryOption
	default:
		return ErrorCategoryUnknown
	}
}

// String はエラーコードを文字列として返します。
func (c ErrorCode) String() string {
	return string(c)
}
