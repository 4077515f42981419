package errors

import (
	"fmt"
	"os"

	"github.com/harakeishi/conflo/pkg/types"
)

// 事前定義されたエラーのファクトリ関数

// NewEnvSourceUndefinedError は設定ソース環境変数未定義エラーを作成します。
func NewEnvSourceUndefinedError(envVar string) *AppError {
	return &AppError{
		Code:    ErrEnvSourceUndefined,
		Message: fmt.Sprintf("設定ソースの環境変数 %s が定義されていません", envVar),
		Fields:  map[string]interface{}{FieldEnvVar: envVar},
	}
}

// NewEnvSourceInvalidError は設定ソース環境変数無効エラーを作成します。
func NewEnvSourceInvalidError(envVar string, value string, cause error) *AppError {
	return &AppError{
		Code:    ErrEnvSourceInvalid,
		Message: fmt.Sprintf("環境変数 %s が指す設定ソースが無効です: %s", envVar, value),
		Cause:   cause,
		Fields: map[string]interface{}{
			FieldEnvVar: envVar,
			FieldGot:    value,
		},
	}
}

// NewReferenceError は参照解決失敗エラーを作成します。
// 正規化失敗・取得失敗のいずれも原因エラーを包んで表します。
func NewReferenceError(ref string, cause error) *AppError {
	return &AppError{
		Code:    ErrRefInvalid,
		Message: fmt.Sprintf("参照 %s を解決できません", ref),
		Cause:   cause,
		Fields:  map[string]interface{}{FieldReference: ref},
	}
}

// NewReferenceValueError は参照先指定無効エラーを作成します。
// 取り込みキーの値が空でない文字列として復号できない場合に使用します。
func NewReferenceValueError(value interface{}) *AppError {
	return &AppError{
		Code:    ErrRefValueInvalid,
		Message: fmt.Sprintf("参照先の指定が無効です: %v", value),
		Fields:  map[string]interface{}{FieldGot: fmt.Sprintf("%v", value)},
	}
}

// NewCircularReferenceError は循環参照エラーを作成します。
// ref には循環を閉じた参照(祖先チェーンに既出のもの)を指定します。
func NewCircularReferenceError(ref types.Reference, chain []types.Reference) *AppError {
	return &AppError{
		Code:    ErrRefCircular,
		Message: fmt.Sprintf("循環参照を検出しました: %s", ref),
		Fields: map[string]interface{}{
			FieldReference: ref.String(),
			FieldChain:     chain,
		},
	}
}

// NewDepthLimitError は参照深度上限超過エラーを作成します。
func NewDepthLimitError(limit int) *AppError {
	return &AppError{
		Code:    ErrRefDepthExceeded,
		Message: fmt.Sprintf("参照の深度上限 %d を超えました", limit),
		Fields:  map[string]interface{}{FieldLimit: limit},
	}
}

// NewMalformedDocumentError はドキュメント不正エラーを作成します。
func NewMalformedDocumentError(cause error) *AppError {
	return &AppError{
		Code:    ErrDocMalformed,
		Message: "ドキュメントの解析に失敗しました",
		Cause:   cause,
	}
}

// NewDuplicateComponentError はコンポーネント重複エラーを作成します。
func NewDuplicateComponentError(name string) *AppError {
	return &AppError{
		Code:    ErrComponentDuplicate,
		Message: fmt.Sprintf("コンポーネント %s が重複して定義されています", name),
		Fields:  map[string]interface{}{FieldComponent: name},
	}
}

// NewUnsupportedComponentError はバリデーターユニット未発見エラーを作成します。
func NewUnsupportedComponentError(name string) *AppError {
	return &AppError{
		Code:    ErrComponentUnsupported,
		Message: fmt.Sprintf("コンポーネント %s はサポートされていません", name),
		Fields:  map[string]interface{}{FieldComponent: name},
	}
}

// NewValidatorUnitError はバリデーターユニット無効エラーを作成します。
// ユニットはロードできたがバリデーター能力を提供しない場合に使用します。
func NewValidatorUnitError(name string, cause error) *AppError {
	return &AppError{
		Code:    ErrComponentValidatorInvalid,
		Message: fmt.Sprintf("コンポーネント %s のバリデーターユニットが無効です", name),
		Cause:   cause,
		Fields:  map[string]interface{}{FieldComponent: name},
	}
}

// NewUnknownOptionError は不明オプションエラーを作成します。
func NewUnknownOptionError(known []string, got string) *AppError {
	return &AppError{
		Code:    ErrOptionUnknown,
		Message: fmt.Sprintf("不明なオプション %s が指定されています", got),
		Fields: map[string]interface{}{
			FieldKnown: known,
			FieldGot:   got,
		},
	}
}

// NewEnumValueError は列挙値不正エラーを作成します。
func NewEnumValueError(known []string, got string) *AppError {
	return &AppError{
		Code:    ErrOptionEnumInvalid,
		Message: fmt.Sprintf("値 %s は許可されていません", got),
		Fields: map[string]interface{}{
			FieldKnown: known,
			FieldGot:   got,
		},
	}
}

// NewComponentValidationError はコンポーネント検証失敗エラーを作成します。
func NewComponentValidationError(name string, cause error) *AppError {
	return &AppError{
		Code:    ErrComponentValidationFailed,
		Message: fmt.Sprintf("コンポーネント %s の検証に失敗しました", name),
		Cause:   cause,
		Fields:  map[string]interface{}{FieldComponent: name},
	}
}

// NewComponentUnregisteredError はコンポーネント未登録エラーを作成します。
// リロード通知では無害として破棄されます。
func NewComponentUnregisteredError(name string) *AppError {
	return &AppError{
		Code:    ErrComponentUnregistered,
		Message: fmt.Sprintf("コンポーネント %s は登録されていません", name),
		Fields:  map[string]interface{}{FieldComponent: name},
	}
}

// NewUnitNotFoundError は通知先ユニット未発見エラーを作成します。
// リロード通知では無害として破棄されます。
func NewUnitNotFoundError(name string) *AppError {
	return &AppError{
		Code:    ErrComponentUnitNotFound,
		Message: fmt.Sprintf("コンポーネント %s の通知先ユニットが見つかりません", name),
		Fields:  map[string]interface{}{FieldComponent: name},
	}
}

// Convert は既知のエラーを AppError に変換します。
// 既に AppError の場合はそのまま返します。
func Convert(err error) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	switch {
	case os.IsNotExist(err):
		return &AppError{
			Code:    ErrRefInvalid,
			Message: "参照先のファイルが存在しません",
			Cause:   err,
		}
	case os.IsPermission(err):
		return &AppError{
			Code:    ErrRefInvalid,
			Message: "参照先のファイルへのアクセス権限がありません",
			Cause:   err,
		}
	default:
		return &AppError{
			Code:    ErrUnknown,
			Message: fmt.Sprintf("予期しないエラーが発生しました: %v", err),
			Cause:   err,
		}
	}
}
