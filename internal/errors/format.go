package errors

import "fmt"

// Format はエラーを人間可読な文字列に変換する唯一のエントリポイントです。
// 入れ子になった原因エラーは、その種類に応じたフォーマットへ委譲され、
// 早期に不透明な文字列へ潰されることはありません。
func Format(err error) string {
	if err == nil {
		return ""
	}

	appErr, ok := err.(*AppError)
	if !ok {
		return err.Error()
	}

	msg := appErr.Message

	// 提案エンジンによる付加情報
	if suggestion, ok := appErr.Field(FieldSuggestion); ok {
		msg = fmt.Sprintf("%s。もしかして: %v", msg, suggestion)
	}
	if candidates, ok := appErr.Field(FieldCandidates); ok {
		if list, isString := candidates.(string); isString && list != "" {
			msg = fmt.Sprintf("%s (候補: %s)", msg, list)
		}
	}

	// 原因エラーへの委譲
	if appErr.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, Format(appErr.Cause))
	}

	// 発生位置
	if path, ok := appErr.Field(FieldPath); ok {
		if location, isString := path.(string); isString && location != "" {
			msg = fmt.Sprintf("%s (位置: %s)", msg, location)
		}
	}

	return msg
}
