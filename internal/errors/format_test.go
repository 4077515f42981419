package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harakeishi/conflo/pkg/types"
)

func TestFormat(t *testing.T) {
	t.Run("nilは空文字列", func(t *testing.T) {
		assert.Equal(t, "", Format(nil))
	})

	t.Run("通常のエラーはそのまま", func(t *testing.T) {
		assert.Equal(t, "plain failure", Format(fmt.Errorf("plain failure")))
	})

	// 各種類の失敗メッセージに識別子が逐語的に含まれること
	t.Run("識別子の逐語的な埋め込み", func(t *testing.T) {
		tests := []struct {
			name     string
			err      *AppError
			contains []string
		}{
			{
				name:     "環境変数未定義",
				err:      NewEnvSourceUndefinedError("CONFLO_CONFIG_PATH"),
				contains: []string{"CONFLO_CONFIG_PATH"},
			},
			{
				name:     "環境変数の指す先が無効",
				err:      NewEnvSourceInvalidError("CONFLO_CONFIG_PATH", "/missing.yaml", fmt.Errorf("no such file")),
				contains: []string{"CONFLO_CONFIG_PATH", "/missing.yaml", "no such file"},
			},
			{
				name:     "参照解決失敗",
				err:      NewReferenceError("/etc/app.yaml", fmt.Errorf("permission denied")),
				contains: []string{"/etc/app.yaml", "permission denied"},
			},
			{
				name:     "循環参照",
				err:      NewCircularReferenceError("/a.yaml", []types.Reference{"/a.yaml", "/b.yaml"}),
				contains: []string{"/a.yaml"},
			},
			{
				name:     "深度上限",
				err:      NewDepthLimitError(100),
				contains: []string{"100"},
			},
			{
				name:     "コンポーネント重複",
				err:      NewDuplicateComponentError("logging"),
				contains: []string{"logging"},
			},
			{
				name:     "サポート外コンポーネント",
				err:      NewUnsupportedComponentError("mystery"),
				contains: []string{"mystery"},
			},
			{
				name:     "不明オプション",
				err:      NewUnknownOptionError([]string{"level"}, "levle"),
				contains: []string{"levle"},
			},
			{
				name:     "列挙値不正",
				err:      NewEnumValueError([]string{"debug"}, "dbug"),
				contains: []string{"dbug"},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				formatted := Format(tt.err)
				for _, want := range tt.contains {
					assert.Contains(t, formatted, want)
				}
			})
		}
	})

	t.Run("入れ子の原因は種類に応じたフォーマットへ委譲される", func(t *testing.T) {
		inner := NewEnumValueError([]string{"debug", "info"}, "dbug").
			WithField(FieldSuggestion, "debug").
			WithField(FieldCandidates, "debug, info")
		outer := NewComponentValidationError("logging", inner)

		formatted := Format(outer)
		assert.Contains(t, formatted, "logging")
		assert.Contains(t, formatted, "dbug")
		assert.Contains(t, formatted, "もしかして: debug")
		assert.Contains(t, formatted, "候補: debug, info")
	})

	t.Run("位置情報が末尾に付加される", func(t *testing.T) {
		err := NewUnknownOptionError([]string{"level"}, "levle").
			WithField(FieldPath, "logging.levle")

		assert.Contains(t, Format(err), "(位置: logging.levle)")
	})
}

func TestAppError(t *testing.T) {
	t.Run("原因のUnwrap", func(t *testing.T) {
		cause := fmt.Errorf("root cause")
		err := NewMalformedDocumentError(cause)
		assert.Equal(t, cause, err.Unwrap())
	})

	t.Run("カテゴリはコードの接頭辞から導出される", func(t *testing.T) {
		assert.Equal(t, ErrorCategoryEnv, NewEnvSourceUndefinedError("X").Code.Category())
		assert.Equal(t, ErrorCategoryReference, NewDepthLimitError(1).Code.Category())
		assert.Equal(t, ErrorCategoryDocument, NewMalformedDocumentError(nil).Code.Category())
		assert.Equal(t, ErrorCategoryComponent, NewDuplicateComponentError("x").Code.Category())
		assert.Equal(t, ErrorCategoryOption, NewUnknownOptionError(nil, "x").Code.Category())
	})

	t.Run("無害なエラーの判定", func(t *testing.T) {
		assert.True(t, NewComponentUnregisteredError("x").IsBenign())
		assert.True(t, NewUnitNotFoundError("x").IsBenign())
		assert.False(t, NewDuplicateComponentError("x").IsBenign())
	})

	t.Run("Convertは既知のエラーを分類する", func(t *testing.T) {
		appErr := Convert(fmt.Errorf("anything"))
		require.NotNil(t, appErr)
		assert.Equal(t, ErrUnknown, appErr.Code)

		same := NewDepthLimitError(3)
		assert.Same(t, same, Convert(same))
	})
}
