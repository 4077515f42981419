package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatResolved(t *testing.T) {
	output := map[string]interface{}{
		"logging": map[string]interface{}{"level": "info"},
	}

	t.Run("yaml形式で出力する", func(t *testing.T) {
		text, err := formatResolved("yaml", output)
		require.NoError(t, err)
		assert.Contains(t, text, "logging:")
		assert.Contains(t, text, "level: info")
	})

	t.Run("json形式で出力する", func(t *testing.T) {
		text, err := formatResolved("json", output)
		require.NoError(t, err)
		assert.Contains(t, text, `"logging"`)
		assert.Contains(t, text, `"level": "info"`)
	})

	t.Run("未対応の形式はエラー", func(t *testing.T) {
		_, err := formatResolved("toml", output)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "未対応の出力形式")
	})
}
