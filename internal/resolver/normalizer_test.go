package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harakeishi/conflo/pkg/types"
)

func TestPathNormalizer_Normalize(t *testing.T) {
	env := map[string]string{
		"CONF_DIR": "etc/conflo",
	}
	lookup := func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}

	n := NewPathNormalizerWithLookup("/base", lookup)

	t.Run("相対パスは基準ディレクトリから解決される", func(t *testing.T) {
		ref, err := n.Normalize("sub/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, types.Reference("/base/sub/config.yaml"), ref)
	})

	t.Run("絶対パスはそのまま", func(t *testing.T) {
		ref, err := n.Normalize("/etc/app/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, types.Reference("/etc/app/config.yaml"), ref)
	})

	t.Run("冗長なセグメントは正規化される", func(t *testing.T) {
		ref, err := n.Normalize("/etc/./app/../app/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, types.Reference("/etc/app/config.yaml"), ref)
	})

	t.Run("環境変数セグメントを置換する", func(t *testing.T) {
		ref, err := n.Normalize("/$CONF_DIR/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, types.Reference("/etc/conflo/config.yaml"), ref)
	})

	t.Run("未定義の環境変数はそのまま残す", func(t *testing.T) {
		ref, err := n.Normalize("/$UNDEFINED/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, types.Reference("/$UNDEFINED/config.yaml"), ref)
	})

	t.Run("空の参照は失敗する", func(t *testing.T) {
		_, err := n.Normalize("   ")
		require.Error(t, err)
	})

	t.Run("変数名が空のマーカーは失敗する", func(t *testing.T) {
		_, err := n.Normalize("/etc/$/config.yaml")
		require.Error(t, err)
	})
}
