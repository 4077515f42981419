package resolver

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harakeishi/conflo/internal/logger"
	"github.com/harakeishi/conflo/internal/parser"
	"github.com/harakeishi/conflo/pkg/types"
)

func TestFileFetcher_Fetch(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/conf/base.yaml", []byte("logging:\n  level: info\n"), 0o644))

	fetcher := NewFileFetcher(fs, &logger.NopLogger{})

	t.Run("存在するファイルの内容を返す", func(t *testing.T) {
		data, err := fetcher.Fetch(context.Background(), types.Reference("/conf/base.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "logging:")
	})

	t.Run("存在しないファイルはエラー", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), types.Reference("/conf/missing.yaml"))
		assert.Error(t, err)
	})
}

func TestFileFetcher_ContentTypes(t *testing.T) {
	fs := afero.NewMemMapFs()

	t.Run("ヒント未指定時は拡張子から導出する", func(t *testing.T) {
		fetcher := NewFileFetcher(fs, &logger.NopLogger{})

		assert.Equal(t,
			[]parser.ContentType{parser.ContentTypeYAML, parser.ContentTypeYAMLText},
			fetcher.ContentTypes(types.Reference("/conf/base.yaml")))
		assert.Equal(t,
			[]parser.ContentType{parser.ContentTypeYAML},
			fetcher.ContentTypes(types.Reference("/conf/base.conf")))
	})

	t.Run("設定のヒントが拡張子より優先される", func(t *testing.T) {
		hints := []parser.ContentType{parser.ContentTypeYAMLText}
		fetcher := NewFileFetcherWithHints(fs, hints, &logger.NopLogger{})

		assert.Equal(t, hints, fetcher.ContentTypes(types.Reference("/conf/base.yaml")))
		assert.Equal(t, hints, fetcher.ContentTypes(types.Reference("/conf/base.conf")))
	})

	t.Run("空のヒントは拡張子導出にフォールバックする", func(t *testing.T) {
		fetcher := NewFileFetcherWithHints(fs, nil, &logger.NopLogger{})

		assert.Equal(t,
			[]parser.ContentType{parser.ContentTypeYAML, parser.ContentTypeYAMLText},
			fetcher.ContentTypes(types.Reference("/conf/base.yaml")))
	})
}
