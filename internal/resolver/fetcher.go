package resolver

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/harakeishi/conflo/internal/logger"
	"github.com/harakeishi/conflo/internal/parser"
	"github.com/harakeishi/conflo/pkg/types"
)

// FileFetcher はファイルシステムから参照先を取得するFetcher実装です。
// afero.Fs を抽象として受け取るため、テストではインメモリFSを利用できます。
type FileFetcher struct {
	fs     afero.Fs
	hints  []parser.ContentType
	logger logger.Logger
}

// NewFileFetcher は新しいFileFetcherを作成します。
// コンテンツ種別ヒントは参照の拡張子から導出されます。
func NewFileFetcher(fs afero.Fs, logger logger.Logger) *FileFetcher {
	return &FileFetcher{
		fs:     fs,
		logger: logger,
	}
}

// NewFileFetcherWithHints は設定で指定されたコンテンツ種別ヒントを
// 優先するFileFetcherを作成します。ヒントが空の場合は拡張子導出に
// フォールバックします。
func NewFileFetcherWithHints(fs afero.Fs, hints []parser.ContentType, logger logger.Logger) *FileFetcher {
	return &FileFetcher{
		fs:     fs,
		hints:  hints,
		logger: logger,
	}
}

// Fetch は参照先ファイルの生バイト列を読み込みます。
// タイムアウトの制御は呼び出し側の責務です。
func (f *FileFetcher) Fetch(ctx context.Context, ref types.Reference) ([]byte, error) {
	f.logger.Debug(ctx, "参照先ファイル読み込み", types.Field{Key: "reference", Value: ref.String()})
	return afero.ReadFile(f.fs, ref.String())
}

// ContentTypes は優先順位付きのコンテンツ種別ヒントを返します。
// 設定でヒントが指定されていればそれを優先し、なければ参照の拡張子から
// 導出します。
func (f *FileFetcher) ContentTypes(ref types.Reference) []parser.ContentType {
	if len(f.hints) > 0 {
		return f.hints
	}
	switch strings.ToLower(filepath.Ext(ref.String())) {
	case ".yml", ".yaml":
		return []parser.ContentType{parser.ContentTypeYAML, parser.ContentTypeYAMLText}
	default:
		return []parser.ContentType{parser.ContentTypeYAML}
	}
}
