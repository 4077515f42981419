// Package app は、アプリケーション層のサービスと依存性注入を提供します。
package app

import (
	"context"

	"github.com/harakeishi/conflo/internal/pipeline"
	"github.com/harakeishi/conflo/pkg/types"
)

// EnvConfigPath は設定ファイルパスの探索に用いる環境変数名です。
const EnvConfigPath = "CONFLO_CONFIG_PATH"

// Service は設定ライフサイクルの集約インターフェースです。
type Service interface {
	// Start は初回ロードを行い、監視が有効な場合はファイル監視を開始します。
	Start(ctx context.Context) error
	// Stop はファイル監視を停止します。
	Stop(ctx context.Context) error
	// LoadFile は指定されたファイルから設定を初回ロードします。
	// path が空の場合は環境変数 CONFLO_CONFIG_PATH から探索します。
	LoadFile(ctx context.Context, path string) error
	// ReloadFile は指定されたファイルから設定を再ロードします。
	// path が空の場合は現在のソースパスを使用します。
	ReloadFile(ctx context.Context, path string) error
	// Load は既に読み込まれたドキュメントから設定を初回ロードします。
	Load(ctx context.Context, doc types.Document) error
	// Reload は既に読み込まれたドキュメントから設定を再ロードします。
	Reload(ctx context.Context, doc types.Document) error
	// CurrentSourcePath は現在有効な設定のソースパスを返します。
	CurrentSourcePath() string
	// Current は現在有効な設定スナップショットを返します。
	Current() (types.ResolvedConfig, bool)
}

// LoaderFactory は基準ディレクトリごとに検証パイプラインを構築します。
// 相対参照はロード対象ファイルのディレクトリを基準に解決されるため、
// ロードごとに新しいLoaderを作成します。
type LoaderFactory func(baseDir string) pipeline.Loader
