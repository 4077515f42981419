// Package cmd は、conflo のコマンドライン機能を提供します。
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/harakeishi/conflo/internal/app"
	"github.com/harakeishi/conflo/internal/config"
	"github.com/harakeishi/conflo/internal/logger"
	"github.com/harakeishi/conflo/internal/parser"
	"github.com/harakeishi/conflo/internal/pipeline"
	"github.com/harakeishi/conflo/internal/registry"
	"github.com/harakeishi/conflo/internal/resolver"
	"github.com/harakeishi/conflo/internal/runtime"
	"github.com/harakeishi/conflo/internal/suggest"
	"github.com/harakeishi/conflo/internal/watcher"
	"github.com/harakeishi/conflo/pkg/types"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd はルートコマンドを表します。
var rootCmd = &cobra.Command{
	Use:   "conflo",
	Short: "レイヤー構成のYAML設定ローダー・検証ツール",
	Long: `conflo はコンポーネントごとのYAML設定を読み込み、インクルード参照を
再帰的に解決した上でスキーマ検証を行うツールです。

実行中のプロセスに対しては、検証済み設定のアトミックな差し替えと
コンポーネントへの変更通知を提供します。`,
	Example: `  # 設定ファイルを検証
  conflo check -f config.yaml

  # 解決済みの設定を表示
  conflo show -f config.yaml

  # 設定を監視しながら常駐
  conflo run -f config.yaml --watch`,
}

// Execute はコマンドを実行します。
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// グローバルフラグの定義
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "ツール設定ファイルのパス (デフォルト: $HOME/.conflo.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "詳細ログ出力")

	// 各サブコマンドをルートコマンドに追加
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(runCmd)
}

// initConfig はツール設定を初期化します。
func initConfig() {
	// .env があれば環境変数へ取り込む
	_ = gotenv.Load()

	if cfgFile != "" {
		// 設定ファイルが指定された場合
		viper.SetConfigFile(cfgFile)
	} else {
		// ホームディレクトリを取得
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// ホームディレクトリに .conflo.yaml を探す
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".conflo")
	}

	// 環境変数の自動バインド
	viper.AutomaticEnv()

	// 設定ファイルを読み込み
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "ツール設定ファイルを使用中:", viper.ConfigFileUsed())
	}
}

// getConfig はツール設定を取得します。
func getConfig() *types.AppConfig {
	// デフォルト設定から開始
	cfg := config.DefaultConfig()

	// Viperからの設定をマージ
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "ツール設定の読み込みに失敗しました: %v\n", err)
		return cfg
	}

	// verboseフラグが設定されている場合
	if verbose {
		cfg.Log.Level = "debug"
	}

	return cfg
}

// getLogger はロガーを取得します。
func getLogger(cfg types.Config) (logger.Logger, error) {
	factory := logger.NewStructuredLoggerFactory(verbose)
	return factory.Create(cfg.GetLog())
}

// newLoaderFactory は基準ディレクトリごとの検証パイプライン構築関数を返します。
func newLoaderFactory(fs afero.Fs, cfg *types.AppConfig, log logger.Logger) app.LoaderFactory {
	return func(baseDir string) pipeline.Loader {
		decoder := parser.NewYamlDecoder(log)
		hints := make([]parser.ContentType, 0, len(cfg.Loader.ContentTypes))
		for _, ct := range cfg.Loader.ContentTypes {
			hints = append(hints, parser.ContentType(ct))
		}
		fetcher := resolver.NewFileFetcherWithHints(fs, hints, log)
		normalizer := resolver.NewPathNormalizer(baseDir)
		refResolver := resolver.NewDocumentResolver(fetcher, normalizer, decoder, log)

		suffix := cfg.Loader.ValidatorSuffix
		if suffix == "" {
			suffix = registry.DefaultValidatorSuffix
		}
		dispatcher := registry.NewConventionDispatcher(
			registry.NewBuiltinProvider(), cfg.Loader.Overrides, suffix, log)

		return pipeline.NewValidationPipeline(
			decoder, refResolver, dispatcher, suggest.NewLevenshteinSuggester(), log)
	}
}

// newService はコマンド共通のサービス一式を構築します。
func newService(cfg *types.AppConfig, log logger.Logger, sourcePath string) *app.ConfigService {
	fs := afero.NewOsFs()
	store := runtime.NewAtomicStore()
	notifier := runtime.NewLoggingNotifier(log)
	manager := runtime.NewManager(store, notifier, log)
	fw := watcher.NewFsnotifyWatcher(cfg.Reload.Debounce, log)

	return app.NewConfigService(
		newLoaderFactory(fs, cfg, log), manager, store, fw, fs, cfg, log, sourcePath)
}
