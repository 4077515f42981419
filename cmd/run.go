package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harakeishi/conflo/pkg/types"
)

var (
	runFile   string
	runWatch  bool
	runPolicy string
)

// runCmd は設定を適用した上で常駐し、変更を監視します。
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "設定を適用して常駐",
	Long: `設定ファイルを読み込んで適用し、シグナルを受けるまで常駐します。
--watch が有効な場合はファイル変更を監視し、変更検知のたびに再ロードを試みます。
再ロードの失敗は記録されるのみで、現行の設定は維持されます。`,
	Example: `  # 設定を適用して常駐
  conflo run -f config.yaml

  # ファイル変更を監視しながら常駐
  conflo run -f config.yaml --watch

  # 初回ロード失敗時の動作を指定
  conflo run -f config.yaml --on-startup-failure crash`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := getConfig()

		// フラグによる上書き
		if runWatch {
			cfg.Reload.Watch = true
		}
		if runPolicy != "" {
			cfg.Reload.OnStartupFailure = types.StartupPolicy(runPolicy)
		}

		log, err := getLogger(cfg)
		if err != nil {
			return fmt.Errorf("ロガーの初期化に失敗しました: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("ツール設定が無効です: %w", err)
		}

		svc := newService(cfg, log, runFile)
		if err := svc.Start(ctx); err != nil {
			return err
		}
		defer func() {
			_ = svc.Stop(ctx)
		}()

		log.Info(ctx, "起動しました",
			types.Field{Key: "path", Value: svc.CurrentSourcePath()},
			types.Field{Key: "watch", Value: cfg.Reload.Watch})

		// シグナル受信まで常駐
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			log.Info(ctx, "シグナルを受信しました。終了します",
				types.Field{Key: "signal", Value: sig.String()})
		case <-ctx.Done():
		}

		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "設定ファイルのパス (未指定時は CONFLO_CONFIG_PATH)")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "設定ファイルの変更を監視して再ロード")
	runCmd.Flags().StringVar(&runPolicy, "on-startup-failure", "", "初回ロード失敗時の動作 (stop, crash, その他はhalt)")
}
