package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/harakeishi/conflo/internal/errors"
	"github.com/harakeishi/conflo/pkg/types"
)

var checkFile string

// checkCmd は設定ファイルの検証のみを行います。
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "設定ファイルを検証",
	Long: `設定ファイルを読み込み、インクルード参照の解決とスキーマ検証を行います。
検証済み設定の適用は行いません。`,
	Example: `  # ファイルを指定して検証
  conflo check -f config.yaml

  # CONFLO_CONFIG_PATH から探索して検証
  conflo check`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := getConfig()

		log, err := getLogger(cfg)
		if err != nil {
			return fmt.Errorf("ロガーの初期化に失敗しました: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("ツール設定が無効です: %w", err)
		}

		svc := newService(cfg, log, checkFile)
		if err := svc.LoadFile(ctx, checkFile); err != nil {
			fmt.Fprintln(os.Stderr, apperrors.Format(err))
			return err
		}

		resolved, _ := svc.Current()
		log.Info(ctx, "検証が完了しました",
			types.Field{Key: "path", Value: svc.CurrentSourcePath()},
			types.Field{Key: "components", Value: len(resolved)})
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "設定ファイルのパス (未指定時は CONFLO_CONFIG_PATH)")
}
