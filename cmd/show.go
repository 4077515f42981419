package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	apperrors "github.com/harakeishi/conflo/internal/errors"
)

var (
	showFile   string
	showFormat string
)

// showCmd は解決済みの設定を表示します。
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "解決済みの設定を表示",
	Long: `設定ファイルを読み込み、インクルード参照の解決とスキーマ検証を行った上で、
解決済みの設定をコンポーネント単位で表示します。`,
	Example: `  # 解決済み設定をYAMLで表示
  conflo show -f config.yaml

  # 特定コンポーネントのみ表示
  conflo show -f config.yaml logging`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := getConfig()

		log, err := getLogger(cfg)
		if err != nil {
			return fmt.Errorf("ロガーの初期化に失敗しました: %w", err)
		}

		svc := newService(cfg, log, showFile)
		if err := svc.LoadFile(ctx, showFile); err != nil {
			fmt.Fprintln(os.Stderr, apperrors.Format(err))
			return err
		}

		resolved, _ := svc.Current()

		// コンポーネント名が指定された場合は絞り込む
		if len(args) > 0 {
			name := args[0]
			component, ok := resolved.Component(name)
			if !ok {
				err := apperrors.NewUnitNotFoundError(name)
				fmt.Fprintln(os.Stderr, apperrors.Format(err))
				return err
			}
			return printResolved(cmd, map[string]interface{}{name: component})
		}

		output := make(map[string]interface{}, len(resolved))
		for name, component := range resolved {
			output[name] = component
		}
		return printResolved(cmd, output)
	},
}

// printResolved は解決済み設定を --format で指定された形式で出力します。
func printResolved(cmd *cobra.Command, output map[string]interface{}) error {
	text, err := formatResolved(showFormat, output)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

// formatResolved は解決済み設定を指定された形式の文字列に変換します。
func formatResolved(format string, output map[string]interface{}) (string, error) {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(output)
		if err != nil {
			return "", fmt.Errorf("設定の出力に失敗しました: %w", err)
		}
		return string(data), nil
	case "json":
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return "", fmt.Errorf("設定の出力に失敗しました: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("未対応の出力形式です: %s", format)
	}
}

func init() {
	showCmd.Flags().StringVarP(&showFile, "file", "f", "", "設定ファイルのパス (未指定時は CONFLO_CONFIG_PATH)")
	showCmd.Flags().StringVar(&showFormat, "format", "yaml", "出力形式 (yaml|json)")
}
