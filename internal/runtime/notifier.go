package runtime

import (
	"context"

	"github.com/harakeishi/conflo/internal/logger"
	"github.com/harakeishi/conflo/pkg/types"
)

// LoggingNotifier は変更内容をログに記録するだけのChangeNotifier実装です。
// リロードフックを持たないホスト向けの既定実装です。
type LoggingNotifier struct {
	logger logger.Logger
}

// NewLoggingNotifier は新しいLoggingNotifierを作成します。
func NewLoggingNotifier(logger logger.Logger) *LoggingNotifier {
	return &LoggingNotifier{logger: logger}
}

// Notify は設定変更をログに記録します。
func (n *LoggingNotifier) Notify(ctx context.Context, change types.ChangeNotification) error {
	if change.Removed {
		n.logger.Info(ctx, "コンポーネント設定が削除されました",
			types.Field{Key: "component", Value: change.Component})
		return nil
	}

	n.logger.Info(ctx, "コンポーネント設定が変更されました",
		types.Field{Key: "component", Value: change.Component},
		types.Field{Key: "options", Value: len(change.New)})
	n.logger.Debug(ctx, "変更後の設定",
		types.Field{Key: "component", Value: change.Component},
		types.Field{Key: "config", Value: logger.FormatJSON(change.New)})
	return nil
}
