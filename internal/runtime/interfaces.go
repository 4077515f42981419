// Package runtime は、検証済み設定の適用とライブスナップショットの管理機能を提供します。
package runtime

import (
	"context"

	"github.com/harakeishi/conflo/pkg/types"
)

// ConfigStore はプロセス全体のライブ設定スナップショットを保持するインターフェースです。
// スナップショットの読み取りはリロードと並行して安全であり、差し替えは常に
// 参照の一括置換で行われます。旧参照を保持する読み手は一貫した旧設定を見続けます。
type ConfigStore interface {
	Get() (types.ResolvedConfig, bool)
	Install(cfg types.ResolvedConfig)
	Swap(cfg types.ResolvedConfig) types.ResolvedConfig
	Loaded() bool
}

// ChangeNotifier はコンポーネントへの設定変更通知を行うインターフェースです。
// リロード時に現在登録されているコンポーネントごとに1回呼び出されます。
type ChangeNotifier interface {
	Notify(ctx context.Context, change types.ChangeNotification) error
}

// ApplyManager は検証済み設定の適用を行うインターフェースです。
type ApplyManager interface {
	Apply(ctx context.Context, cfg types.ResolvedConfig, isReload bool) error
	HandleStartupFailure(ctx context.Context, err error, policy types.StartupPolicy) error
}
