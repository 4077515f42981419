package runtime

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/multierr"

	apperrors "github.com/harakeishi/conflo/internal/errors"
	"github.com/harakeishi/conflo/internal/logger"
	"github.com/harakeishi/conflo/pkg/types"
)

// exitFunc はテストから差し替え可能な終了フックです。
var exitFunc = os.Exit

// NotificationError はスナップショット差し替え完了後の変更通知の失敗を表します。
// このエラーが返された時点で新しい設定は既に有効であり、ロールバックされません。
// 呼び出し側はロード失敗と区別して報告する必要があります。
type NotificationError struct {
	Err error
}

// Error は error インターフェースを実装します。
func (e *NotificationError) Error() string {
	return e.Err.Error()
}

// Unwrap は集約された通知エラーを返します。
func (e *NotificationError) Unwrap() error {
	return e.Err
}

// Manager はApplyManagerの実装です。
// 適用・リロードは内部ミューテックスで直列化されます。
type Manager struct {
	store    ConfigStore
	notifier ChangeNotifier
	logger   logger.Logger
	mu       sync.Mutex
}

// NewManager は新しいManagerを作成します。
func NewManager(store ConfigStore, notifier ChangeNotifier, logger logger.Logger) *Manager {
	return &Manager{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Apply は検証済み設定を適用します。
// isReload が false の場合は設定を直接インストールします(初回ロード、
// または強制的な非トランザクショナルロード)。
// isReload が true の場合はスナップショットを一括置換した上で各コンポーネントへ
// 変更を通知します。通知の失敗は収集・報告されますが、置換済みのスナップショットを
// ロールバックすることはありません。一部コンポーネントのリロードフックの不具合が、
// システム全体の設定変更を巻き戻すことを許さないためです。
func (m *Manager) Apply(ctx context.Context, cfg types.ResolvedConfig, isReload bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !isReload {
		m.store.Install(cfg)
		m.logger.Info(ctx, "設定をインストールしました",
			types.Field{Key: "components", Value: len(cfg)})
		return nil
	}

	// スナップショットなしでのリロードはプログラミングエラー
	if !m.store.Loaded() {
		panic("runtime: 初回ロード前にリロードが要求されました")
	}

	old := m.store.Swap(cfg)
	m.logger.Info(ctx, "設定を差し替えました",
		types.Field{Key: "components", Value: len(cfg)})

	if err := m.notifyAll(ctx, old, cfg); err != nil {
		// 新しい設定が引き続き有効であることを前提に報告のみ行う
		m.logger.Error(ctx, "一部コンポーネントへの変更通知に失敗しました", err)
		return &NotificationError{Err: err}
	}

	return nil
}

// notifyAll は変更通知をコンポーネントごとに実行し、失敗を集約します。
// 既知の無害なエラーは破棄します。
func (m *Manager) notifyAll(ctx context.Context, old, next types.ResolvedConfig) error {
	var errs error

	for _, name := range next.Names() {
		change := types.ChangeNotification{
			Component: name,
			Old:       old[name],
			New:       next[name],
		}
		errs = multierr.Append(errs, m.notifyOne(ctx, change))
	}

	// 削除されたコンポーネントにも通知する
	for _, name := range old.Names() {
		if _, kept := next[name]; kept {
			continue
		}
		change := types.ChangeNotification{
			Component: name,
			Old:       old[name],
			Removed:   true,
		}
		errs = multierr.Append(errs, m.notifyOne(ctx, change))
	}

	return errs
}

// notifyOne は1コンポーネントへ変更を通知します。
func (m *Manager) notifyOne(ctx context.Context, change types.ChangeNotification) error {
	err := m.notifier.Notify(ctx, change)
	if err == nil {
		return nil
	}

	if appErr, ok := apperrors.AsAppError(err); ok && appErr.IsBenign() {
		m.logger.Debug(ctx, "無害な通知エラーを破棄しました",
			types.Field{Key: "component", Value: change.Component},
			types.Field{Key: "code", Value: appErr.Code.String()})
		return nil
	}

	return apperrors.NewComponentValidationError(change.Component, err)
}

// HandleStartupFailure は初回ロード失敗時のポリシーを適用します。
// stop はエラーを呼び出し元へ伝播し、crash は整形済みメッセージと共に
// パニックし、それ以外は数値ステータスで即時終了します。
// いずれの場合も、失敗理由が観測可能であることを保証するため、
// 終了前にバッファ済みの診断出力をフラッシュします。
func (m *Manager) HandleStartupFailure(ctx context.Context, err error, policy types.StartupPolicy) error {
	m.logger.Error(ctx, "初回ロードに失敗しました", err,
		types.Field{Key: "policy", Value: string(policy)})

	flushDiagnostics()

	switch policy {
	case types.StartupPolicyStop:
		return err
	case types.StartupPolicyCrash:
		panic(fmt.Sprintf("conflo: %s", apperrors.Format(err)))
	default:
		fmt.Fprintln(os.Stderr, apperrors.Format(err))
		exitFunc(1)
		return err
	}
}

// flushDiagnostics はバッファ済みの診断出力をフラッシュします。
func flushDiagnostics() {
	_ = os.Stdout.Sync()
	_ = os.Stderr.Sync()
}
