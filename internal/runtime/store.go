package runtime

import (
	"go.uber.org/atomic"

	"github.com/harakeishi/conflo/pkg/types"
)

// AtomicStore はアトミックな参照置換に基づくConfigStore実装です。
// 読み取りはロックを取らず、差し替え中でも完全に一貫したスナップショットを返します。
// 差し替え呼び出しの直列化は呼び出し側(Manager)の責務です。
type AtomicStore struct {
	snapshot atomic.Value
	loaded   atomic.Bool
}

// NewAtomicStore は新しいAtomicStoreを作成します。
func NewAtomicStore() *AtomicStore {
	return &AtomicStore{}
}

// Get は現在のスナップショットを返します。
// 初回ロード前は false を返します。
func (s *AtomicStore) Get() (types.ResolvedConfig, bool) {
	value := s.snapshot.Load()
	if value == nil {
		return nil, false
	}
	return value.(types.ResolvedConfig), true
}

// Install はスナップショットを直接インストールします。
func (s *AtomicStore) Install(cfg types.ResolvedConfig) {
	if cfg == nil {
		cfg = types.ResolvedConfig{}
	}
	s.snapshot.Store(cfg)
	s.loaded.Store(true)
}

// Swap はスナップショットを一括置換し、置換前の設定を返します。
func (s *AtomicStore) Swap(cfg types.ResolvedConfig) types.ResolvedConfig {
	old, _ := s.Get()
	s.Install(cfg)
	return old
}

// Loaded は初回ロードが完了しているかどうかを返します。
func (s *AtomicStore) Loaded() bool {
	return s.loaded.Load()
}
