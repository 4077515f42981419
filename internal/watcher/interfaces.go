// Package watcher は、設定ファイルの監視と自動リロードのトリガー機能を提供します。
package watcher

import (
	"context"

	"github.com/harakeishi/conflo/pkg/types"
)

// FileWatcher は設定ファイルの変更監視を行うインターフェースです。
type FileWatcher interface {
	Watch(ctx context.Context, path string) (<-chan types.FileWatchEvent, error)
	Stop() error
}
