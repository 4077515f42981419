package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/harakeishi/conflo/internal/logger"
	"github.com/harakeishi/conflo/pkg/types"
)

// FsnotifyWatcher はfsnotifyベースのFileWatcher実装です。
// エディタによる置換保存(rename + create)を拾うため、対象ファイルではなく
// 親ディレクトリを監視します。連続する変更イベントはデバウンスして1回に
// まとめます。
type FsnotifyWatcher struct {
	debounce time.Duration
	logger   logger.Logger
	watcher  *fsnotify.Watcher
}

// NewFsnotifyWatcher は新しいFsnotifyWatcherを作成します。
func NewFsnotifyWatcher(debounce time.Duration, logger logger.Logger) *FsnotifyWatcher {
	return &FsnotifyWatcher{
		debounce: debounce,
		logger:   logger,
	}
}

// Watch は指定ファイルの変更イベントチャネルを返します。
func (w *FsnotifyWatcher) Watch(ctx context.Context, path string) (<-chan types.FileWatchEvent, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("監視対象パスの解決に失敗しました: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("ファイル監視の初期化に失敗しました: %w", err)
	}

	if err := fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("監視ディレクトリの登録に失敗しました: %w", err)
	}

	w.watcher = fsWatcher
	events := make(chan types.FileWatchEvent, 1)

	go w.run(ctx, absPath, events)

	w.logger.Info(ctx, "設定ファイルの監視を開始しました",
		types.Field{Key: "path", Value: absPath})

	return events, nil
}

// Stop は監視を停止します。
func (w *FsnotifyWatcher) Stop() error {
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}

// run はfsnotifyイベントをデバウンスしながら変換・転送します。
func (w *FsnotifyWatcher) run(ctx context.Context, path string, events chan<- types.FileWatchEvent) {
	defer close(events)

	var pending *types.FileWatchEvent
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			watchEvent, relevant := w.convert(event, path)
			if !relevant {
				continue
			}

			pending = &watchEvent
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(ctx, "ファイル監視エラー",
				types.Field{Key: "error", Value: err.Error()})

		case <-timer.C:
			if pending != nil {
				events <- *pending
				pending = nil
			}
		}
	}
}

// convert はfsnotifyイベントを監視イベントへ変換します。
func (w *FsnotifyWatcher) convert(event fsnotify.Event, path string) (types.FileWatchEvent, bool) {
	watchEvent := types.FileWatchEvent{
		Path:      path,
		Timestamp: time.Now(),
	}

	switch {
	case event.Op.Has(fsnotify.Write):
		watchEvent.Type = types.FileWatchEventModified
	case event.Op.Has(fsnotify.Create):
		watchEvent.Type = types.FileWatchEventCreated
	case event.Op.Has(fsnotify.Rename):
		watchEvent.Type = types.FileWatchEventRenamed
	case event.Op.Has(fsnotify.Remove):
		watchEvent.Type = types.FileWatchEventDeleted
	default:
		return types.FileWatchEvent{}, false
	}

	return watchEvent, true
}
