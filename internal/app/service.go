package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"

	apperrors "github.com/harakeishi/conflo/internal/errors"
	"github.com/harakeishi/conflo/internal/logger"
	"github.com/harakeishi/conflo/internal/runtime"
	"github.com/harakeishi/conflo/internal/watcher"
	"github.com/harakeishi/conflo/pkg/types"
)

// ConfigService はServiceの標準実装です。
type ConfigService struct {
	loaderFactory LoaderFactory
	manager       runtime.ApplyManager
	store         runtime.ConfigStore
	watcher       watcher.FileWatcher
	fs            afero.Fs
	config        types.Config
	logger        logger.Logger

	mu         sync.Mutex
	sourcePath string
	cancel     context.CancelFunc
}

// NewConfigService は新しいConfigServiceを作成します。
// sourcePath が空の場合、Start時に環境変数から探索します。
func NewConfigService(
	loaderFactory LoaderFactory,
	manager runtime.ApplyManager,
	store runtime.ConfigStore,
	fw watcher.FileWatcher,
	fs afero.Fs,
	config types.Config,
	logger logger.Logger,
	sourcePath string,
) *ConfigService {
	return &ConfigService{
		loaderFactory: loaderFactory,
		manager:       manager,
		store:         store,
		watcher:       fw,
		fs:            fs,
		config:        config,
		logger:        logger,
		sourcePath:    sourcePath,
	}
}

// Start は初回ロードを行い、監視が有効な場合はファイル監視を開始します。
// 初回ロードの失敗は起動時失敗ポリシーに従って処理されます。
func (s *ConfigService) Start(ctx context.Context) error {
	if err := s.LoadFile(ctx, s.sourcePath); err != nil {
		return s.manager.HandleStartupFailure(ctx, err, s.config.GetReload().OnStartupFailure)
	}

	if s.config.GetReload().Watch {
		if err := s.startWatch(ctx); err != nil {
			return err
		}
	}

	return nil
}

// Stop はファイル監視を停止します。
func (s *ConfigService) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if s.watcher != nil {
		return s.watcher.Stop()
	}
	return nil
}

// LoadFile は指定されたファイルから設定を初回ロードします。
func (s *ConfigService) LoadFile(ctx context.Context, path string) error {
	return s.loadFile(ctx, path, false)
}

// ReloadFile は指定されたファイルから設定を再ロードします。
func (s *ConfigService) ReloadFile(ctx context.Context, path string) error {
	if path == "" {
		s.mu.Lock()
		path = s.sourcePath
		s.mu.Unlock()
	}
	return s.loadFile(ctx, path, true)
}

// Load は既に読み込まれたドキュメントから設定を初回ロードします。
func (s *ConfigService) Load(ctx context.Context, doc types.Document) error {
	return s.loadDocument(ctx, doc, false)
}

// Reload は既に読み込まれたドキュメントから設定を再ロードします。
func (s *ConfigService) Reload(ctx context.Context, doc types.Document) error {
	return s.loadDocument(ctx, doc, true)
}

// CurrentSourcePath は現在有効な設定のソースパスを返します。
func (s *ConfigService) CurrentSourcePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sourcePath
}

// Current は現在有効な設定スナップショットを返します。
func (s *ConfigService) Current() (types.ResolvedConfig, bool) {
	return s.store.Get()
}

func (s *ConfigService) loadFile(ctx context.Context, path string, isReload bool) error {
	path, fromEnv, err := s.resolveSourcePath(path)
	if err != nil {
		return err
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if fromEnv {
			return apperrors.NewEnvSourceInvalidError(EnvConfigPath, path, err)
		}
		return apperrors.Convert(err)
	}

	loader := s.loaderFactory(filepath.Dir(path))
	resolved, err := loader.Load(ctx, data)
	if err != nil {
		return err
	}

	if err := s.manager.Apply(ctx, resolved, isReload); err != nil {
		var notifyErr *runtime.NotificationError
		if !errors.As(err, &notifyErr) {
			return err
		}
		// 通知段階の失敗: 差し替え自体は完了しているため、
		// 新しい設定のソースパスを記録した上で報告する
		s.setSourcePath(path)
		return err
	}

	s.setSourcePath(path)

	s.logger.Info(ctx, "設定をロードしました",
		types.Field{Key: "path", Value: path},
		types.Field{Key: "reload", Value: isReload},
		types.Field{Key: "components", Value: len(resolved)})
	return nil
}

func (s *ConfigService) setSourcePath(path string) {
	s.mu.Lock()
	s.sourcePath = path
	s.mu.Unlock()
}

func (s *ConfigService) loadDocument(ctx context.Context, doc types.Document, isReload bool) error {
	loader := s.loaderFactory("")
	resolved, err := loader.LoadDocument(ctx, doc)
	if err != nil {
		return err
	}
	return s.manager.Apply(ctx, resolved, isReload)
}

// resolveSourcePath はロード対象のファイルパスを確定します。
// 明示パスが無い場合は環境変数 CONFLO_CONFIG_PATH から探索します。
func (s *ConfigService) resolveSourcePath(path string) (string, bool, error) {
	if path != "" {
		return path, false, nil
	}

	value, ok := os.LookupEnv(EnvConfigPath)
	if !ok || value == "" {
		return "", false, apperrors.NewEnvSourceUndefinedError(EnvConfigPath)
	}
	return value, true, nil
}

// startWatch は設定ファイルの監視を開始し、変更検知ごとに再ロードします。
// 再ロードの失敗は記録されるのみで、現行スナップショットは維持されます。
func (s *ConfigService) startWatch(ctx context.Context) error {
	s.mu.Lock()
	path := s.sourcePath
	s.mu.Unlock()

	watchCtx, cancel := context.WithCancel(ctx)

	events, err := s.watcher.Watch(watchCtx, path)
	if err != nil {
		cancel()
		return err
	}

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go s.watchLoop(watchCtx, events)
	return nil
}

func (s *ConfigService) watchLoop(ctx context.Context, events <-chan types.FileWatchEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Type == types.FileWatchEventDeleted {
				s.logger.Warn(ctx, "設定ファイルが削除されました。現行設定を維持します",
					types.Field{Key: "path", Value: event.Path})
				continue
			}

			start := time.Now()
			err := s.ReloadFile(ctx, "")
			reloadEvent := types.ReloadEvent{
				Source:    event.Path,
				Timestamp: start,
				Duration:  time.Since(start),
				Success:   err == nil,
			}
			if err != nil {
				reloadEvent.Error = err.Error()

				// 通知段階の失敗は新しい設定が既に有効なので区別して報告する
				var notifyErr *runtime.NotificationError
				if errors.As(err, &notifyErr) {
					reloadEvent.Success = true
					s.logger.Warn(ctx, "再ロードは適用されましたが、一部コンポーネントへの通知に失敗しました",
						types.Field{Key: "path", Value: event.Path},
						types.Field{Key: "error", Value: err.Error()})
					continue
				}

				s.logger.Error(ctx, "再ロードに失敗しました。現行設定を維持します", err,
					types.Field{Key: "path", Value: event.Path})
				continue
			}
			s.logger.Info(ctx, "再ロードが完了しました",
				types.Field{Key: "path", Value: reloadEvent.Source},
				types.Field{Key: "duration", Value: reloadEvent.Duration.String()})
		}
	}
}
