package registry

import (
	"context"
	"sync"

	apperrors "github.com/harakeishi/conflo/internal/errors"
	"github.com/harakeishi/conflo/internal/logger"
	"github.com/harakeishi/conflo/pkg/types"
)

// StaticProvider は静的な登録マップに裏付けられたValidatorProvider実装です。
type StaticProvider struct {
	mu    sync.RWMutex
	units map[string]Factory
}

// NewStaticProvider は新しいStaticProviderを作成します。
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		units: make(map[string]Factory),
	}
}

// Register はユニット名にバリデーター能力を登録します。
func (p *StaticProvider) Register(unit string, factory Factory) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.units[unit] = factory
}

// Lookup はユニット名からバリデーター能力を探索します。
func (p *StaticProvider) Lookup(unit string) (Factory, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	factory, ok := p.units[unit]
	return factory, ok
}

// ConventionDispatcher は明示オーバーライドと命名規約によるDispatcher実装です。
// 各コンポーネントについて (a) 明示的なオーバーライド、(b) コンポーネント名に
// サフィックスを付加した規約名、の順でユニットを解決します。
type ConventionDispatcher struct {
	provider  ValidatorProvider
	overrides map[string]string
	suffix    string
	logger    logger.Logger
}

// NewConventionDispatcher は新しいConventionDispatcherを作成します。
func NewConventionDispatcher(provider ValidatorProvider, overrides map[string]string, suffix string, logger logger.Logger) *ConventionDispatcher {
	if suffix == "" {
		suffix = DefaultValidatorSuffix
	}
	return &ConventionDispatcher{
		provider:  provider,
		overrides: overrides,
		suffix:    suffix,
		logger:    logger,
	}
}

// Dispatch はコンポーネント群のバリデーターを解決し、レジストリを組み立てます。
// スキーマが1つでも欠けたシステムは安全に処理を継続できないため、
// 最初の失敗で全体を中断します(fail-fast)。
func (d *ConventionDispatcher) Dispatch(ctx context.Context, components []string) (ValidatorRegistry, error) {
	registry := make(ValidatorRegistry, len(components))

	// エラー報告を決定的にするためドキュメント出現順に処理する
	for _, name := range components {
		unit := d.unitFor(name)

		factory, ok := d.provider.Lookup(unit)
		if !ok {
			return nil, apperrors.NewUnsupportedComponentError(name)
		}

		validator, err := factory()
		if err != nil {
			return nil, apperrors.NewValidatorUnitError(name, err)
		}

		registry[name] = validator
		d.logger.Debug(ctx, "バリデーター解決完了",
			types.Field{Key: "component", Value: name},
			types.Field{Key: "unit", Value: unit})
	}

	return registry, nil
}

// unitFor はコンポーネント名からユニット名を決定します。
func (d *ConventionDispatcher) unitFor(name string) string {
	if unit, ok := d.overrides[name]; ok && unit != "" {
		return unit
	}
	return name + d.suffix
}
