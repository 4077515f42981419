package pipeline

import (
	"context"
	"fmt"

	apperrors "github.com/harakeishi/conflo/internal/errors"
	"github.com/harakeishi/conflo/internal/logger"
	"github.com/harakeishi/conflo/internal/parser"
	"github.com/harakeishi/conflo/internal/registry"
	"github.com/harakeishi/conflo/internal/resolver"
	"github.com/harakeishi/conflo/internal/suggest"
	"github.com/harakeishi/conflo/pkg/types"
)

// ValidationPipeline はLoaderの実装です。
// パイプライン自体は単一スレッドで副作用を持たず、成果物のResolvedConfigを
// Apply/Reloadマネージャーへ引き渡します。
type ValidationPipeline struct {
	decoder    parser.Decoder
	resolver   resolver.ReferenceResolver
	dispatcher registry.Dispatcher
	suggester  suggest.Suggester
	logger     logger.Logger
}

// NewValidationPipeline は新しいValidationPipelineを作成します。
func NewValidationPipeline(decoder parser.Decoder, refResolver resolver.ReferenceResolver, dispatcher registry.Dispatcher, suggester suggest.Suggester, logger logger.Logger) *ValidationPipeline {
	return &ValidationPipeline{
		decoder:    decoder,
		resolver:   refResolver,
		dispatcher: dispatcher,
		suggester:  suggester,
		logger:     logger,
	}
}

// Load は生バイト列から検証済み設定を組み立てます。
func (p *ValidationPipeline) Load(ctx context.Context, data []byte) (types.ResolvedConfig, error) {
	doc, err := p.decoder.Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	return p.LoadDocument(ctx, doc)
}

// LoadDocument は解析済みドキュメントから検証済み設定を組み立てます。
func (p *ValidationPipeline) LoadDocument(ctx context.Context, doc types.Document) (types.ResolvedConfig, error) {
	// 内容のないドキュメントは空の設定を生成する
	if doc == nil {
		p.logger.Debug(ctx, "空のドキュメントから空の設定を生成します")
		return types.ResolvedConfig{}, nil
	}

	resolved, err := p.resolver.Resolve(ctx, doc)
	if err != nil {
		return nil, err
	}

	names, options, err := p.extractComponents(resolved)
	if err != nil {
		return nil, err
	}

	validators, err := p.dispatcher.Dispatch(ctx, names)
	if err != nil {
		return nil, err
	}

	config := make(types.ResolvedConfig, len(names))
	for _, name := range names {
		typed, err := validators[name].Validate(ctx, options[name])
		if err != nil {
			return nil, p.enrich(name, err)
		}
		config[name] = typed
	}

	p.logger.Info(ctx, "設定の検証完了",
		types.Field{Key: "components", Value: len(config)})

	return config, nil
}

// extractComponents はトップレベル形状を検証し、コンポーネント名の出現順と
// 各コンポーネントの生オプションを抽出します。
func (p *ValidationPipeline) extractComponents(doc types.Document) ([]string, map[string]types.ComponentOptions, error) {
	top, ok := doc.(*types.Mapping)
	if !ok {
		return nil, nil, apperrors.NewMalformedDocumentError(
			fmt.Errorf("トップレベルはコンポーネント名のマッピングである必要があります"))
	}

	names := make([]string, 0, top.Len())
	options := make(map[string]types.ComponentOptions, top.Len())

	for _, entry := range top.Entries {
		if _, exists := options[entry.Key]; exists {
			return nil, nil, apperrors.NewDuplicateComponentError(entry.Key)
		}

		opts, err := p.componentOptions(entry.Key, entry.Value)
		if err != nil {
			return nil, nil, err
		}

		names = append(names, entry.Key)
		options[entry.Key] = opts
	}

	return names, options, nil
}

// componentOptions はコンポーネントのサブドキュメントを生オプションへ変換します。
func (p *ValidationPipeline) componentOptions(name string, doc types.Document) (types.ComponentOptions, error) {
	if doc == nil {
		return types.ComponentOptions{}, nil
	}

	mapping, ok := doc.(*types.Mapping)
	if !ok {
		return nil, apperrors.NewComponentValidationError(name,
			fmt.Errorf("オプションはマッピングで指定してください")).
			WithField(apperrors.FieldPath, name)
	}

	opts := make(types.ComponentOptions, mapping.Len())
	for _, entry := range mapping.Entries {
		opts[entry.Key] = entry.Value
	}
	return opts, nil
}

// enrich はコンポーネント検証の失敗を診断向けに強化します。
// 既知のオプション系失敗には提案エンジンによる修正候補と候補一覧を付加し、
// 検証中に記録されたコンテキストパスへコンポーネント名を前置します。
// それ以外の理由はコンポーネント検証失敗として包みます。
func (p *ValidationPipeline) enrich(name string, err error) error {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return apperrors.NewComponentValidationError(name, err).
			WithField(apperrors.FieldPath, name)
	}

	switch appErr.Code {
	case apperrors.ErrOptionUnknown, apperrors.ErrOptionEnumInvalid:
		known := knownField(appErr)
		got, _ := appErr.Field(apperrors.FieldGot)

		if len(known) > 0 {
			appErr = appErr.WithField(apperrors.FieldSuggestion,
				p.suggester.Suggest(fmt.Sprintf("%v", got), known))
		}
		appErr = appErr.WithField(apperrors.FieldCandidates,
			p.suggester.FormatCandidateList(known))

		return p.prefixPath(name, appErr).
			WithField(apperrors.FieldComponent, name)

	case apperrors.ErrComponentValidationFailed:
		return p.prefixPath(name, appErr)

	default:
		return p.prefixPath(name, apperrors.NewComponentValidationError(name, appErr))
	}
}

// prefixPath は失敗のコンテキストパスにコンポーネント名を前置します。
func (p *ValidationPipeline) prefixPath(name string, appErr *apperrors.AppError) *apperrors.AppError {
	if current, ok := appErr.Field(apperrors.FieldPath); ok {
		if location, isString := current.(string); isString && location != "" {
			return appErr.WithField(apperrors.FieldPath, name+"."+location)
		}
	}
	return appErr.WithField(apperrors.FieldPath, name)
}

// knownField は失敗から既知候補の一覧を取り出します。
func knownField(appErr *apperrors.AppError) []string {
	value, ok := appErr.Field(apperrors.FieldKnown)
	if !ok {
		return nil
	}
	known, ok := value.([]string)
	if !ok {
		return nil
	}
	return known
}
