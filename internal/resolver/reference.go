package resolver

import (
	"context"
	"strings"

	apperrors "github.com/harakeishi/conflo/internal/errors"
	"github.com/harakeishi/conflo/internal/logger"
	"github.com/harakeishi/conflo/internal/parser"
	"github.com/harakeishi/conflo/pkg/types"
)

// DocumentResolver は参照解決の実装です。
// ドキュメントツリーを再帰的に走査し、取り込み指示を参照先ドキュメントへ
// 置換します。循環検出と深度制限の両方を備えます。循環検出だけでは
// 循環しない無限長チェーンを防げず、深度制限だけでは循環という正確な
// 診断を出せないためです。
type DocumentResolver struct {
	fetcher    Fetcher
	normalizer Normalizer
	decoders   map[parser.ContentType]parser.Decoder
	fallback   parser.Decoder
	depthLimit int
	logger     logger.Logger
}

// NewDocumentResolver は新しいDocumentResolverを作成します。
func NewDocumentResolver(fetcher Fetcher, normalizer Normalizer, decoder parser.Decoder, logger logger.Logger) *DocumentResolver {
	return &DocumentResolver{
		fetcher:    fetcher,
		normalizer: normalizer,
		decoders: map[parser.ContentType]parser.Decoder{
			parser.ContentTypeYAML:     decoder,
			parser.ContentTypeYAMLText: decoder,
		},
		fallback:   decoder,
		depthLimit: types.DefaultInclusionDepthLimit,
		logger:     logger,
	}
}

// Resolve はドキュメントツリー内の取り込み参照をすべて解決します。
func (r *DocumentResolver) Resolve(ctx context.Context, doc types.Document) (types.Document, error) {
	return r.resolve(ctx, doc, types.NewInclusionContext(r.depthLimit))
}

// resolve は取り込みコンテキストを伴う再帰的な解決処理です。
// ictx は不変値として受け渡し、循環・深度チェックを局所的に保ちます。
func (r *DocumentResolver) resolve(ctx context.Context, doc types.Document, ictx types.InclusionContext) (types.Document, error) {
	switch node := doc.(type) {
	case *types.Mapping:
		if target, ok := includeTarget(node); ok {
			return r.expand(ctx, target, ictx)
		}

		// 取り込み指示以外のマッピングはキー順を保ってエントリ単位で解決する
		resolved := types.NewMapping()
		for _, entry := range node.Entries {
			value, err := r.resolve(ctx, entry.Value, ictx)
			if err != nil {
				return nil, err
			}
			resolved.Append(entry.Key, value)
		}
		return resolved, nil

	case []types.Document:
		resolved := make([]types.Document, 0, len(node))
		for _, item := range node {
			value, err := r.resolve(ctx, item, ictx)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, value)
		}
		return resolved, nil

	default:
		// スカラーはそのまま通過する
		return doc, nil
	}
}

// expand は取り込み指示1つを参照先ドキュメントへ展開します。
func (r *DocumentResolver) expand(ctx context.Context, target types.Document, ictx types.InclusionContext) (types.Document, error) {
	raw, ok := target.(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, apperrors.NewReferenceValueError(target)
	}

	ref, err := r.normalizer.Normalize(raw)
	if err != nil {
		return nil, apperrors.NewReferenceError(raw, err)
	}

	if ictx.Contains(ref) {
		return nil, apperrors.NewCircularReferenceError(ref, ictx.Chain)
	}

	if ictx.Exhausted() {
		return nil, apperrors.NewDepthLimitError(r.depthLimit)
	}

	r.logger.Debug(ctx, "参照の取り込み開始",
		types.Field{Key: "reference", Value: ref.String()},
		types.Field{Key: "depth", Value: len(ictx.Chain)})

	data, err := r.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, apperrors.NewReferenceError(ref.String(), err)
	}

	decoder := r.decoderFor(ref)
	doc, err := decoder.Decode(ctx, data)
	if err != nil {
		// デコーダーはDOC_MALFORMEDを返すため、そのまま伝播させる
		return nil, err
	}

	return r.resolve(ctx, doc, ictx.Push(ref))
}

// decoderFor はコンテンツ種別ヒントの優先順位に従ってデコーダーを選択します。
func (r *DocumentResolver) decoderFor(ref types.Reference) parser.Decoder {
	for _, hint := range r.fetcher.ContentTypes(ref) {
		if decoder, ok := r.decoders[hint]; ok {
			return decoder
		}
	}
	return r.fallback
}

// includeTarget はマッピングが取り込み指示かどうかを判定し、参照先の値を返します。
// 取り込み指示は IncludeKey のみを単一キーとして持つマッピングです。
func includeTarget(m *types.Mapping) (types.Document, bool) {
	if m.Len() != 1 {
		return nil, false
	}
	if m.Entries[0].Key != IncludeKey {
		return nil, false
	}
	return m.Entries[0].Value, true
}
