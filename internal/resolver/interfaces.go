// Package resolver は、設定ドキュメント内の取り込み参照の解決機能を提供します。
package resolver

import (
	"context"

	"github.com/harakeishi/conflo/internal/parser"
	"github.com/harakeishi/conflo/pkg/types"
)

// IncludeKey は取り込み指示として認識するマッピングキーです。
// このキーのみを持つマッピングは、参照先ドキュメントに置換されます。
const IncludeKey = "$include"

// ReferenceResolver はドキュメントツリー内の参照解決を行うインターフェースです。
type ReferenceResolver interface {
	Resolve(ctx context.Context, doc types.Document) (types.Document, error)
}

// Fetcher は参照先の生バイト列の取得を行うインターフェースです。
// ContentTypes は参照が複数形式であり得る場合にデコーダー選択へ用いる、
// 優先順位付きのコンテンツ種別ヒントを返します。
type Fetcher interface {
	Fetch(ctx context.Context, ref types.Reference) ([]byte, error)
	ContentTypes(ref types.Reference) []parser.ContentType
}

// Normalizer は生の参照文字列の正規化を行うインターフェースです。
// 環境変数スタイルの置換($NAME)をサポートし、未定義の変数はそのまま残します。
type Normalizer interface {
	Normalize(raw string) (types.Reference, error)
}
