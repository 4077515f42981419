// Package parser は、設定ドキュメントの復号機能を提供します。
package parser

import (
	"context"
	"io"

	"github.com/harakeishi/conflo/pkg/types"
)

// Decoder は生バイト列を単一のドキュメントツリーへ復号するインターフェースです。
// 空の入力はエラーではなく nil ドキュメントとして返します。
// 複数ドキュメントを含む入力は不正として拒否します。
type Decoder interface {
	Decode(ctx context.Context, data []byte) (types.Document, error)
	DecodeFromReader(ctx context.Context, reader io.Reader) (types.Document, error)
}

// ContentType はデコーダー選択に用いるコンテンツ種別のヒントです。
type ContentType string

const (
	ContentTypeYAML     ContentType = "application/yaml"
	ContentTypeYAMLText ContentType = "text/yaml"
)
