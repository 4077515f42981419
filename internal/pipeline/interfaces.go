// Package pipeline は、設定ドキュメントの検証パイプラインを提供します。
package pipeline

import (
	"context"

	"github.com/harakeishi/conflo/pkg/types"
)

// Loader は生バイト列または解析済みドキュメントから検証済み設定を
// 組み立てるインターフェースです。
// 各ステージは失敗で短絡します: 復号 → 参照解決 → トップレベル形状の検証 →
// バリデーター解決 → コンポーネント単位の検証。
type Loader interface {
	Load(ctx context.Context, data []byte) (types.ResolvedConfig, error)
	LoadDocument(ctx context.Context, doc types.Document) (types.ResolvedConfig, error)
}
