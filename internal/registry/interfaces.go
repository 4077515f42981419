// Package registry は、コンポーネントスキーマの登録とバリデーター解決機能を提供します。
package registry

import (
	"context"

	"github.com/harakeishi/conflo/pkg/types"
)

// DefaultValidatorSuffix は命名規約によるユニット名の既定サフィックスです。
const DefaultValidatorSuffix = "_validator"

// Validator は生オプションを型付き設定へ変換する能力を表すインターフェースです。
// 変換できない場合は構造化された理由と共に失敗します。
type Validator interface {
	Validate(ctx context.Context, opts types.ComponentOptions) (types.ComponentConfig, error)
}

// ValidatorFunc は関数をValidatorとして扱うためのアダプタです。
type ValidatorFunc func(ctx context.Context, opts types.ComponentOptions) (types.ComponentConfig, error)

// Validate はValidatorインターフェースを実装します。
func (f ValidatorFunc) Validate(ctx context.Context, opts types.ComponentOptions) (types.ComponentConfig, error) {
	return f(ctx, opts)
}

// Factory はユニットからゼロ引数で取得するバリデーター能力です。
// ユニットはロードできてもこの取得が失敗する場合があります。
type Factory func() (Validator, error)

// ValidatorProvider はユニット名からバリデーター能力を探索するインターフェースです。
// 動的なモジュール解決の代わりに、静的な登録マップに裏付けられた実装を
// ホストランタイムが注入します。
type ValidatorProvider interface {
	Lookup(unit string) (Factory, bool)
}

// ValidatorRegistry はコンポーネント名からバリデーターへのマッピングです。
// ロードごとに新規に構築され、永続化されません。
type ValidatorRegistry map[string]Validator

// Dispatcher はコンポーネント群に対するバリデーターの解決を行うインターフェースです。
type Dispatcher interface {
	Dispatch(ctx context.Context, components []string) (ValidatorRegistry, error)
}
