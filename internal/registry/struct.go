package registry

import (
	"context"
	"sort"

	"github.com/go-viper/mapstructure/v2"

	apperrors "github.com/harakeishi/conflo/internal/errors"
	"github.com/harakeishi/conflo/pkg/types"
)

// StructValidator はユーザー定義構造体へのデコードに基づくValidator実装です。
// デコードには mapstructure を使用し、構造体側のタグで既知オプションを定めます。
type StructValidator struct {
	prototype func() interface{}
	known     []string
}

// NewStructValidator は新しいStructValidatorを作成します。
// prototype はデコード先となる構造体の新規インスタンスを返す関数、
// known は診断メッセージに用いる既知オプション名の一覧です。
func NewStructValidator(prototype func() interface{}, known []string) *StructValidator {
	sorted := make([]string, len(known))
	copy(sorted, known)
	sort.Strings(sorted)

	return &StructValidator{
		prototype: prototype,
		known:     sorted,
	}
}

// Validate は生オプションを構造体経由で型付き設定へ変換します。
func (v *StructValidator) Validate(ctx context.Context, opts types.ComponentOptions) (types.ComponentConfig, error) {
	raw := make(map[string]interface{}, len(opts))
	for name, value := range opts {
		raw[name] = docToNative(value)
	}

	target := v.prototype()

	var metadata mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &metadata,
		Result:           target,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	if len(metadata.Unused) > 0 {
		unused := make([]string, len(metadata.Unused))
		copy(unused, metadata.Unused)
		sort.Strings(unused)
		return nil, apperrors.NewUnknownOptionError(v.known, unused[0]).
			WithPath(types.Path{unused[0]})
	}

	// 構造体を再度マップへ落とし、型付き設定として返す
	var config types.ComponentConfig
	if err := mapstructure.Decode(target, &config); err != nil {
		return nil, err
	}

	return config, nil
}
