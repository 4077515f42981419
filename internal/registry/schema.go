package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cast"

	apperrors "github.com/harakeishi/conflo/internal/errors"
	"github.com/harakeishi/conflo/pkg/types"
)

// OptionKind はオプション値の種別を表します。
type OptionKind string

const (
	KindString   OptionKind = "string"
	KindInt      OptionKind = "int"
	KindBool     OptionKind = "bool"
	KindDuration OptionKind = "duration"
	KindEnum     OptionKind = "enum"
	KindAny      OptionKind = "any"
)

// OptionSpec は1オプションのスキーマを表します。
type OptionSpec struct {
	Kind     OptionKind
	Enum     []string
	Required bool
	Default  interface{}
}

// Schema はオプション名からスキーマへのマッピングです。
type Schema map[string]OptionSpec

// SchemaValidator は宣言的スキーマに基づくValidator実装です。
// スカラー値の型変換には cast を使用します。
type SchemaValidator struct {
	schema Schema
}

// NewSchemaValidator は新しいSchemaValidatorを作成します。
func NewSchemaValidator(schema Schema) *SchemaValidator {
	return &SchemaValidator{schema: schema}
}

// Validate は生オプションをスキーマに従って型付き設定へ変換します。
func (v *SchemaValidator) Validate(ctx context.Context, opts types.ComponentOptions) (types.ComponentConfig, error) {
	known := v.knownOptions()
	config := make(types.ComponentConfig, len(opts))

	// エラー報告を決定的にするためオプション名順に処理する
	names := make([]string, 0, len(opts))
	for name := range opts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec, ok := v.schema[name]
		if !ok {
			return nil, apperrors.NewUnknownOptionError(known, name).
				WithPath(types.Path{name})
		}

		value, err := v.coerce(spec, opts[name])
		if err != nil {
			if appErr, isApp := apperrors.AsAppError(err); isApp {
				return nil, appErr.WithPath(types.Path{name})
			}
			return nil, fmt.Errorf("オプション %s の値が不正です: %w", name, err)
		}
		config[name] = value
	}

	// 必須オプションと既定値の処理
	for name, spec := range v.schema {
		if _, present := config[name]; present {
			continue
		}
		if spec.Required {
			return nil, fmt.Errorf("必須オプション %s が指定されていません", name)
		}
		if spec.Default != nil {
			config[name] = spec.Default
		}
	}

	return config, nil
}

// coerce は生値をスキーマの種別に従って変換します。
func (v *SchemaValidator) coerce(spec OptionSpec, raw types.Document) (interface{}, error) {
	switch spec.Kind {
	case KindString:
		return cast.ToStringE(raw)
	case KindInt:
		return cast.ToIntE(raw)
	case KindBool:
		return cast.ToBoolE(raw)
	case KindDuration:
		return cast.ToDurationE(raw)
	case KindEnum:
		got, err := cast.ToStringE(raw)
		if err != nil {
			return nil, err
		}
		for _, allowed := range spec.Enum {
			if got == allowed {
				return got, nil
			}
		}
		return nil, apperrors.NewEnumValueError(spec.Enum, got)
	case KindAny:
		return docToNative(raw), nil
	default:
		return nil, fmt.Errorf("未知のオプション種別です: %s", spec.Kind)
	}
}

// knownOptions はソート済みの既知オプション名一覧を返します。
func (v *SchemaValidator) knownOptions() []string {
	known := make([]string, 0, len(v.schema))
	for name := range v.schema {
		known = append(known, name)
	}
	sort.Strings(known)
	return known
}

// docToNative はドキュメントツリーを素のGo値へ変換します。
// マッピングはキー順を失いますが、検証済み設定の値としては問題ありません。
func docToNative(doc types.Document) interface{} {
	switch node := doc.(type) {
	case *types.Mapping:
		result := make(map[string]interface{}, node.Len())
		for _, entry := range node.Entries {
			result[entry.Key] = docToNative(entry.Value)
		}
		return result
	case []types.Document:
		result := make([]interface{}, 0, len(node))
		for _, item := range node {
			result = append(result, docToNative(item))
		}
		return result
	default:
		return doc
	}
}
