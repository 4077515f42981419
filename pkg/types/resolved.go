package types

import "sort"

// ComponentOptions は1コンポーネント分のオプション名から生値へのマッピングです。
// トップレベルドキュメントから抽出された未検証の状態を表します。
type ComponentOptions map[string]Document

// ComponentConfig は検証済みの型付きコンポーネント設定を表します。
type ComponentConfig map[string]interface{}

// ResolvedConfig はコンポーネント名から型付き設定へのマッピングです。
// 検証パイプラインの最終成果物であり、Apply/Reloadマネージャーにのみ渡されます。
type ResolvedConfig map[string]ComponentConfig

// Component は指定コンポーネントの設定を返します。
func (c ResolvedConfig) Component(name string) (ComponentConfig, bool) {
	cfg, ok := c[name]
	return cfg, ok
}

// Names はソート済みのコンポーネント名一覧を返します。
func (c ResolvedConfig) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone はResolvedConfigの浅いコピーを返します。
// スナップショット差し替え時に旧設定を保持するために使用します。
func (c ResolvedConfig) Clone() ResolvedConfig {
	clone := make(ResolvedConfig, len(c))
	for name, cfg := range c {
		clone[name] = cfg
	}
	return clone
}
