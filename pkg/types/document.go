package types

import (
	"fmt"
	"strings"
)

// Document は解析済みYAMLドキュメントの無型ツリーを表します。
// スカラー値、シーケンス([]Document)、マッピング(*Mapping)のいずれかです。
type Document = interface{}

// MapEntry はマッピングの1エントリ(キーと値のペア)を表します。
type MapEntry struct {
	Key   string   `json:"key"`
	Value Document `json:"value"`
}

// Mapping はキー順序を保持するマッピングを表します。
// YAMLの出現順を維持するため、map ではなくエントリ列で保持します。
// 重複キーもそのまま保持し、検出は上位レイヤーで行います。
type Mapping struct {
	Entries []MapEntry `json:"entries"`
}

// NewMapping は新しい空のMappingを作成します。
func NewMapping() *Mapping {
	return &Mapping{Entries: []MapEntry{}}
}

// Append はエントリを末尾に追加します。
func (m *Mapping) Append(key string, value Document) {
	m.Entries = append(m.Entries, MapEntry{Key: key, Value: value})
}

// Get は指定キーの最初の値を返します。
func (m *Mapping) Get(key string) (Document, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Len はエントリ数を返します。
func (m *Mapping) Len() int {
	return len(m.Entries)
}

// Keys は出現順のキー一覧を返します(重複を含む)。
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Path はドキュメント内の位置を表すキー・インデックスの列です。
// 検証失敗の発生位置を人間可読な文字列に変換するためだけに使用します。
type Path []string

// Child はキーを1段追加した新しいPathを返します。
func (p Path) Child(key string) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = key
	return next
}

// Index はシーケンスのインデックスを1段追加した新しいPathを返します。
func (p Path) Index(i int) Path {
	return p.Child(fmt.Sprintf("[%d]", i))
}

// String はPathをドット区切りの文字列として返します。
func (p Path) String() string {
	return strings.Join(p, ".")
}
