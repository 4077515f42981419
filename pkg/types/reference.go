package types

// Reference は取り込み対象ドキュメントの正規化済み識別子を表します。
// 循環検出のため等値比較が可能であり、生成後に変更されることはありません。
type Reference string

// String は参照を文字列として返します。
func (r Reference) String() string {
	return string(r)
}

// DefaultInclusionDepthLimit は参照取り込みの再帰深度上限です。
// 循環していない異常に深いチェーンや、リゾルバ自体の不具合に対する防壁です。
const DefaultInclusionDepthLimit = 100

// InclusionContext は展開中の参照チェーン(祖先列)と残り深度を表します。
// 1回の再帰展開呼び出しに閉じたスコープを持ち、不変値として扱います。
type InclusionContext struct {
	Chain     []Reference `json:"chain"`
	Remaining int         `json:"remaining"`
}

// NewInclusionContext は深度上限を指定して新しいInclusionContextを作成します。
func NewInclusionContext(limit int) InclusionContext {
	return InclusionContext{
		Chain:     []Reference{},
		Remaining: limit,
	}
}

// Contains は参照が祖先チェーンに含まれるかどうかを返します。
// 含まれる場合、その参照の取り込みは循環です。
func (c InclusionContext) Contains(ref Reference) bool {
	for _, ancestor := range c.Chain {
		if ancestor == ref {
			return true
		}
	}
	return false
}

// Exhausted は残り深度が尽きているかどうかを返します。
func (c InclusionContext) Exhausted() bool {
	return c.Remaining <= 0
}

// Push は参照をチェーンに積み、残り深度を1減らした新しいコンテキストを返します。
// 元のコンテキストは変更しません。
func (c InclusionContext) Push(ref Reference) InclusionContext {
	chain := make([]Reference, len(c.Chain)+1)
	copy(chain, c.Chain)
	chain[len(c.Chain)] = ref

	return InclusionContext{
		Chain:     chain,
		Remaining: c.Remaining - 1,
	}
}
