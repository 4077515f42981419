// Package suggest は、検証失敗メッセージ向けの文字列距離計算と候補提案機能を提供します。
package suggest

// Suggester は無効なトークンに対する修正候補の提案を行うインターフェースです。
type Suggester interface {
	Suggest(candidate string, pool []string) string
	FormatCandidateList(pool []string) string
}
