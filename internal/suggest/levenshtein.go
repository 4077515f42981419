package suggest

import (
	"sort"
	"strings"
)

// maxCandidateListSize は候補一覧を表示する上限数です。
// これを超える候補集合は診断メッセージには列挙しません。
const maxCandidateListSize = 20

// emptyPoolSentinel は空の候補集合を表す表示用センチネルです。
const emptyPoolSentinel = "(empty)"

// LevenshteinSuggester は編集距離に基づく提案エンジンの実装です。
type LevenshteinSuggester struct{}

// NewLevenshteinSuggester は新しいLevenshteinSuggesterを作成します。
func NewLevenshteinSuggester() *LevenshteinSuggester {
	return &LevenshteinSuggester{}
}

// Suggest は候補集合の中から編集距離が最小の要素を返します。
// 距離が同じ場合は辞書順で先に現れる要素を返し、結果を決定的にします。
// 候補集合が空の場合は入力をそのまま返します(提案なしのシグナル)。
func (s *LevenshteinSuggester) Suggest(candidate string, pool []string) string {
	if len(pool) == 0 {
		return candidate
	}

	// 同距離のタイブレークを固定するため辞書順に整列してから走査する
	sorted := make([]string, len(pool))
	copy(sorted, pool)
	sort.Strings(sorted)

	best := sorted[0]
	bestDistance := Distance(candidate, sorted[0])

	for _, member := range sorted[1:] {
		if d := Distance(candidate, member); d < bestDistance {
			best = member
			bestDistance = d
		}
	}

	return best
}

// FormatCandidateList は候補一覧を整形して返します。
// 重複を除去し、辞書順に整列した上でカンマ区切りに連結します。
// 空の場合はセンチネル文字列、上限超過の場合は空文字列(節の省略)を返します。
func (s *LevenshteinSuggester) FormatCandidateList(pool []string) string {
	if len(pool) == 0 {
		return emptyPoolSentinel
	}
	if len(pool) > maxCandidateListSize {
		return ""
	}

	seen := make(map[string]bool, len(pool))
	unique := make([]string, 0, len(pool))
	for _, member := range pool {
		if !seen[member] {
			seen[member] = true
			unique = append(unique, member)
		}
	}
	sort.Strings(unique)

	return strings.Join(unique, ", ")
}

// Distance は2つの文字列のLevenshtein編集距離を返します。
// 挿入・削除・置換をそれぞれコスト1として計算します。
// 同一の部分問題(両文字列の残りサフィックスのペア)はインデックスペアを
// キーとしてメモ化します。結果はメモ化なしの再帰と常に一致します。
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	memo := make(map[[2]int]int, len(ra)*len(rb))
	return distance(ra, rb, 0, 0, memo)
}

// distance はインデックス (i, j) 以降のサフィックス同士の編集距離を計算します。
func distance(a, b []rune, i, j int, memo map[[2]int]int) int {
	if i == len(a) {
		return len(b) - j
	}
	if j == len(b) {
		return len(a) - i
	}

	key := [2]int{i, j}
	if d, ok := memo[key]; ok {
		return d
	}

	var d int
	if a[i] == b[j] {
		d = distance(a, b, i+1, j+1, memo)
	} else {
		insert := distance(a, b, i, j+1, memo)
		remove := distance(a, b, i+1, j, memo)
		replace := distance(a, b, i+1, j+1, memo)

		d = 1 + min3(insert, remove, replace)
	}

	memo[key] = d
	return d
}

// min3 は3つの整数の最小値を返します。
func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
