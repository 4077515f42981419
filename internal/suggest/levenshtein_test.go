package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "同一文字列", a: "level", b: "level", want: 0},
		{name: "空文字列との距離は長さ", a: "", b: "level", want: 5},
		{name: "置換1回", a: "dbug", b: "debug", want: 1},
		{name: "削除と挿入", a: "kitten", b: "sitting", want: 3},
		{name: "マルチバイト文字", a: "設定", b: "設走", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			// 距離は対称
			assert.Equal(t, tt.want, Distance(tt.b, tt.a))
		})
	}
}

func TestLevenshteinSuggester_Suggest(t *testing.T) {
	s := NewLevenshteinSuggester()
	pool := []string{"level", "format", "file"}

	t.Run("最も近い候補を返す", func(t *testing.T) {
		assert.Equal(t, "level", s.Suggest("levle", pool))
		assert.Equal(t, "format", s.Suggest("fromat", pool))
	})

	t.Run("提案は常に候補集合の要素", func(t *testing.T) {
		inputs := []string{"xyz", "lev", "f", "formatted", ""}
		for _, input := range inputs {
			got := s.Suggest(input, pool)
			assert.Contains(t, pool, got, "input=%s", input)
		}
	})

	t.Run("同距離のタイブレークは辞書順", func(t *testing.T) {
		// "aa" と "bb" はどちらも距離2
		assert.Equal(t, "aa", s.Suggest("cc", []string{"bb", "aa"}))
	})

	t.Run("空の候補集合は入力をそのまま返す", func(t *testing.T) {
		assert.Equal(t, "anything", s.Suggest("anything", nil))
		assert.Equal(t, "anything", s.Suggest("anything", []string{}))
	})
}

func TestLevenshteinSuggester_FormatCandidateList(t *testing.T) {
	s := NewLevenshteinSuggester()

	t.Run("整列とカンマ区切り", func(t *testing.T) {
		assert.Equal(t, "a, b, c", s.FormatCandidateList([]string{"c", "a", "b"}))
	})

	t.Run("重複は除去される", func(t *testing.T) {
		assert.Equal(t, "a, b", s.FormatCandidateList([]string{"b", "a", "b", "a"}))
	})

	t.Run("空の候補集合はセンチネル", func(t *testing.T) {
		assert.Equal(t, "(empty)", s.FormatCandidateList(nil))
	})

	t.Run("上限超過は空文字列", func(t *testing.T) {
		large := make([]string, maxCandidateListSize+1)
		for i := range large {
			large[i] = string(rune('a' + i))
		}
		assert.Equal(t, "", s.FormatCandidateList(large))
	})
}

func TestLevenshteinSuggester_SuggestDeterministic(t *testing.T) {
	s := NewLevenshteinSuggester()
	pool := []string{"host", "port", "protocol", "read_timeout", "tags"}

	first := s.Suggest("prot", pool)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, s.Suggest("prot", pool))
	}
}
