package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInclusionContext(t *testing.T) {
	t.Run("新規コンテキストは空のチェーンと残り深度を持つ", func(t *testing.T) {
		ictx := NewInclusionContext(3)
		assert.Empty(t, ictx.Chain)
		assert.Equal(t, 3, ictx.Remaining)
		assert.False(t, ictx.Exhausted())
	})

	t.Run("Pushは元のコンテキストを変更しない", func(t *testing.T) {
		base := NewInclusionContext(5)
		child := base.Push("/a.yaml")
		grandchild := child.Push("/b.yaml")

		assert.Empty(t, base.Chain)
		assert.Equal(t, 5, base.Remaining)

		assert.Equal(t, []Reference{"/a.yaml"}, child.Chain)
		assert.Equal(t, 4, child.Remaining)

		assert.Equal(t, []Reference{"/a.yaml", "/b.yaml"}, grandchild.Chain)
		assert.Equal(t, 3, grandchild.Remaining)
	})

	t.Run("兄弟の展開はチェーンを共有しない", func(t *testing.T) {
		base := NewInclusionContext(5).Push("/parent.yaml")
		left := base.Push("/left.yaml")
		right := base.Push("/right.yaml")

		assert.Equal(t, []Reference{"/parent.yaml", "/left.yaml"}, left.Chain)
		assert.Equal(t, []Reference{"/parent.yaml", "/right.yaml"}, right.Chain)
	})

	t.Run("Containsは祖先チェーンのみを見る", func(t *testing.T) {
		ictx := NewInclusionContext(5).Push("/a.yaml").Push("/b.yaml")
		assert.True(t, ictx.Contains("/a.yaml"))
		assert.True(t, ictx.Contains("/b.yaml"))
		assert.False(t, ictx.Contains("/c.yaml"))
	})

	t.Run("残り深度が尽きるとExhausted", func(t *testing.T) {
		ictx := NewInclusionContext(1)
		assert.False(t, ictx.Exhausted())
		assert.True(t, ictx.Push("/a.yaml").Exhausted())
	})
}

func TestMapping(t *testing.T) {
	t.Run("出現順と重複キーを保持する", func(t *testing.T) {
		m := NewMapping()
		m.Append("b", 1)
		m.Append("a", 2)
		m.Append("b", 3)

		assert.Equal(t, 3, m.Len())
		assert.Equal(t, []string{"b", "a", "b"}, m.Keys())

		// Getは最初の一致を返す
		value, ok := m.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 1, value)
	})

	t.Run("存在しないキー", func(t *testing.T) {
		m := NewMapping()
		_, ok := m.Get("missing")
		assert.False(t, ok)
	})
}

func TestPath(t *testing.T) {
	t.Run("ドット区切りの文字列化", func(t *testing.T) {
		p := Path{}.Child("logging").Child("level")
		assert.Equal(t, "logging.level", p.String())
	})

	t.Run("シーケンスのインデックス", func(t *testing.T) {
		p := Path{"servers"}.Index(2).Child("host")
		assert.Equal(t, "servers.[2].host", p.String())
	})

	t.Run("Childは元のPathを変更しない", func(t *testing.T) {
		base := Path{"a"}
		left := base.Child("b")
		right := base.Child("c")
		assert.Equal(t, "a.b", left.String())
		assert.Equal(t, "a.c", right.String())
	})
}
