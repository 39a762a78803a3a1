package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawText(t *testing.T) {
	m := NewMemory(10, 2)

	n := DrawText(m, 2, 0, "Корзина [1]", StyleTitle, 0)
	assert.Equal(t, 8, n)
	m.Show()
	assert.Equal(t, "  Корзина", m.Lines()[0])
	assert.True(t, m.CellAt(2, 0).Style.Bold)

	n = DrawText(m, 0, 1, "abcdef", StylePlain, 3)
	assert.Equal(t, 3, n)
	m.Show()
	assert.Equal(t, "abc", m.Lines()[1])
}

func TestDrawText_Wide(t *testing.T) {
	m := NewMemory(6, 1)
	n := DrawText(m, 0, 0, "日本語", StylePlain, 0)
	assert.Equal(t, 6, n)
	assert.Equal(t, '日', m.CellAt(0, 0).Rune)
	assert.Equal(t, '本', m.CellAt(2, 0).Rune)
}

func TestCompose(t *testing.T) {
	m := NewMemory(30, 8)

	Compose(m, Block{text("page")}, nil)
	require.Equal(t, 1, m.Shows())
	assert.Equal(t, "page", m.Lines()[0])

	Compose(m, Block{text("page")}, Block{text("modal")})
	lines := m.Lines()
	assert.Equal(t, "page", lines[0])
	assert.Contains(t, lines[1], "┌")
	assert.Contains(t, lines[2], "│ modal │")
	assert.Contains(t, lines[3], "└")
	assert.True(t, m.Contains("modal"))
}

func TestBlock_Width(t *testing.T) {
	b := Block{text("ab"), text("Корзина")}
	assert.Equal(t, 7, b.Width())
	assert.Equal(t, "ab\nКорзина", b.Text())
}
