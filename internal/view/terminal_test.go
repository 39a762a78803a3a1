package view

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	require.NoError(t, term.Init())
	sim.SetSize(20, 5)
	t.Cleanup(term.Fini)
	return term, sim
}

// nextOf polls until an event of type want arrives.
func nextOf(t *testing.T, term *Terminal, want EventType) Event {
	t.Helper()
	for i := 0; i < 10; i++ {
		ev := term.PollEvent()
		if ev.Type == want {
			return ev
		}
	}
	t.Fatalf("no event of type %d", want)
	return Event{}
}

func TestTerminal_Draw(t *testing.T) {
	term, sim := newSimTerminal(t)

	w, h := term.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 5, h)

	Compose(term, Block{styled("ларёк", StyleTitle)}, nil)

	cells, width, _ := sim.GetContents()
	require.Equal(t, 20, width)
	assert.Equal(t, []rune{'л'}, cells[0].Runes)
	assert.Equal(t, []rune{'ё'}, cells[3].Runes)

	_, _, attrs := cells[0].Style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold)
}

func TestTerminal_Keys(t *testing.T) {
	term, sim := newSimTerminal(t)

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	ev := nextOf(t, term, EventKey)
	assert.Equal(t, KeyRune, ev.Key)
	assert.Equal(t, 'q', ev.Rune)

	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	ev = nextOf(t, term, EventKey)
	assert.Equal(t, KeyEnter, ev.Key)
	assert.Zero(t, ev.Rune)
}

func TestTerminal_Interrupt(t *testing.T) {
	term, _ := newSimTerminal(t)

	require.NoError(t, term.PostInterrupt("done"))
	ev := nextOf(t, term, EventInterrupt)
	assert.Equal(t, "done", ev.Data)
}

func TestConvertKey(t *testing.T) {
	assert.Equal(t, KeyBackspace, convertKey(tcell.KeyBackspace2))
	assert.Equal(t, KeyCtrlC, convertKey(tcell.KeyCtrlC))
	assert.Equal(t, KeyNone, convertKey(tcell.KeyF5))
}
