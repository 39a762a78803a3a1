package view

import (
	"strings"
	"sync"
)

// Memory is an in-process Surface. It keeps the last shown frame and
// replays posted events, which makes it suitable for tests and headless runs.
type Memory struct {
	mu     sync.Mutex
	width  int
	height int
	cells  [][]Cell
	frame  []string
	shows  int

	events chan Event
	done   chan struct{}
	once   sync.Once
}

// NewMemory creates a width x height surface.
func NewMemory(width, height int) *Memory {
	m := &Memory{
		width:  width,
		height: height,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
	m.cells = make([][]Cell, height)
	for y := range m.cells {
		m.cells[y] = make([]Cell, width)
	}
	m.clear()
	return m
}

func (m *Memory) Init() error { return nil }

func (m *Memory) Fini() {
	m.once.Do(func() { close(m.done) })
}

func (m *Memory) Size() (int, int) {
	return m.width, m.height
}

func (m *Memory) SetCell(x, y int, c Cell) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells[y][x] = c
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clear()
}

func (m *Memory) clear() {
	for y := range m.cells {
		for x := range m.cells[y] {
			m.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

func (m *Memory) Show() {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame := make([]string, m.height)
	var sb strings.Builder
	for y, row := range m.cells {
		sb.Reset()
		for _, c := range row {
			sb.WriteRune(c.Rune)
		}
		frame[y] = strings.TrimRight(sb.String(), " ")
	}
	m.frame = frame
	m.shows++
}

func (m *Memory) PollEvent() Event {
	select {
	case ev := <-m.events:
		return ev
	case <-m.done:
		return Event{Type: EventClosed}
	}
}

func (m *Memory) PostInterrupt(data any) error {
	return m.Post(Event{Type: EventInterrupt, Data: data})
}

// Post queues ev for PollEvent.
func (m *Memory) Post(ev Event) error {
	select {
	case <-m.done:
		return ErrSurfaceClosed
	default:
	}
	select {
	case m.events <- ev:
		return nil
	case <-m.done:
		return ErrSurfaceClosed
	}
}

// PostKey queues a key event.
func (m *Memory) PostKey(k Key) error {
	return m.Post(Event{Type: EventKey, Key: k})
}

// PostText queues one KeyRune event per rune of s.
func (m *Memory) PostText(s string) error {
	for _, r := range s {
		if err := m.Post(Event{Type: EventKey, Key: KeyRune, Rune: r}); err != nil {
			return err
		}
	}
	return nil
}

// Lines returns the last shown frame with trailing blanks trimmed.
func (m *Memory) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.frame...)
}

// Text returns the last shown frame joined by newlines.
func (m *Memory) Text() string {
	return strings.Join(m.Lines(), "\n")
}

// Contains reports whether the last shown frame contains s on any line.
func (m *Memory) Contains(s string) bool {
	for _, line := range m.Lines() {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

// CellAt returns the current (not necessarily shown) cell at (x, y).
func (m *Memory) CellAt(x, y int) Cell {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return Cell{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cells[y][x]
}

// Shows returns how many times Show was called.
func (m *Memory) Shows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shows
}
