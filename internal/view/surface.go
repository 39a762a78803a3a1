package view

import "errors"

// ErrSurfaceClosed is returned when posting to a surface after Fini.
var ErrSurfaceClosed = errors.New("surface closed")

// Style is the subset of terminal attributes the views use.
type Style struct {
	Bold      bool
	Dim       bool
	Reverse   bool
	Underline bool
}

// Common styles.
var (
	StylePlain    = Style{}
	StyleTitle    = Style{Bold: true}
	StyleMuted    = Style{Dim: true}
	StyleSelected = Style{Reverse: true}
	StyleInput    = Style{Underline: true}
)

// Cell is a single character cell.
type Cell struct {
	Rune  rune
	Style Style
}

// EventType identifies the type of surface event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt

	// EventClosed is returned by PollEvent once the surface is finalized.
	EventClosed
)

// Key represents a keyboard key.
type Key int

// Keys the storefront reacts to. Everything else arrives as KeyRune or
// is dropped.
const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
)

// Event is a surface event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Resize event fields
	Width, Height int

	// Data carries the value passed to PostInterrupt.
	Data any
}

// Surface is a character-cell display with an input event stream.
type Surface interface {
	// Init prepares the surface. Must be called before any other method.
	Init() error

	// Fini releases the surface. A blocked PollEvent returns EventClosed.
	Fini()

	// Size returns the surface dimensions in cells.
	Size() (width, height int)

	// SetCell sets the cell at (x, y). Out of range coordinates are ignored.
	SetCell(x, y int, c Cell)

	// Clear blanks every cell.
	Clear()

	// Show makes pending changes visible.
	Show()

	// PollEvent blocks until the next event. Events the storefront does not
	// handle are reported as EventNone.
	PollEvent() Event

	// PostInterrupt queues an EventInterrupt carrying data.
	// Safe to call from any goroutine.
	PostInterrupt(data any) error
}
