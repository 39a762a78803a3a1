package view

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Line is a single styled line of text.
type Line struct {
	Text  string
	Style Style
}

// Block is a vertical run of lines produced by a view.
type Block []Line

// Text returns the block's text joined by newlines.
func (b Block) Text() string {
	lines := make([]string, len(b))
	for i, l := range b {
		lines[i] = l.Text
	}
	return strings.Join(lines, "\n")
}

// Width returns the display width of the widest line.
func (b Block) Width() int {
	w := 0
	for _, l := range b {
		w = max(w, uniseg.StringWidth(l.Text))
	}
	return w
}

// Dim returns a copy of b with every line dimmed.
func (b Block) Dim() Block {
	out := make(Block, len(b))
	for i, l := range b {
		l.Style.Dim = true
		out[i] = l
	}
	return out
}

func text(s string) Line { return Line{Text: s} }

func styled(s string, st Style) Line { return Line{Text: s, Style: st} }

// DrawText draws s at (x, y), clipped to limit columns (the surface edge
// when limit <= 0). It returns the number of columns written.
func DrawText(s Surface, x, y int, str string, st Style, limit int) int {
	width, _ := s.Size()
	if limit <= 0 || x+limit > width {
		limit = width - x
	}

	col := 0
	g := uniseg.NewGraphemes(str)
	for g.Next() {
		w := g.Width()
		if w == 0 {
			continue
		}
		if col+w > limit {
			break
		}
		runes := g.Runes()
		s.SetCell(x+col, y, Cell{Rune: runes[0], Style: st})
		for i := 1; i < w; i++ {
			s.SetCell(x+col+i, y, Cell{Rune: ' ', Style: st})
		}
		col += w
	}
	return col
}

// DrawBlock draws b with its top-left corner at (x, y), each line clipped
// to limit columns. It returns the number of rows written.
func DrawBlock(s Surface, x, y int, b Block, limit int) int {
	_, height := s.Size()
	rows := 0
	for _, l := range b {
		if y+rows >= height {
			break
		}
		DrawText(s, x, y+rows, l.Text, l.Style, limit)
		rows++
	}
	return rows
}

// box border runes
const (
	boxH  = '─'
	boxV  = '│'
	boxTL = '┌'
	boxTR = '┐'
	boxBL = '└'
	boxBR = '┘'
)

// drawFrame draws a bordered box of w x h at (x, y) and blanks its interior.
func drawFrame(s Surface, x, y, w, h int) {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			r := ' '
			switch {
			case row == 0 && col == 0:
				r = boxTL
			case row == 0 && col == w-1:
				r = boxTR
			case row == h-1 && col == 0:
				r = boxBL
			case row == h-1 && col == w-1:
				r = boxBR
			case row == 0 || row == h-1:
				r = boxH
			case col == 0 || col == w-1:
				r = boxV
			}
			s.SetCell(x+col, y+row, Cell{Rune: r})
		}
	}
}

// Compose clears s, draws page and, when modal is non-nil, a framed modal
// on top of it, then shows the result.
func Compose(s Surface, page Block, modal Block) {
	s.Clear()
	DrawBlock(s, 0, 0, page, 0)

	if modal != nil {
		width, height := s.Size()
		w := min(modal.Width()+4, width-2)
		h := min(len(modal)+2, height-1)
		x := max((width-w)/2, 0)
		y := 1
		if w > 2 && h > 2 {
			drawFrame(s, x, y, w, h)
			DrawBlock(s, x+2, y+1, modal[:h-2], w-4)
		}
	}

	s.Show()
}
