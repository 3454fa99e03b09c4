package render

import (
	runewidth "github.com/mattn/go-runewidth"

	"github.com/kottergo/kotter/textarea"
)

func runeWidth(r rune) int { return runewidth.RuneWidth(r) }

// OffscreenBuffer is a secondary Scope whose commands are captured rather
// than emitted, so decorations can measure content (max line width) before
// replaying it into the real render (spec §4.3).
type OffscreenBuffer struct {
	rows [][]textarea.StyledRune
}

func newOffscreenBuffer(outer *Scope, render func(*Scope)) *OffscreenBuffer {
	inner := New(outer.profile, outer.aside)
	inner.state = outer.state // inherit outer style as the initial state
	render(inner)
	return &OffscreenBuffer{rows: inner.area.Rows()}
}

// LineLengths returns the character width of each captured row.
func (b *OffscreenBuffer) LineLengths() []int {
	out := make([]int, len(b.rows))
	for i, row := range b.rows {
		w := 0
		for _, sr := range row {
			w += runeWidth(sr.Rune)
		}
		out[i] = w
	}
	return out
}

// Width returns the character width of a single captured row, or 0 if row
// is out of range.
func (b *OffscreenBuffer) Width(row int) int {
	lens := b.LineLengths()
	if row < 0 || row >= len(lens) {
		return 0
	}
	return lens[row]
}

// NumRows returns how many rows were captured.
func (b *OffscreenBuffer) NumRows() int { return len(b.rows) }

// Renderer replays an OffscreenBuffer's rows, one at a time, into an outer
// Scope, preserving each row's original per-character style (spec §4.3).
type Renderer struct {
	buf *OffscreenBuffer
	idx int
}

// CreateRenderer returns a fresh replay cursor over b, starting at row 0.
func (b *OffscreenBuffer) CreateRenderer() *Renderer {
	return &Renderer{buf: b}
}

// HasNextRow reports whether any row remains to be replayed.
func (r *Renderer) HasNextRow() bool { return r.idx < len(r.buf.rows) }

// RenderNextRow pushes the next captured row's cells into outer, advancing
// the replay cursor. It is a no-op if HasNextRow is false.
func (r *Renderer) RenderNextRow(outer *Scope) {
	if !r.HasNextRow() {
		return
	}
	for _, sr := range r.buf.rows[r.idx] {
		outer.writeCell(sr.Rune, sr.Style)
	}
	r.idx++
}
