package textarea

import (
	"bytes"

	"github.com/kottergo/kotter/ansicode"
	"github.com/muesli/ansi/compressor"
	runewidth "github.com/mattn/go-runewidth"
)

// cell is a single (codepoint, effective style) pair, spec §3's definition
// of a Cell.
type cell struct {
	r     rune
	style State
}

// TextArea is the append-only sequence of styled cells a render pass
// produces, tracking per-line widths as it goes (spec §3).
type TextArea struct {
	cells       []cell
	lineLengths []int
	curLineLen  int
}

// New creates an empty TextArea.
func New() *TextArea {
	return &TextArea{lineLengths: []int{0}}
}

// IsEmpty reports whether any cells have been appended.
func (t *TextArea) IsEmpty() bool { return len(t.cells) == 0 }

// NumLines is the count of newlines plus one if the area is non-empty,
// matching spec §3 exactly (an empty area has zero lines).
func (t *TextArea) NumLines() int {
	if t.IsEmpty() {
		return 0
	}
	return len(t.lineLengths)
}

// LineLengths returns the character width (ignoring SGR bytes) of each
// line, a defensive copy.
func (t *TextArea) LineLengths() []int {
	out := make([]int, len(t.lineLengths))
	copy(out, t.lineLengths)
	return out
}

// Apply executes a single TerminalCommand against the area, per spec §3.
func (t *TextArea) Apply(cmd Command, style State) {
	switch cmd.Kind {
	case KindChar:
		t.appendRune(cmd.Char, style)
	case KindText:
		for _, r := range cmd.Text {
			t.appendRune(r, style)
		}
	case KindNewline:
		t.lineLengths = append(t.lineLengths, 0)
		t.curLineLen = 0
		t.cells = append(t.cells, cell{r: '\n', style: style})
	}
}

func (t *TextArea) appendRune(r rune, style State) {
	t.cells = append(t.cells, cell{r: r, style: style})
	t.curLineLen += runewidth.RuneWidth(r)
	t.lineLengths[len(t.lineLengths)-1] = t.curLineLen
}

// Serialize linearizes the area to a byte stream with minimal SGR changes
// between consecutive cells, terminated by an SGR reset and a trailing
// newline (spec §3/§4.1's "every pass ends with an SGR-RESET and a final
// newline"). The cell-by-cell diff in applyDiff already keeps the stream
// close to minimal; the result is still passed through compressor.Writer
// (the same muesli/ansi pass standard_renderer.go wraps its output in) as a
// final safety net for any redundant sequence applyDiff's State-only view
// can't see, e.g. a color set immediately undone by a style pop.
func (t *TextArea) Serialize(profile ansicode.Profile) []byte {
	out := make([]byte, 0, len(t.cells)*2)
	w := &styleWriter{out: &out}

	prev := State{}
	first := true
	for _, c := range t.cells {
		if c.r == '\n' {
			out = append(out, '\n')
			continue
		}
		if first || c.style != prev {
			c.style.applyDiff(prev, false, profile, w)
			prev = c.style
			first = false
		}
		out = append(out, string(c.r)...)
	}
	out = append(out, ansicode.SGRReset...)
	out = append(out, '\n')

	var compressed bytes.Buffer
	cw := &compressor.Writer{Forward: &compressed}
	_, _ = cw.Write(out)
	return compressed.Bytes()
}

// StyledRune is one exported (rune, State) cell, used by OffscreenBuffer to
// replay captured rows into an outer scope (spec §4.3).
type StyledRune struct {
	Rune  rune
	Style State
}

// Rows splits the captured cells into one slice per line, splitting strictly
// on newlines: a trailing newline ends its row but does not open a further
// empty one (so "ab\ncdef\n" yields two rows, not three). This is distinct
// from NumLines, which intentionally counts that same trailing newline as
// the start of one more (empty) line for redraw-clearing purposes.
func (t *TextArea) Rows() [][]StyledRune {
	var rows [][]StyledRune
	var row []StyledRune
	for _, c := range t.cells {
		if c.r == '\n' {
			rows = append(rows, row)
			row = nil
			continue
		}
		row = append(row, StyledRune{Rune: c.r, Style: c.style})
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
