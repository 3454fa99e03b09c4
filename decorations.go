package kotter

import "github.com/kottergo/kotter/render"

// BorderStyle names the glyphs Bordered draws with (spec §8 scenario 6's
// "ASCII" style).
type BorderStyle struct {
	Horizontal, Vertical                        rune
	TopLeft, TopRight, BottomLeft, BottomRight rune
}

// ASCIIBorder is the plain +/-/| style spec §8 scenario 6 uses.
var ASCIIBorder = BorderStyle{
	Horizontal: '-', Vertical: '|',
	TopLeft: '+', TopRight: '+', BottomLeft: '+', BottomRight: '+',
}

// Bordered renders content offscreen, measures its widest line, and draws
// a border around the replayed rows padded out to that width (spec §4.3:
// "bordered computes max line width up-front, draws top edge, then walks
// rows interleaving vertical border glyphs"). Grounded on lipgloss/style.go's
// Border rendering, rebuilt on render.OffscreenBuffer instead of lipgloss's
// retained Style tree.
func Bordered(scope *render.Scope, style BorderStyle, content func(*render.Scope)) {
	buf := scope.Offscreen(content)
	width := 0
	for _, w := range buf.LineLengths() {
		if w > width {
			width = w
		}
	}

	scope.TextLine(string(style.TopLeft) + repeatRune(style.Horizontal, width) + string(style.TopRight))

	renderer := buf.CreateRenderer()
	for row := 0; renderer.HasNextRow(); row++ {
		scope.Text(string(style.Vertical))
		contentWidth := buf.Width(row)
		renderer.RenderNextRow(scope)
		scope.Text(repeatRune(' ', width-contentWidth))
		scope.TextLine(string(style.Vertical))
	}

	scope.TextLine(string(style.BottomLeft) + repeatRune(style.Horizontal, width) + string(style.BottomRight))
}

// ShiftRight renders content offscreen and replays it with indent spaces
// prefixed to every row (spec §4.3: "shiftRight indents each row").
func ShiftRight(scope *render.Scope, indent int, content func(*render.Scope)) {
	buf := scope.Offscreen(content)
	renderer := buf.CreateRenderer()
	for renderer.HasNextRow() {
		scope.Text(repeatRune(' ', indent))
		renderer.RenderNextRow(scope)
		scope.Newline()
	}
}

func repeatRune(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
