// Package render implements the per-pass render model: Scope (spec's
// RenderScope), the nested SectionState stack discipline, and
// OffscreenBuffer. Grounded on the teacher's standard_renderer.go
// (line-buffer-then-diff flow) and lipgloss/style.go (nested attribute
// application), rebuilt around the spec's explicit command log.
package render

import (
	"github.com/kottergo/kotter/ansicode"
	"github.com/kottergo/kotter/textarea"
)

// AsideSink receives a fully-rendered aside TextArea to enqueue on the
// owning section (spec §4.4). The root kotter package's Section implements
// this; render stays independent of Section to avoid an import cycle.
type AsideSink interface {
	EnqueueAside(ta *textarea.TextArea)
}

// Scope is one render pass's command-accumulating builder (spec's
// RenderScope, §4.1).
type Scope struct {
	area    *textarea.TextArea
	state   textarea.State
	profile ansicode.Profile
	aside   AsideSink

	// paragraph spacing bookkeeping (spec §4.1's p{} helper)
	atStart      bool
	lastWasBlank bool
}

// New creates a fresh Scope over an empty TextArea for one render pass.
func New(profile ansicode.Profile, aside AsideSink) *Scope {
	return &Scope{
		area:    textarea.New(),
		profile: profile,
		aside:   aside,
		atStart: true,
	}
}

// Area returns the TextArea accumulated so far.
func (s *Scope) Area() *textarea.TextArea { return s.area }

// Text appends s without a trailing newline.
func (s *Scope) Text(text string) {
	if text == "" {
		return
	}
	s.area.Apply(textarea.CmdText(text), s.state)
	s.atStart = false
	s.lastWasBlank = false
}

// TextLine appends s followed by a newline.
func (s *Scope) TextLine(text string) {
	s.Text(text)
	s.newline()
}

// Newline emits a bare newline, e.g. for spacing.
func (s *Scope) Newline() { s.newline() }

func (s *Scope) newline() {
	s.area.Apply(textarea.CmdNewline(), s.state)
	s.lastWasBlank = !s.atStart && s.isCurrentLineEmpty()
	s.atStart = false
}

func (s *Scope) isCurrentLineEmpty() bool {
	lengths := s.area.LineLengths()
	if len(lengths) < 2 {
		return true
	}
	return lengths[len(lengths)-2] == 0
}

// P wraps block in a paragraph: spec §4.1 — exactly one blank line above
// and below its content, no extra blank if already preceded/followed by
// one, and no leading blank at the very start of the section.
func (s *Scope) P(block func()) {
	if !s.atStart && !s.lastWasBlank {
		s.newline()
	}
	block()
	if !s.lastWasBlank {
		s.newline()
	}
}

// --- style setters ---

// Fg sets the foreground color for subsequent text in this scope.
func (s *Scope) Fg(c ansicode.Color) { s.state.Fg, s.state.HasFg = c, true }

// ClearFg reverts to the terminal's default foreground.
func (s *Scope) ClearFg() { s.state.HasFg = false }

// Bg sets the background color for subsequent text in this scope.
func (s *Scope) Bg(c ansicode.Color) { s.state.Bg, s.state.HasBg = c, true }

// ClearBg reverts to the terminal's default background.
func (s *Scope) ClearBg() { s.state.HasBg = false }

// Color sets color c on the given layer — the generic form of Fg/Bg.
func (s *Scope) Color(c ansicode.Color, layer ansicode.Layer) {
	if layer == ansicode.Background {
		s.Bg(c)
	} else {
		s.Fg(c)
	}
}

// RGB resolves a packed 0xRRGGBB truecolor value.
func (s *Scope) RGB(packed uint32) ansicode.Color { return ansicode.RGB(packed) }

// HSV resolves an HSV color (h in degrees 0-360, s and v in 0-1).
func (s *Scope) HSV(h, sat, v float64) ansicode.Color { return ansicode.HSV(h, sat, v) }

func (s *Scope) Bold()            { s.state.Bold = true }
func (s *Scope) ClearBold()       { s.state.Bold = false }
func (s *Scope) Underline()       { s.state.Underline = true }
func (s *Scope) ClearUnderline()  { s.state.Underline = false }
func (s *Scope) Strikethrough()      { s.state.Strikethrough = true }
func (s *Scope) ClearStrikethrough() { s.state.Strikethrough = false }
func (s *Scope) Invert()          { s.state.Invert = true }
func (s *Scope) ClearInvert()     { s.state.Invert = false }

// ScopedState pushes a child style frame, runs block, then restores the
// parent frame exactly (spec §4.1's scopedState and §8's "scoped state
// isolation" property).
func (s *Scope) ScopedState(block func()) {
	saved := s.state
	block()
	s.state = saved
}

// writeCell appends a single rune with an explicit, already-resolved style,
// bypassing s.state. OffscreenBuffer row replay uses this so a row's
// original per-character styling survives being pushed into an outer scope
// whose own running state is unrelated (spec §4.3).
func (s *Scope) writeCell(r rune, style textarea.State) {
	s.area.Apply(textarea.CmdChar(r), style)
	s.atStart = false
	s.lastWasBlank = false
}

// Offscreen runs render into a private buffer that is captured, not
// emitted, per spec §4.3.
func (s *Scope) Offscreen(render func(*Scope)) *OffscreenBuffer {
	return newOffscreenBuffer(s, render)
}

// Aside enqueues render as a one-shot history line on the owning section,
// per spec §4.4. A no-op if this Scope has no AsideSink (e.g. it is itself
// an aside scope — nested asides have no owning section to enqueue onto).
// An offscreen scope shares its outer scope's AsideSink.
func (s *Scope) Aside(render func(*Scope)) {
	if s.aside == nil {
		return
	}
	child := New(s.profile, nil)
	child.state = s.state
	render(child)
	s.aside.EnqueueAside(child.area)
}
