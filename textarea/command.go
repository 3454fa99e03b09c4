// Package textarea implements the grid-of-styled-cells model a render pass
// produces: TerminalCommand (spec §3), TextArea, and SectionState. This is
// the diffing/serialization substrate the rest of Kotter renders through.
//
// Grounded on the teacher's standard_renderer.go (line-by-line buffer
// diffing) and lipgloss/style.go (nested attribute application), rebuilt
// around the spec's explicit append-only command log instead of a
// pre-rendered string.
package textarea

// CommandKind distinguishes the TerminalCommand variants from spec §3.
// Spec §3 also names SetStyle/ClearStyle variants; this port resolves style
// at each Char/Text command instead (render.Scope threads its own State
// through every Apply call, see state.go's applyDiff), so no SetStyle/
// ClearStyle Command variant or constructor exists here — see DESIGN.md.
type CommandKind int

const (
	KindChar CommandKind = iota
	KindText
	KindNewline
)

// Command is a single TerminalCommand value (spec §3). Exactly one of the
// fields is meaningful depending on Kind.
type Command struct {
	Kind CommandKind
	Char rune
	Text string
}

func CmdChar(r rune) Command   { return Command{Kind: KindChar, Char: r} }
func CmdText(s string) Command { return Command{Kind: KindText, Text: s} }
func CmdNewline() Command      { return Command{Kind: KindNewline} }
