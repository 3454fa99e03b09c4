package textarea

import "github.com/kottergo/kotter/ansicode"

// State is a nested style frame: fg/bg color, bold/underline/strikethrough/
// invert, with an optional parent (set by Child). render.Scope's
// ScopedState saves and restores its State by value rather than calling
// Child; the parent's style is back in effect after the block exits.
type State struct {
	Parent *State

	Fg, Bg           ansicode.Color
	HasFg, HasBg     bool
	Bold             bool
	Underline        bool
	Strikethrough    bool
	Invert           bool
}

// Child returns a new State that inherits this one's attributes, for
// entering a scopedState block.
func (s *State) Child() *State {
	child := *s
	child.Parent = s
	return &child
}

// applyDiff writes into area only the SGR codes necessary to move from prev
// to s, per spec §3 ("applyTo ... emits whichever SGR codes differ"). If
// force is true every attribute is (re-)emitted regardless of prev.
// Serialize always passes false: leaving a scopedState block is handled by
// the same per-cell diff, not by a forced re-emission.
func (s State) applyDiff(prev State, force bool, profile ansicode.Profile, w *styleWriter) {
	if force || s.HasFg != prev.HasFg || (s.HasFg && s.Fg != prev.Fg) {
		if s.HasFg {
			w.write(profile.SGR(s.Fg, ansicode.Foreground))
		} else {
			w.write(ansicode.DefaultSGR(ansicode.Foreground))
		}
	}
	if force || s.HasBg != prev.HasBg || (s.HasBg && s.Bg != prev.Bg) {
		if s.HasBg {
			w.write(profile.SGR(s.Bg, ansicode.Background))
		} else {
			w.write(ansicode.DefaultSGR(ansicode.Background))
		}
	}
	writeFlag(w, force, s.Bold, prev.Bold, ansicode.Bold)
	writeFlag(w, force, s.Underline, prev.Underline, ansicode.Underline)
	writeFlag(w, force, s.Strikethrough, prev.Strikethrough, ansicode.Strikethrough)
	writeFlag(w, force, s.Invert, prev.Invert, ansicode.Invert)
}

func writeFlag(w *styleWriter, force, now, was bool, d ansicode.Decoration) {
	if !force && now == was {
		return
	}
	if now {
		w.write(ansicode.SGRSet(d))
	} else {
		w.write(ansicode.SGRClear(d))
	}
}

type styleWriter struct {
	out *[]byte
}

func (w *styleWriter) write(s string) {
	*w.out = append(*w.out, s...)
}
