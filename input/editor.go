// Package input implements the editable single-line input() widget (spec
// §4.7): text/index/blink state, key handling, onInputChanged/onInputEntered
// callback chains, and rendering. Grounded end-to-end on the teacher's
// bubbles/textinput/textinput.go (index-bounded edit model, blink timer,
// completion-suggestion coloring).
package input

import (
	"github.com/kottergo/kotter/ansicode"
	"github.com/kottergo/kotter/keys"
	"github.com/kottergo/kotter/render"
)

// Completer proposes a completion suffix for the current input text, the
// contract behind input()'s optional completer parameter.
type Completer interface {
	Complete(text string) (suffix string, ok bool)
}

// ChangeScope is passed to each registered onInputChanged callback; any
// callback may rewrite Proposed or call Reject.
type ChangeScope struct {
	Proposed string
	Prev     string
	rejected bool
}

// Reject marks the proposed change as rejected. Per spec §9's resolved
// Open Question, if multiple callbacks disagree the *last* callback's
// rejected flag is what sticks.
func (c *ChangeScope) Reject() { c.rejected = true }

// Accept clears a previous Reject call from an earlier callback in the
// same chain, since the last writer wins (spec §9).
func (c *ChangeScope) Accept() { c.rejected = false }

// EnteredScope is passed to the onInputEntered callback.
type EnteredScope struct {
	Text     string
	rejected bool
}

// RejectInput tells the section's internal enter handler not to run.
func (e *EnteredScope) RejectInput() { e.rejected = true }

// Editor is the input() widget's full per-section state.
type Editor struct {
	Text    string
	Index   int
	BlinkOn bool

	blinkElapsedMs int

	completer Completer
	onChanged []func(*ChangeScope)
	onEntered func(*EnteredScope)
	onEnter   func() // the section's internal enter handler, invoked unless rejected
}

// NewEditor creates an empty Editor, optionally backed by a completer.
func NewEditor(completer Completer) *Editor {
	return &Editor{completer: completer, BlinkOn: true}
}

// OnChanged registers a callback fired (in registration order) after any
// proposed text/index change.
func (e *Editor) OnChanged(fn func(*ChangeScope)) { e.onChanged = append(e.onChanged, fn) }

// OnEntered registers the user's onInputEntered callback.
func (e *Editor) OnEntered(fn func(*EnteredScope)) { e.onEntered = fn }

// OnEnter registers the section's internal enter handler, run after
// onEntered unless RejectInput was called (spec §4.7).
func (e *Editor) OnEnter(fn func()) { e.onEnter = fn }

// resetBlink restores the cursor to visible and zeroes the blink clock,
// per spec §4.7 ("When text or index changes, reset blink to on").
func (e *Editor) resetBlink() {
	e.BlinkOn = true
	e.blinkElapsedMs = 0
}

// Tick advances the blink clock by deltaMs, flipping BlinkOn every 500ms
// (spec §4.7). Returns whether BlinkOn changed, so the caller can decide
// whether to request a rerender.
func (e *Editor) Tick(deltaMs int) bool {
	e.blinkElapsedMs += deltaMs
	if e.blinkElapsedMs >= 500 {
		e.blinkElapsedMs -= 500
		e.BlinkOn = !e.BlinkOn
		return true
	}
	return false
}

// HandleKey processes one logical key per spec §4.7's key table. Returns
// whether the text or the index changed, so the caller can request exactly
// one rerender when needed (spec §4.6's coalescing discipline applies at
// the call site, not here).
func (e *Editor) HandleKey(k keys.Key) (changed bool) {
	runes := []rune(e.Text)

	switch k.Type {
	case keys.Left:
		if e.Index > 0 {
			e.Index--
			changed = true
		}
	case keys.Right:
		if e.Index < len(runes) {
			e.Index++
			changed = true
		} else if e.completer != nil {
			if suffix, ok := e.completer.Complete(e.Text); ok && suffix != "" {
				changed = e.proposeChange(e.Text+suffix, e.Index+len([]rune(suffix)))
			}
		}
	case keys.Home:
		if e.Index != 0 {
			e.Index = 0
			changed = true
		}
	case keys.End:
		if e.Index != len(runes) {
			e.Index = len(runes)
			changed = true
		}
	case keys.Delete:
		if e.Index <= len(runes)-1 {
			next := append(append([]rune{}, runes[:e.Index]...), runes[e.Index+1:]...)
			changed = e.proposeChange(string(next), e.Index)
		}
	case keys.Backspace:
		if e.Index > 0 {
			next := append(append([]rune{}, runes[:e.Index-1]...), runes[e.Index:]...)
			changed = e.proposeChange(string(next), e.Index-1)
		}
	case keys.Enter:
		e.handleEnter()
		// Enter does not itself change text/index; no rerender needed here.
	case keys.Char:
		next := append(append([]rune{}, runes[:e.Index]...), append([]rune{k.Rune}, runes[e.Index:]...)...)
		changed = e.proposeChange(string(next), e.Index+1)
	case keys.Space:
		next := append(append([]rune{}, runes[:e.Index]...), append([]rune{' '}, runes[e.Index:]...)...)
		changed = e.proposeChange(string(next), e.Index+1)
	}

	if changed {
		e.resetBlink()
	}
	return changed
}

// proposeChange runs the full onInputChanged chain (spec §4.7) then
// commits the (possibly rewritten, possibly rejected) result, clamping the
// index into [0, len(text)]. Returns whether it actually committed a
// change, so HandleKey can report changed=false for a rejected edit and
// skip requesting a rerender over it.
func (e *Editor) proposeChange(proposedText string, proposedIndex int) bool {
	scope := &ChangeScope{Proposed: proposedText, Prev: e.Text}
	for _, fn := range e.onChanged {
		fn(scope)
	}
	if scope.rejected {
		return false // previous e.Text/e.Index stand
	}
	e.Text = scope.Proposed
	e.Index = clampIndex(proposedIndex, len([]rune(e.Text)))
	return true
}

func clampIndex(idx, max int) int {
	if idx < 0 {
		return 0
	}
	if idx > max {
		return max
	}
	return idx
}

func (e *Editor) handleEnter() {
	scope := &EnteredScope{Text: e.Text}
	if e.onEntered != nil {
		e.onEntered(scope)
	}
	if !scope.rejected && e.onEnter != nil {
		e.onEnter()
	}
}

// Render walks "text + completion + ' '", coloring the completion
// suggestion and inverting the character under a blinking cursor, exactly
// as spec §4.7 describes.
func (e *Editor) Render(scope *render.Scope, suggestionColor ansicode.Color) {
	runes := []rune(e.Text)
	completion := ""
	if e.completer != nil {
		if suffix, ok := e.completer.Complete(e.Text); ok {
			completion = suffix
		}
	}
	full := []rune(string(runes) + completion + " ")

	for i, r := range full {
		inCompletion := completion != "" && i >= len(runes)
		atCursor := i == e.Index && e.BlinkOn

		scope.ScopedState(func() {
			if inCompletion {
				scope.Fg(suggestionColor)
			}
			if atCursor {
				scope.Invert()
			}
			scope.Text(string(r))
		})
	}
}
