package input

import (
	"testing"

	"github.com/kottergo/kotter/keys"
	"github.com/stretchr/testify/assert"
)

func TestHandleKeyCharInsertsAndAdvancesIndex(t *testing.T) {
	e := NewEditor(nil)
	e.HandleKey(keys.CharKey('a'))
	e.HandleKey(keys.CharKey('b'))
	assert.Equal(t, "ab", e.Text)
	assert.Equal(t, 2, e.Index)
}

func TestBackspaceAtZeroIsNoOp(t *testing.T) {
	e := NewEditor(nil)
	changed := e.HandleKey(keys.Key{Type: keys.Backspace})
	assert.False(t, changed)
	assert.Equal(t, "", e.Text)
}

func TestDeleteAtEndIsNoOp(t *testing.T) {
	e := NewEditor(nil)
	e.Text = "ab"
	e.Index = 2
	changed := e.HandleKey(keys.Key{Type: keys.Delete})
	assert.False(t, changed)
	assert.Equal(t, "ab", e.Text)
}

func TestIndexStaysWithinBounds(t *testing.T) {
	e := NewEditor(nil)
	e.Text = "ab"
	e.Index = 0
	e.HandleKey(keys.Key{Type: keys.Left})
	assert.Equal(t, 0, e.Index)
	e.Index = 2
	e.HandleKey(keys.Key{Type: keys.Right})
	assert.Equal(t, 2, e.Index)
}

func TestHomeEndNavigation(t *testing.T) {
	e := NewEditor(nil)
	e.Text = "hello"
	e.Index = 2
	e.HandleKey(keys.Key{Type: keys.End})
	assert.Equal(t, 5, e.Index)
	e.HandleKey(keys.Key{Type: keys.Home})
	assert.Equal(t, 0, e.Index)
}

type staticCompleter struct{ suffix string }

func (s staticCompleter) Complete(text string) (string, bool) {
	if s.suffix == "" {
		return "", false
	}
	return s.suffix, true
}

func TestRightAcceptsCompletionAtEnd(t *testing.T) {
	e := NewEditor(staticCompleter{suffix: "lo"})
	e.Text = "hel"
	e.Index = 3
	changed := e.HandleKey(keys.Key{Type: keys.Right})
	assert.True(t, changed)
	assert.Equal(t, "hello", e.Text)
	assert.Equal(t, 5, e.Index)
}

func TestOnChangedCanRejectEdit(t *testing.T) {
	e := NewEditor(nil)
	e.OnChanged(func(c *ChangeScope) { c.Reject() })
	changed := e.HandleKey(keys.CharKey('x'))
	assert.False(t, changed)
	assert.Equal(t, "", e.Text)
}

func TestLastOnChangedRejectedFlagWins(t *testing.T) {
	e := NewEditor(nil)
	e.OnChanged(func(c *ChangeScope) { c.Reject() })
	e.OnChanged(func(c *ChangeScope) { c.Accept() }) // last writer wins, per spec §9
	e.HandleKey(keys.CharKey('x'))
	assert.Equal(t, "x", e.Text)
}

func TestEnterInvokesUserThenSectionHandlerUnlessRejected(t *testing.T) {
	e := NewEditor(nil)
	var order []string
	e.OnEntered(func(s *EnteredScope) { order = append(order, "user") })
	e.OnEnter(func() { order = append(order, "section") })
	e.HandleKey(keys.Key{Type: keys.Enter})
	assert.Equal(t, []string{"user", "section"}, order)
}

func TestEnterRejectedSkipsSectionHandler(t *testing.T) {
	e := NewEditor(nil)
	var sectionCalled bool
	e.OnEntered(func(s *EnteredScope) { s.RejectInput() })
	e.OnEnter(func() { sectionCalled = true })
	e.HandleKey(keys.Key{Type: keys.Enter})
	assert.False(t, sectionCalled)
}

func TestBlinkFlipsEvery500ms(t *testing.T) {
	e := NewEditor(nil)
	assert.True(t, e.BlinkOn)
	changed := e.Tick(499)
	assert.False(t, changed)
	changed = e.Tick(1)
	assert.True(t, changed)
	assert.False(t, e.BlinkOn)
}
