package render

import (
	"testing"

	"github.com/kottergo/kotter/ansicode"
	"github.com/kottergo/kotter/textarea"
	"github.com/stretchr/testify/assert"
)

func TestScopeTrivialLines(t *testing.T) {
	s := New(ansicode.TrueColorProfile(), nil)
	s.TextLine("Line 1")
	s.TextLine("Line 2")

	assert.Equal(t, 3, s.Area().NumLines()) // trailing newline starts a 3rd empty line
	out := string(s.Area().Serialize(s.profile))
	assert.Equal(t, "Line 1\nLine 2\n"+ansicode.SGRReset+"\n", out)
}

func TestScopedStateIsolatesStyle(t *testing.T) {
	s := New(ansicode.TrueColorProfile(), nil)
	s.Bold()
	s.ScopedState(func() {
		s.ClearBold()
		s.Underline()
		s.Text("x")
	})
	// Outer style (bold, no underline) must be restored after the block.
	assert.True(t, s.state.Bold)
	assert.False(t, s.state.Underline)
}

func TestParagraphSpacing(t *testing.T) {
	s := New(ansicode.TrueColorProfile(), nil)
	for i := 0; i < 4; i++ {
		content := string(rune('a' + i))
		s.P(func() { s.TextLine(content) })
	}
	lens := s.Area().LineLengths()
	// No leading blank: first line is content, not empty.
	assert.NotEqual(t, 0, lens[0])
	// A blank line must separate each paragraph's content. The last two
	// entries (the blank below the final paragraph and the empty line after
	// the trailing newline) lie outside the content and are not counted.
	blanks := 0
	for _, l := range lens[:len(lens)-2] {
		if l == 0 {
			blanks++
		}
	}
	assert.Equal(t, 3, blanks)
}

func TestOffscreenBorderedWidth(t *testing.T) {
	s := New(ansicode.TrueColorProfile(), nil)
	buf := s.Offscreen(func(inner *Scope) {
		inner.TextLine("ab")
		inner.TextLine("cdef")
	})
	assert.Equal(t, []int{2, 4}, buf.LineLengths())
}

func TestAsideEnqueuesOnSink(t *testing.T) {
	sink := &fakeSink{}
	s := New(ansicode.TrueColorProfile(), sink)
	s.Aside(func(inner *Scope) { inner.Text("hello") })
	assert.Len(t, sink.enqueued, 1)
}

type fakeSink struct {
	enqueued []*textarea.TextArea
}

func (f *fakeSink) EnqueueAside(ta *textarea.TextArea) {
	f.enqueued = append(f.enqueued, ta)
}
