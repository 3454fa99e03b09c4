package textarea

import (
	"testing"

	"github.com/kottergo/kotter/ansicode"
	"github.com/stretchr/testify/assert"
)

func TestTextAreaTrivialLines(t *testing.T) {
	ta := New()
	st := State{}
	ta.Apply(CmdText("Line 1"), st)
	ta.Apply(CmdNewline(), st)
	ta.Apply(CmdText("Line 2"), st)

	assert.Equal(t, 2, ta.NumLines())
	assert.Equal(t, []int{6, 6}, ta.LineLengths())

	out := string(ta.Serialize(ansicode.TrueColorProfile()))
	assert.Equal(t, "Line 1\nLine 2"+ansicode.SGRReset+"\n", out)
}

func TestTextAreaEmpty(t *testing.T) {
	ta := New()
	assert.True(t, ta.IsEmpty())
	assert.Equal(t, 0, ta.NumLines())
}

func TestTextAreaStyleDiffMinimal(t *testing.T) {
	ta := New()
	plain := State{}
	bold := State{Bold: true}
	ta.Apply(CmdChar('a'), bold)
	ta.Apply(CmdChar('b'), bold)
	ta.Apply(CmdChar('c'), plain)

	out := string(ta.Serialize(ansicode.TrueColorProfile()))
	// Only one SGRBold at the start of the bold run, one clear before 'c'.
	assert.Equal(t, ansicode.SGRBold+"ab"+ansicode.SGRClear(ansicode.Bold)+"c"+ansicode.SGRReset+"\n", out)
}
