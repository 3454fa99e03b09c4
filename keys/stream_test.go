package keys

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, in chan rune, n int) []Key {
	t.Helper()
	out := Translate(in)
	var got []Key
	for i := 0; i < n; i++ {
		select {
		case k := <-out:
			got = append(got, k)
		case <-time.After(time.Second):
			require.Fail(t, "timed out waiting for key")
		}
	}
	return got
}

func send(in chan rune, s string) {
	for _, r := range s {
		in <- r
	}
}

func TestTranslatePlainChars(t *testing.T) {
	in := make(chan rune, 8)
	send(in, "ab")
	got := collect(t, in, 2)
	assert.Equal(t, []Key{CharKey('a'), CharKey('b')}, got)
}

func TestTranslateEnterAndBackspace(t *testing.T) {
	in := make(chan rune, 8)
	in <- '\r'
	in <- 0x7f
	got := collect(t, in, 2)
	assert.Equal(t, []Key{{Type: Enter}, {Type: Backspace}}, got)
}

func TestTranslateArrowKeys(t *testing.T) {
	in := make(chan rune, 8)
	send(in, "\x1b[A\x1b[B\x1b[C\x1b[D")
	got := collect(t, in, 4)
	assert.Equal(t, []Key{{Type: Up}, {Type: Down}, {Type: Right}, {Type: Left}}, got)
}

func TestTranslateNamedCSI(t *testing.T) {
	in := make(chan rune, 16)
	send(in, "\x1b[1~\x1b[3~\x1b[4~\x1b[5~\x1b[6~")
	got := collect(t, in, 5)
	assert.Equal(t, []Key{{Type: Home}, {Type: Delete}, {Type: End}, {Type: PageUp}, {Type: PageDown}}, got)
}

func TestTranslateLoneEsc(t *testing.T) {
	in := make(chan rune, 4)
	in <- 0x1b
	in <- 'a'
	got := collect(t, in, 2)
	assert.Equal(t, []Key{{Type: Esc}, CharKey('a')}, got)
}

func TestBroadcastFansOutToMultipleSubscribers(t *testing.T) {
	in := make(chan rune, 4)
	keys := Translate(in)
	b := NewBroadcast(keys)
	a := b.Subscribe()
	c := b.Subscribe()
	defer b.Unsubscribe(a)
	defer b.Unsubscribe(c)

	in <- 'x'
	for _, ch := range []chan Key{a, c} {
		select {
		case k := <-ch:
			assert.Equal(t, CharKey('x'), k)
		case <-time.After(time.Second):
			require.Fail(t, "subscriber did not receive key")
		}
	}
}
