package kotter

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kottergo/kotter/ansicode"
	"github.com/kottergo/kotter/render"
	"github.com/kottergo/kotter/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *terminal.Fake) {
	t.Helper()
	fake := terminal.NewFake()
	sess, err := NewSession(fake, WithProfile(ansicode.TrueColorProfile()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })
	return sess, fake
}

// TestTrivialLinesResolveExactly matches spec §8 scenario 1.
func TestTrivialLinesResolveExactly(t *testing.T) {
	sess, fake := newTestSession(t)

	sec := sess.NewSection(func(scope *render.Scope) {
		scope.TextLine("Line 1")
		scope.TextLine("Line 2")
	}, nil)

	require.NoError(t, sec.Run(context.Background()))

	written := strings.Join(fake.Written(), "")
	assert.Equal(t, "Line 1\nLine 2\n"+ansicode.SGRReset+"\n", written)
}

// TestSingleLineRepaintFiresExactlyThreePasses matches spec §8 scenario 2.
func TestSingleLineRepaintFiresExactlyThreePasses(t *testing.T) {
	sess, fake := newTestSession(t)
	count := NewLiveVar(0)

	var passes int
	var mu sync.Mutex

	sec := sess.NewSection(func(scope *render.Scope) {
		mu.Lock()
		passes++
		mu.Unlock()
		scope.Text(itoa(count.Get()))
	}, func(r *Run) {
		count.Set(1)
		waitForCondition(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return passes >= 2
		})
		count.Set(2)
		waitForCondition(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return passes >= 3
		})
	})

	require.NoError(t, sec.Run(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, passes)

	written := fake.Written()
	last := written[len(written)-1]
	assert.Contains(t, last, "2"+ansicode.SGRReset)
}

// TestAsidesFlushBeforeNextRedrawInOrder matches spec §8 scenario 4.
func TestAsidesFlushBeforeNextRedrawInOrder(t *testing.T) {
	sess, fake := newTestSession(t)
	done := make(chan struct{})

	sec := sess.NewSection(func(scope *render.Scope) {
		scope.Newline()
		scope.Text("Section text")
	}, func(r *Run) {
		for i := 1; i <= 5; i++ {
			i := i
			r.Aside(func(scope *render.Scope) { scope.Text("Aside #" + itoa(i)) })
		}
		r.RequestRerender()
		waitForCondition(t, func() bool { return len(fake.Written()) >= 2 })
		close(done)
	})

	require.NoError(t, sec.Run(context.Background()))
	<-done

	all := strings.Join(fake.Written(), "")
	for i := 1; i <= 5; i++ {
		assert.Contains(t, all, "Aside #"+itoa(i))
	}
	idx1 := strings.Index(all, "Aside #1")
	idx5 := strings.Index(all, "Aside #5")
	idxSection := strings.Index(all, "Section text")
	assert.True(t, idx1 < idx5)
	assert.True(t, idx5 < idxSection)
}

// TestSectionCannotBeRunTwice matches spec §7's SectionConsumed and §8's
// single-active-section property.
func TestSectionCannotBeRunTwice(t *testing.T) {
	sess, _ := newTestSession(t)
	sec := sess.NewSection(func(scope *render.Scope) { scope.Text("x") }, nil)
	require.NoError(t, sec.Run(context.Background()))
	err := sec.Run(context.Background())
	assert.ErrorIs(t, err, ErrSectionConsumed)
}

// TestSecondConcurrentSectionFailsToActivate matches spec §8's
// single-active-section property.
func TestSecondConcurrentSectionFailsToActivate(t *testing.T) {
	sess, _ := newTestSession(t)
	started := make(chan struct{})
	release := make(chan struct{})

	first := sess.NewSection(func(scope *render.Scope) { scope.Text("first") }, func(r *Run) {
		close(started)
		<-release
	})

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_ = first.Run(context.Background())
	}()
	<-started

	second := sess.NewSection(func(scope *render.Scope) { scope.Text("second") }, nil)
	err := second.Run(context.Background())
	assert.ErrorIs(t, err, ErrMultipleActiveSections)

	close(release)
	<-firstDone
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}

func waitForCondition(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
