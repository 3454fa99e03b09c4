package terminal

import "sync"

// Fake is an in-memory Terminal for tests: Write appends to an internal
// buffer inspectable via Written, and input codepoints are fed in by the
// test via Feed.
type Fake struct {
	mu      sync.Mutex
	written []string
	in      chan rune
	closed  bool
}

// NewFake creates an empty Fake terminal.
func NewFake() *Fake {
	return &Fake{in: make(chan rune, 256)}
}

// Write implements Terminal.
func (f *Fake) Write(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, text)
	return nil
}

// Written returns every string passed to Write, in order.
func (f *Fake) Written() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.written))
	copy(out, f.written)
	return out
}

// Read implements Terminal: returns the channel fed by Feed.
func (f *Fake) Read() (<-chan rune, error) {
	return f.in, nil
}

// Feed injects codepoints as if typed at the terminal.
func (f *Fake) Feed(s string) {
	for _, r := range s {
		f.in <- r
	}
}

// Close implements Terminal; idempotent.
func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	close(f.in)
	return nil
}
