package terminal

import (
	"bufio"
	"io"
	"os"
	"sync"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// Real is an OS-terminal-backed Terminal: raw mode via golang.org/x/term
// and a cancellable background reader via github.com/muesli/cancelreader,
// both already part of the teacher's own dependency stack (SPEC_FULL.md's
// domain-stack table). This is a bonus reference backend — spec.md treats
// the concrete terminal as an external collaborator, not a module this
// spec requires.
type Real struct {
	in       *os.File
	out      io.Writer
	oldState *term.State

	mu       sync.Mutex
	reader   cancelreader.CancelReader
	closed   bool
}

// NewReal opens raw mode on in (typically os.Stdin) and returns a Terminal
// that writes to out (typically os.Stdout). The caller must call Close to
// restore the terminal's prior mode.
func NewReal(in *os.File, out io.Writer) (*Real, error) {
	oldState, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, err
	}
	return &Real{in: in, out: out, oldState: oldState}, nil
}

// Write implements Terminal.
func (r *Real) Write(text string) error {
	_, err := io.WriteString(r.out, text)
	return err
}

// Read implements Terminal: spawns a background goroutine that decodes
// UTF-8 runes from the raw tty and emits them on the returned channel until
// Close cancels the underlying reader.
func (r *Real) Read() (<-chan rune, error) {
	cr, err := cancelreader.NewReader(r.in)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.reader = cr
	r.mu.Unlock()

	out := make(chan rune)
	go func() {
		defer close(out)
		br := bufio.NewReader(cr)
		for {
			ch, _, err := br.ReadRune()
			if err != nil {
				return
			}
			out <- ch
		}
	}()
	return out, nil
}

// Close implements Terminal: idempotent, cancels any in-flight Read and
// restores the terminal's original mode.
func (r *Real) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if r.reader != nil {
		_ = r.reader.Cancel()
		_ = r.reader.Close()
	}
	if r.oldState != nil {
		return term.Restore(int(r.in.Fd()), r.oldState)
	}
	return nil
}
