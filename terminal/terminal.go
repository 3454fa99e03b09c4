// Package terminal defines Kotter's Terminal collaborator interface (spec
// §6, out of scope for the core's own semantics) and provides two ready
// implementations: Real, backed by an actual OS terminal, and Fake, an
// in-memory stand-in for tests.
package terminal

// Terminal is the minimal capability set the Section runtime needs from a
// concrete backend: write raw (ANSI-interpreting) bytes, and read a stream
// of input codepoints exactly once each. Two real implementations — an OS
// terminal and a windowed virtual terminal — are explicitly out of scope
// for this spec; only the interface and a reference OS backend live here.
type Terminal interface {
	// Write sends text (which may embed CSI escape sequences) verbatim; it
	// must not line-buffer.
	Write(text string) error

	// Read returns a channel of input codepoints. Each call establishes a
	// new reader; Kotter itself only ever calls this once per session and
	// fans the result out via keys.Broadcast.
	Read() (<-chan rune, error)

	// Close is idempotent.
	Close() error
}
