package keys

import "sync"

// Translate consumes raw codepoints from a terminal and emits logical Keys
// on the returned channel, which is closed when in is closed. It maintains
// a private escape-sequence accumulator per spec §4.7 ("the accumulator is
// never shared across forks") — each call to Translate owns its own.
func Translate(in <-chan rune) <-chan Key {
	out := make(chan Key)
	go func() {
		defer close(out)
		var esc []rune
		inEscape := false
		for r := range in {
			if !inEscape {
				switch {
				case r == 0x1b: // ESC
					inEscape = true
					esc = esc[:0]
				case r == '\r' || r == '\n':
					out <- Key{Type: Enter}
				case r == 0x7f || r == 0x08:
					out <- Key{Type: Backspace}
				case r == '\t':
					out <- Key{Type: Tab}
				case r == ' ':
					out <- Key{Type: Space}
				case isISOControl(r):
					// dropped per spec §4.7
				default:
					out <- Key{Type: Char, Rune: r}
				}
				continue
			}

			// Inside an escape sequence. A lone ESC with nothing following
			// (no '[') is itself the Esc key.
			if len(esc) == 0 && r != '[' {
				inEscape = false
				out <- Key{Type: Esc}
				// Re-process r as if it had just arrived outside an escape.
				if r == 0x1b {
					inEscape = true
					esc = esc[:0]
					continue
				}
				switch {
				case r == '\r' || r == '\n':
					out <- Key{Type: Enter}
				case r == 0x7f || r == 0x08:
					out <- Key{Type: Backspace}
				case r == '\t':
					out <- Key{Type: Tab}
				case r == ' ':
					out <- Key{Type: Space}
				case isISOControl(r):
				default:
					out <- Key{Type: Char, Rune: r}
				}
				continue
			}

			esc = append(esc, r)
			if k, done := matchCSI(esc); done {
				inEscape = false
				esc = esc[:0]
				if k != nil {
					out <- *k
				}
				// else: unknown escape, silently dropped per §7 UnknownAnsiInput
			}
		}
	}()
	return out
}

func isISOControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// matchCSI tries to interpret the accumulated escape bytes (not including
// the leading ESC) as one of the CSI key sequences spec §6 lists. done is
// true once the sequence has a recognized terminator (a letter, or '~'),
// at which point the accumulator should reset regardless of whether a key
// was recognized.
func matchCSI(esc []rune) (*Key, bool) {
	if len(esc) < 2 || esc[0] != '[' {
		return nil, false
	}
	last := esc[len(esc)-1]
	switch last {
	case 'A':
		return &Key{Type: Up}, true
	case 'B':
		return &Key{Type: Down}, true
	case 'C':
		return &Key{Type: Right}, true
	case 'D':
		return &Key{Type: Left}, true
	case '~':
		switch string(esc[1 : len(esc)-1]) {
		case "1":
			return &Key{Type: Home}, true
		case "3":
			return &Key{Type: Delete}, true
		case "4":
			return &Key{Type: End}, true
		case "5":
			return &Key{Type: PageUp}, true
		case "6":
			return &Key{Type: PageDown}, true
		default:
			return nil, true
		}
	}
	// Still accumulating digits before a terminator.
	for _, r := range esc[1:] {
		if (r < '0' || r > '9') && r != ';' {
			return nil, true // unrecognized terminator character, drop
		}
	}
	return nil, false
}

// Broadcast fans a single Key stream out to any number of subscribers, so
// the one shared stream established per session (spec §4.7) can feed
// multiple consumers (the input widget, onKeyPressed callbacks, run-block
// key collectors) without each owning a private read of the terminal.
type Broadcast struct {
	mu   sync.Mutex
	subs map[chan Key]struct{}
}

// NewBroadcast starts fanning out in to any subscriber registered via
// Subscribe, until in is closed.
func NewBroadcast(in <-chan Key) *Broadcast {
	b := &Broadcast{subs: make(map[chan Key]struct{})}
	go func() {
		for k := range in {
			b.mu.Lock()
			for ch := range b.subs {
				select {
				case ch <- k:
				default:
					// A slow subscriber drops keys rather than stalling the
					// whole broadcast; the input widget and key callbacks
					// are expected to drain promptly.
				}
			}
			b.mu.Unlock()
		}
		b.mu.Lock()
		for ch := range b.subs {
			close(ch)
		}
		b.subs = nil
		b.mu.Unlock()
	}()
	return b
}

// Subscribe registers a new consumer channel. Unsubscribe must be called
// when the consumer is done to avoid leaking the channel's slot.
func (b *Broadcast) Subscribe() chan Key {
	ch := make(chan Key, 16)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs != nil {
		b.subs[ch] = struct{}{}
	} else {
		close(ch)
	}
	return ch
}

// Unsubscribe removes a previously registered consumer channel.
func (b *Broadcast) Unsubscribe(ch chan Key) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs != nil {
		delete(b.subs, ch)
	}
}
