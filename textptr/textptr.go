// Package textptr provides a read-only, panic-free cursor over a rune
// sequence with bounded movement and small scanning primitives. No other
// Kotter package imports it: the keys package's CSI accumulator and the
// input widget index rune slices directly.
package textptr

// Ptr is a cursor over text. The invariant 0 <= CharIndex <= len(text) is
// maintained by construction; CharIndex == len(text) is a valid one-past-
// the-end position whose CurrChar reads as the sentinel rune 0.
type Ptr struct {
	text      []rune
	charIndex int
}

// New creates a Ptr positioned at the start of text.
func New(text string) *Ptr {
	return &Ptr{text: []rune(text)}
}

// NewAt creates a Ptr over text positioned at charIndex, clamped to bounds.
func NewAt(text string, charIndex int) *Ptr {
	p := New(text)
	p.charIndex = clamp(charIndex, 0, len(p.text))
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Text returns the full underlying text.
func (p *Ptr) Text() string { return string(p.text) }

// Len returns the number of runes in the underlying text.
func (p *Ptr) Len() int { return len(p.text) }

// CharIndex returns the current position.
func (p *Ptr) CharIndex() int { return p.charIndex }

// IsEol reports whether the cursor sits at or past the end of the text.
func (p *Ptr) IsEol() bool { return p.charIndex >= len(p.text) }

// CurrChar returns the rune at the current position, or the sentinel rune 0
// if the cursor is at the one-past-the-end position.
func (p *Ptr) CurrChar() rune {
	if p.IsEol() {
		return 0
	}
	return p.text[p.charIndex]
}

// PeekChar looks ahead (or behind, for negative offset) without moving the
// cursor. Returns the sentinel rune 0 for any out-of-bounds offset.
func (p *Ptr) PeekChar(offset int) rune {
	idx := p.charIndex + offset
	if idx < 0 || idx >= len(p.text) {
		return 0
	}
	return p.text[idx]
}

// Increment moves the cursor forward by one (IncrementBy(1)), saturating at
// the end. Returns whether the position actually changed.
func (p *Ptr) Increment() bool { return p.IncrementBy(1) }

// IncrementBy moves the cursor forward by n, saturating at len(text).
func (p *Ptr) IncrementBy(n int) bool {
	before := p.charIndex
	p.charIndex = clamp(p.charIndex+n, 0, len(p.text))
	return p.charIndex != before
}

// Decrement moves the cursor back by one, saturating at 0.
func (p *Ptr) Decrement() bool { return p.DecrementBy(1) }

// DecrementBy moves the cursor back by n, saturating at 0.
func (p *Ptr) DecrementBy(n int) bool {
	before := p.charIndex
	p.charIndex = clamp(p.charIndex-n, 0, len(p.text))
	return p.charIndex != before
}

// StartsWith reports whether the text from the current position begins
// with s.
func (p *Ptr) StartsWith(s string) bool {
	rs := []rune(s)
	if p.charIndex+len(rs) > len(p.text) {
		return false
	}
	for i, r := range rs {
		if p.text[p.charIndex+i] != r {
			return false
		}
	}
	return true
}

// Substring returns the text between the current position (inclusive) and
// charIndex (exclusive). If charIndex < current position the result is "".
func (p *Ptr) Substring(charIndex int) string {
	end := clamp(charIndex, 0, len(p.text))
	if end <= p.charIndex {
		return ""
	}
	return string(p.text[p.charIndex:end])
}

// ReadInt reads an unsigned decimal integer starting at the current
// position, advancing the cursor past it. ok is false (and the cursor is
// not moved) if there is no digit at the current position.
func (p *Ptr) ReadInt() (value int, ok bool) {
	start := p.charIndex
	for !p.IsEol() && p.CurrChar() >= '0' && p.CurrChar() <= '9' {
		value = value*10 + int(p.CurrChar()-'0')
		p.charIndex++
		ok = true
	}
	if !ok {
		p.charIndex = start
	}
	return value, ok
}

// ReadUntil advances the cursor until the current char matches stop (which
// is not consumed), or until EOL, returning the text scanned over.
func (p *Ptr) ReadUntil(stop func(r rune) bool) string {
	start := p.charIndex
	for !p.IsEol() && !stop(p.CurrChar()) {
		p.charIndex++
	}
	return string(p.text[start:p.charIndex])
}
