// Package ansicode enumerates the CSI (Control Sequence Introducer) escape
// sequences Kotter emits and reads, and knows how to downgrade SGR color
// sequences to whatever color depth the terminal actually supports.
package ansicode

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// ESC is the single-byte escape that introduces every sequence below.
const ESC = "\x1b"

// CSI is the two-byte Control Sequence Introducer.
const CSI = ESC + "["

// SGR (Select Graphic Rendition) codes.
const (
	SGRReset         = CSI + "0m"
	SGRBold          = CSI + "1m"
	SGRUnderline     = CSI + "4m"
	SGRStrikethrough = CSI + "9m"
	SGRInvert        = CSI + "7m"
	SGRClearInvert   = CSI + "27m"
	SGRDefaultFg     = CSI + "39m"
	SGRDefaultBg     = CSI + "49m"
)

// Cursor and erase sequences. Kotter only ever needs to move to the start of
// a previous line and erase the remainder of the current one; no other
// cursor motion is assumed to be supported (spec §2 Non-goals).
const (
	CursorPrevLine  = CSI + "1F"
	EraseToLineEnd  = CSI + "0K"
	CarriageReturn  = "\r"
)

// Decoration is a style attribute that can be set or cleared independent of
// color.
type Decoration int

const (
	Bold Decoration = iota
	Underline
	Strikethrough
	Invert
)

// SGRSet returns the CSI sequence that turns on the given decoration.
func SGRSet(d Decoration) string {
	switch d {
	case Bold:
		return SGRBold
	case Underline:
		return SGRUnderline
	case Strikethrough:
		return SGRStrikethrough
	case Invert:
		return SGRInvert
	}
	return ""
}

// SGRClear returns the CSI sequence that turns off the given decoration.
// Each decoration gets its own explicit clear code (22 bold, 24 underline,
// 29 strikethrough, 27 invert), so clearing one never turns off another.
func SGRClear(d Decoration) string {
	switch d {
	case Bold:
		return CSI + "22m"
	case Underline:
		return CSI + "24m"
	case Strikethrough:
		return CSI + "29m"
	case Invert:
		return SGRClearInvert
	}
	return ""
}

// Layer distinguishes foreground from background color application.
type Layer int

const (
	Foreground Layer = iota
	Background
)

// Color is a resolved terminal color: either one of the 16 standard/bright
// ANSI colors, or a 24-bit truecolor value. Downgrading to the terminal's
// actual profile happens in Resolve.
type Color struct {
	// Standard holds an ANSI color index 0-15 when IsStandard is true.
	Standard   int
	IsStandard bool
	R, G, B    uint8
}

// RGB constructs a truecolor Color from a packed 0xRRGGBB value.
func RGB(packed uint32) Color {
	return Color{
		R: uint8(packed >> 16),
		G: uint8(packed >> 8),
		B: uint8(packed),
	}
}

// HSV constructs a truecolor Color from hue (0-360), saturation and value
// (0-1), using the standard HSV->RGB conversion via go-colorful rather than
// a hand-rolled formula.
func HSV(h, s, v float64) Color {
	c := colorful.Hsv(h, s, v)
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}
}

// Standard returns one of the 16 named ANSI colors (0-7 standard, 8-15
// bright).
func Standard(index int) Color {
	return Color{Standard: index, IsStandard: true}
}

// Profile describes how many colors the output terminal can render. It
// wraps termenv's profile detection so truecolor requests gracefully
// degrade on terminals that only support 256 or 16 colors (SPEC_FULL.md's
// color-profile-detection supplement).
type Profile struct {
	p termenv.Profile
}

// DetectProfile inspects the process environment the way termenv does for
// a real terminal session.
func DetectProfile() Profile {
	return Profile{p: termenv.EnvColorProfile()}
}

// TrueColorProfile always renders 24-bit color, useful for tests and for
// virtual terminals that are known to support it.
func TrueColorProfile() Profile {
	return Profile{p: termenv.TrueColor}
}

// SGR renders the SGR escape sequence(s) that set the given color on the
// given layer, downgraded to this profile's supported depth.
func (p Profile) SGR(c Color, layer Layer) string {
	if c.IsStandard {
		return standardSGR(c.Standard, layer)
	}

	col := p.p.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	switch v := col.(type) {
	case termenv.RGBColor:
		code := "38"
		if layer == Background {
			code = "48"
		}
		return CSI + code + ";2;" + strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B)) + "m"
	case termenv.ANSI256Color:
		code := "38"
		if layer == Background {
			code = "48"
		}
		return CSI + code + ";5;" + v.Sequence(false) + "m"
	case termenv.ANSIColor:
		idx, _ := strconv.Atoi(v.Sequence(layer == Background))
		return CSI + strconv.Itoa(idx) + "m"
	default:
		return ""
	}
}

func standardSGR(index int, layer Layer) string {
	base := 30
	if index >= 8 {
		base = 90
		index -= 8
	}
	if layer == Background {
		base += 10
	}
	return CSI + strconv.Itoa(base+index) + "m"
}

// DefaultSGR returns the sequence that resets a single layer back to the
// terminal's default color.
func DefaultSGR(layer Layer) string {
	if layer == Background {
		return SGRDefaultBg
	}
	return SGRDefaultFg
}
