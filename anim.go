package kotter

import (
	"sync"
	"time"

	"github.com/kottergo/kotter/render"
	"github.com/kottergo/kotter/timer"
)

const animTick = 16 * time.Millisecond

// TextAnim is a frame-indexed animation over a fixed set of strings: on
// first read from a live render pass it registers a single repeating 16ms
// timer for the animation instance, and exposes the current frame as
// a LiveVar so reading it causes automatic rerenders (spec §4.9). Grounded
// on bubbles/spinner/spinner.go's timer-driven frame advance, translated
// from a tea.Cmd tick loop into a LiveVar-backed frame index.
type TextAnim struct {
	frames  []string
	frameMs int
	animMs  int

	mu        sync.Mutex
	elapsedMs int
	started   bool

	frame *LiveVar[string]
}

// NewTextAnim creates an animation cycling through frames, each held for
// frameDuration before advancing. Spec §4.9's `Anim(frames, frameDuration)`
// constructor name maps onto this type.
func NewTextAnim(frames []string, frameDuration time.Duration) *TextAnim {
	frameMs := frameMillis(frameDuration)
	initial := ""
	if len(frames) > 0 {
		initial = frames[0]
	}
	return &TextAnim{
		frames:  frames,
		frameMs: frameMs,
		animMs:  frameMs * len(frames),
		frame:   NewLiveVar(initial),
	}
}

// NewAnim is an alias for NewTextAnim matching spec §4.9's constructor
// name directly.
func NewAnim(frames []string, frameDuration time.Duration) *TextAnim {
	return NewTextAnim(frames, frameDuration)
}

// Frame reads the current frame, registering the reading section as this
// LiveVar's owner and lazily starting the animation's timer. Access outside
// a live render pass returns the current frame without scheduling anything
// (spec §4.9: "does nothing useful").
func (a *TextAnim) Frame() string {
	a.ensureStarted()
	return a.frame.Get()
}

func (a *TextAnim) ensureStarted() {
	sec := getCurrentRenderSection()
	if sec == nil || sec.run == nil {
		return
	}

	a.mu.Lock()
	if a.started || len(a.frames) == 0 {
		a.mu.Unlock()
		return
	}
	a.started = true
	a.mu.Unlock()

	sec.run.timers.AddTimer(animTick, true, "", func(*timer.Scope) {
		a.mu.Lock()
		a.elapsedMs = (a.elapsedMs + int(animTick.Milliseconds())) % a.animMs
		next := a.frames[a.elapsedMs/a.frameMs]
		a.mu.Unlock()
		a.frame.Set(next)
	})
}

// RenderAnimCallback draws frameIndex's content into scope.
type RenderAnimCallback func(scope *render.Scope, frameIndex int)

// RenderAnim is TextAnim's render-callback variant: draw receives the
// render scope directly and frameIndex, and may emit arbitrary commands
// (colors, text) each tick, instead of exposing a plain string (spec §4.9).
type RenderAnim struct {
	frameCount int
	frameMs    int
	animMs     int
	draw       RenderAnimCallback

	mu        sync.Mutex
	elapsedMs int
	started   bool

	frameIndex *LiveVar[int]
}

// NewRenderAnim creates a RenderAnim cycling through frameCount frames, each
// held for frameDuration, drawn via draw.
func NewRenderAnim(frameCount int, frameDuration time.Duration, draw RenderAnimCallback) *RenderAnim {
	frameMs := frameMillis(frameDuration)
	return &RenderAnim{
		frameCount: frameCount,
		frameMs:    frameMs,
		animMs:     frameMs * frameCount,
		draw:       draw,
		frameIndex: NewLiveVar(0),
	}
}

// Render draws the current frame into scope, starting the timer on first
// access from a live render pass.
func (a *RenderAnim) Render(scope *render.Scope) {
	a.ensureStarted()
	a.draw(scope, a.frameIndex.Get())
}

func (a *RenderAnim) ensureStarted() {
	sec := getCurrentRenderSection()
	if sec == nil || sec.run == nil {
		return
	}

	a.mu.Lock()
	if a.started || a.frameCount == 0 {
		a.mu.Unlock()
		return
	}
	a.started = true
	a.mu.Unlock()

	sec.run.timers.AddTimer(animTick, true, "", func(*timer.Scope) {
		a.mu.Lock()
		a.elapsedMs = (a.elapsedMs + int(animTick.Milliseconds())) % a.animMs
		idx := a.elapsedMs / a.frameMs
		a.mu.Unlock()
		a.frameIndex.Set(idx)
	})
}

func frameMillis(d time.Duration) int {
	ms := int(d.Milliseconds())
	if ms <= 0 {
		return 1
	}
	return ms
}
