package kotter

import (
	"context"

	"github.com/kottergo/kotter/ansicode"
	"github.com/kottergo/kotter/data"
	"github.com/kottergo/kotter/input"
	"github.com/kottergo/kotter/keys"
	"github.com/kottergo/kotter/render"
	"github.com/kottergo/kotter/timer"
	"golang.org/x/sync/errgroup"
)

// Run is the suspendable foreground attached to a running section: signals,
// waitForSignal, the runUntil* convenience entry points, cancellation, and
// the section's TimerManager (spec §4.5, §4.8, §5).
type Run struct {
	sec    *Section
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	// Lifecycle is Section.Run.Lifecycle (spec §3's lifecycle forest).
	Lifecycle *data.Lifecycle
	timers    *timer.Manager

	signalCh chan struct{}
}

func newRun(sec *Section, parent context.Context, timers *timer.Manager, lifecycle *data.Lifecycle) *Run {
	cancelCtx, cancel := context.WithCancel(parent)
	group, gctx := errgroup.WithContext(cancelCtx)
	r := &Run{
		sec:       sec,
		ctx:       gctx,
		cancel:    cancel,
		group:     group,
		Lifecycle: lifecycle,
		timers:    timers,
		signalCh:  make(chan struct{}, 1),
	}
	r.group.Go(func() error {
		r.dispatchKeys()
		return nil
	})
	return r
}

// teardown cancels the run's context (unblocking any WaitForSignal or
// child task selecting on Context(), as an orderly exit per spec §4.5/§7)
// and waits for the key-dispatch loop and any user-spawned tasks (Go) to
// return.
func (r *Run) teardown() {
	r.cancel()
	_ = r.group.Wait()
}

// Context is this run's cooperative-cancellation context: cancelled on
// Abort or when the section's Run phase ends.
func (r *Run) Context() context.Context { return r.ctx }

// Abort cancels the run's context. A run block or child task observing
// ctx.Done() should return promptly; this is treated as an orderly exit,
// not an error (spec §4.5, §7's "Cooperative cancellation").
func (r *Run) Abort() { r.cancel() }

// Go spawns fn as a child task of this run, supervised the way the run
// block's own cancellation is (spec §2's "may itself spawn user tasks
// which are its children").
func (r *Run) Go(fn func() error) { r.group.Go(fn) }

// Signal unblocks a single pending WaitForSignal call.
func (r *Run) Signal() {
	select {
	case r.signalCh <- struct{}{}:
	default:
	}
}

// WaitForSignal blocks until Signal is called or the run is aborted.
func (r *Run) WaitForSignal() {
	select {
	case <-r.signalCh:
	case <-r.ctx.Done():
	}
}

// RunUntilSignal is the spec's naming for WaitForSignal.
func (r *Run) RunUntilSignal() { r.WaitForSignal() }

// Timers exposes this run's TimerManager for scheduling (spec §4.8).
func (r *Run) Timers() *timer.Manager { return r.timers }

// RequestRerender asks the owning section to redraw, coalesced per §4.6.
func (r *Run) RequestRerender() { r.sec.RequestRerender() }

// OnKeyPressed registers fn to run for every key arriving while the
// section is active.
func (r *Run) OnKeyPressed(fn func(keys.Key)) { r.sec.OnKeyPressed(fn) }

// OnFinishing registers a hook to run once the run block returns (spec
// §4.5 step 6).
func (r *Run) OnFinishing(fn func()) { r.sec.OnFinishing(fn) }

// Aside enqueues render as a one-shot history line ahead of the section's
// next redraw (spec §4.4).
func (r *Run) Aside(render func(*render.Scope)) { r.sec.Aside(render) }

// RunUntilKeyPressed blocks until any key arrives, or the run is aborted
// (ok is false in that case).
func (r *Run) RunUntilKeyPressed() (k keys.Key, ok bool) {
	ch := r.sec.session.subscribeKeys()
	defer r.sec.session.unsubscribeKeys(ch)
	select {
	case k, ok = <-ch:
		return k, ok
	case <-r.ctx.Done():
		return keys.Key{}, false
	}
}

// Input renders (or, on first call, creates) this section's persistent
// single-line input widget from inside the current render pass. completer
// may be nil. Calling it outside the current pass's main scope, more than
// once per pass, or from an offscreen/aside scope fails with
// ErrInvalidInputContext (spec §4.5, §4.7).
func Input(scope *render.Scope, completer input.Completer, suggestionColor ansicode.Color) (*input.Editor, error) {
	sec := getCurrentRenderSection()
	if sec == nil || scope != sec.activeMainScope {
		return nil, ErrInvalidInputContext
	}
	if !sec.claimInputCall() {
		return nil, ErrInvalidInputContext
	}
	ed := sec.editorFor(completer)
	ed.Render(scope, suggestionColor)
	return ed, nil
}

// RunUntilInputEntered waits for the section's input widget to be
// committed via ENTER (i.e. for the section's internal enter handler,
// wired to Signal, to run) and returns its text. Returns
// ErrInvalidInputContext if Input was never called during this section's
// render pass.
func (r *Run) RunUntilInputEntered() (string, error) {
	r.WaitForSignal()
	ed := r.sec.currentEditor()
	if ed == nil {
		return "", ErrInvalidInputContext
	}
	return ed.Text, nil
}

func (r *Run) dispatchKeys() {
	ch := r.sec.session.subscribeKeys()
	defer r.sec.session.unsubscribeKeys(ch)
	for {
		select {
		case k, ok := <-ch:
			if !ok {
				return
			}
			r.sec.dispatchKey(k)
		case <-r.ctx.Done():
			return
		}
	}
}
