package kotter

import (
	"context"
	"sync"
	"time"

	"github.com/kottergo/kotter/ansicode"
	"github.com/kottergo/kotter/data"
	"github.com/kottergo/kotter/input"
	"github.com/kottergo/kotter/keys"
	"github.com/kottergo/kotter/render"
	"github.com/kottergo/kotter/textarea"
	"github.com/kottergo/kotter/timer"
)

// RenderFunc is a section's render block: a pure function of ambient state
// that appends commands to scope (spec §4.1). It must not suspend.
type RenderFunc func(scope *render.Scope)

// RunFunc is a section's optional background run block (spec §4.5). It may
// use r's cooperative-suspension primitives and spawn child tasks via r.Go.
type RunFunc func(r *Run)

// Section binds a RenderFunc to the active-region slot: it owns the render
// lock, rerender coalescing, the aside queue, and finishing hooks (spec
// §4.2, §4.4-§4.6).
type Section struct {
	session  *Session
	renderFn RenderFunc
	runFn    RunFunc

	// Lifecycle is started on creation and stopped once Run returns (spec
	// §4.5 steps: created here, stopped at step 7).
	Lifecycle *data.Lifecycle

	// jobs is the section's single-threaded FIFO render executor (spec
	// §4.6, §5's "single-threaded section executor").
	jobs         chan func()
	executorDone chan struct{}

	renderMu        sync.Mutex
	renderRequested bool

	areaMu   sync.Mutex
	lastArea *textarea.TextArea

	asideMu sync.Mutex
	asides  []*textarea.TextArea

	// activeMainScope identifies the current render pass's top-level Scope,
	// so Input can reject calls made from an offscreen/aside child scope
	// (spec §4.5's InvalidInputContext). Set and cleared around renderFn in
	// doRenderPass, which runs on the executor goroutine and, for the initial
	// pass, on Run's own goroutine; it is not guarded by a lock.
	activeMainScope *render.Scope

	inputMu             sync.Mutex
	inputCalledThisPass bool

	editorMu sync.Mutex
	editor   *input.Editor

	keyMu        sync.Mutex
	onKeyPressed []func(keys.Key)

	finishingMu    sync.Mutex
	finishingHooks []func()

	consumedMu sync.Mutex
	consumed   bool

	run *Run
}

func newSection(session *Session, renderFn RenderFunc, runFn RunFunc) *Section {
	sec := &Section{
		session:      session,
		renderFn:     renderFn,
		runFn:        runFn,
		Lifecycle:    data.NewLifecycle("section", session.Lifecycle),
		jobs:         make(chan func(), 1),
		executorDone: make(chan struct{}),
	}
	go sec.executorLoop()
	return sec
}

func (sec *Section) executorLoop() {
	for {
		select {
		case job := <-sec.jobs:
			job()
		case <-sec.executorDone:
			return
		}
	}
}

// RequestRerender coalesces N requests arriving before the next pass starts
// into exactly one additional pass (spec §4.6).
func (sec *Section) RequestRerender() {
	sec.renderMu.Lock()
	if sec.renderRequested {
		sec.renderMu.Unlock()
		return
	}
	sec.renderRequested = true
	sec.renderMu.Unlock()

	select {
	case sec.jobs <- sec.runQueuedRender:
	default:
		// A job is already queued (should not happen given the flag check
		// above, but stays a no-op rather than blocking if it somehow does).
	}
}

func (sec *Section) runQueuedRender() {
	sec.renderMu.Lock()
	sec.renderRequested = false
	sec.renderMu.Unlock()
	sec.doRenderPass()
}

// requestRerenderIfActive is LiveVar's write-time hook: it only schedules a
// rerender if sec is still the session's ActiveSection (spec §3's LiveVar).
func (sec *Section) requestRerenderIfActive() {
	if sec.session.isActive(sec) {
		sec.RequestRerender()
	}
}

// drainRerenders blocks until any render job already queued (or in flight)
// completes, by enqueueing a barrier behind it on the same FIFO channel
// (spec §4.5 step 5/6: "drain any remaining rerenders").
func (sec *Section) drainRerenders() {
	done := make(chan struct{})
	sec.jobs <- func() { close(done) }
	<-done
}

func (sec *Section) doRenderPass() {
	passLifecycle := data.NewLifecycle("render", sec.Lifecycle)
	defer sec.session.store.StopLifecycle(passLifecycle)

	setCurrentRenderSection(sec)
	defer setCurrentRenderSection(nil)

	sec.inputMu.Lock()
	sec.inputCalledThisPass = false
	sec.inputMu.Unlock()

	scope := render.New(sec.session.profile, sec)
	sec.activeMainScope = scope
	func() {
		defer func() {
			if r := recover(); r != nil {
				// spec §4.5/§7: render-block panics are swallowed; the
				// partial TextArea built up to the panic point still
				// flushes with its trailing SGR reset.
				sec.session.logf("kotter: render block panicked, flushing partial output: %v", r)
			}
		}()
		sec.renderFn(scope)
	}()
	sec.activeMainScope = nil

	sec.flush(scope.Area())
}

// flush emits the in-place redraw sequence: clear the previous area, insert
// any queued aside lines, then the new TextArea (spec §4.2, §4.4).
func (sec *Section) flush(area *textarea.TextArea) {
	var buf []byte

	sec.areaMu.Lock()
	prev := sec.lastArea
	sec.lastArea = area
	sec.areaMu.Unlock()

	if prev != nil && !prev.IsEmpty() {
		lengths := prev.LineLengths()
		l := len(lengths)
		// The trailing newline from the previous pass leaves the cursor one
		// line below the block; move up onto it before the clear loop
		// proper starts (spec §4.2).
		buf = append(buf, ansicode.CursorPrevLine...)
		for i := 0; i < l; i++ {
			buf = append(buf, ansicode.CarriageReturn...)
			buf = append(buf, ansicode.EraseToLineEnd...)
			if i < l-1 {
				buf = append(buf, ansicode.CursorPrevLine...)
			}
		}
	}

	sec.asideMu.Lock()
	asides := sec.asides
	sec.asides = nil
	sec.asideMu.Unlock()
	for _, a := range asides {
		buf = append(buf, a.Serialize(sec.session.profile)...)
	}

	buf = append(buf, area.Serialize(sec.session.profile)...)

	if err := sec.session.term.Write(string(buf)); err != nil {
		sec.session.logf("kotter: write to terminal failed: %v", err)
	}
}

// EnqueueAside implements render.AsideSink: it appends ta to the section's
// ordered aside list, flushed ahead of the next redraw (spec §4.4).
func (sec *Section) EnqueueAside(ta *textarea.TextArea) {
	sec.asideMu.Lock()
	sec.asides = append(sec.asides, ta)
	sec.asideMu.Unlock()
}

// Aside renders renderFn into a standalone scope and enqueues the result as
// a one-shot history line, ahead of the section's next redraw (spec §4.4:
// "aside { render } during the run block constructs a Renderer ... and
// appends it"). Unlike render.Scope's own Aside method (for calling aside
// from inside an active render pass), this is the entry point used from
// the run block, where no outer Scope exists yet.
func (sec *Section) Aside(renderFn func(*render.Scope)) {
	child := render.New(sec.session.profile, nil)
	renderFn(child)
	sec.EnqueueAside(child.Area())
}

// OnKeyPressed registers fn to run for every key arriving while this
// section is active (spec §2's "dispatches onKeyPressed").
func (sec *Section) OnKeyPressed(fn func(keys.Key)) {
	sec.keyMu.Lock()
	sec.onKeyPressed = append(sec.onKeyPressed, fn)
	sec.keyMu.Unlock()
}

// OnFinishing registers a hook run after the run block returns and pending
// rerenders drain, but before teardown; it may request one final rerender
// (spec §4.5 step 6).
func (sec *Section) OnFinishing(fn func()) {
	sec.finishingMu.Lock()
	sec.finishingHooks = append(sec.finishingHooks, fn)
	sec.finishingMu.Unlock()
}

func (sec *Section) dispatchKey(k keys.Key) {
	sec.editorMu.Lock()
	ed := sec.editor
	sec.editorMu.Unlock()
	if ed != nil && ed.HandleKey(k) {
		sec.RequestRerender()
	}

	sec.keyMu.Lock()
	hooks := append([]func(keys.Key){}, sec.onKeyPressed...)
	sec.keyMu.Unlock()
	for _, h := range hooks {
		h(k)
	}
}

// claimInputCall enforces "at most one input() call per render pass" (spec
// §4.5/§7's InvalidInputContext).
func (sec *Section) claimInputCall() bool {
	sec.inputMu.Lock()
	defer sec.inputMu.Unlock()
	if sec.inputCalledThisPass {
		return false
	}
	sec.inputCalledThisPass = true
	return true
}

// editorFor returns this section's persistent input widget, creating it (and
// wiring its blink timer and ENTER->Run.Signal hook) on first call.
func (sec *Section) editorFor(completer input.Completer) *input.Editor {
	sec.editorMu.Lock()
	defer sec.editorMu.Unlock()
	if sec.editor != nil {
		return sec.editor
	}

	ed := input.NewEditor(completer)
	ed.OnEnter(func() {
		if sec.run != nil {
			sec.run.Signal()
		}
	})
	sec.editor = ed

	if sec.run != nil {
		sec.run.timers.AddTimer(16*time.Millisecond, true, "", func(*timer.Scope) {
			if ed.Tick(16) {
				sec.RequestRerender()
			}
		})
	}
	return ed
}

func (sec *Section) currentEditor() *input.Editor {
	sec.editorMu.Lock()
	defer sec.editorMu.Unlock()
	return sec.editor
}

// Run executes this section per spec §4.5: stake ActiveSection, start
// Section.Run.Lifecycle, perform the initial synchronous render, spawn the
// run block (if any) and wait for it, drain rerenders, invoke finishing
// hooks, then tear down. Returns ErrSectionConsumed on a second call, or
// ErrMultipleActiveSections if another section is currently active.
func (sec *Section) Run(ctx context.Context) error {
	sec.consumedMu.Lock()
	if sec.consumed {
		sec.consumedMu.Unlock()
		return ErrSectionConsumed
	}
	sec.consumed = true
	sec.consumedMu.Unlock()

	if err := sec.session.tryActivate(sec); err != nil {
		return err
	}

	runLifecycle := data.NewLifecycle("run", sec.Lifecycle)
	timers := timer.NewManager()
	run := newRun(sec, ctx, timers, runLifecycle)
	sec.run = run

	sec.doRenderPass() // step 3: initial synchronous render

	var runPanic any
	if sec.runFn != nil {
		done := make(chan struct{})
		go func() {
			defer close(done)
			defer func() {
				if r := recover(); r != nil {
					runPanic = r
				}
			}()
			sec.runFn(run)
		}()
		<-done // step 4: wait for the run block to return
	}

	sec.drainRerenders() // step 5

	timers.Dispose() // discard all timers before the finishing hooks run

	sec.finishingMu.Lock()
	hooks := append([]func(){}, sec.finishingHooks...)
	sec.finishingMu.Unlock()
	for _, h := range hooks {
		h()
	}
	sec.drainRerenders() // a finishing hook's own rerender is allowed

	run.teardown()
	close(sec.executorDone)
	sec.session.store.StopLifecycle(runLifecycle)
	sec.session.clearActive(sec)
	sec.session.store.StopLifecycle(sec.Lifecycle)

	if runPanic != nil {
		// spec §4.5/§7: "Exceptions inside the run block propagate out of
		// run" — modeled as a Go panic since there is no user code between
		// here and the original call site to hand an error to.
		panic(runPanic)
	}
	return nil
}
