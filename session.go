// Package kotter is the Section runtime: the reactive state layer
// (LiveVar/LiveList/LiveMap), the render model, and the Session/Section/Run
// types that tie the leaf packages (ansicode, textarea, render, data, keys,
// timer, input, terminal) into the single-active-section model spec §1-§5
// describe.
//
// Grounded on the teacher's tea.go program lifecycle (start -> render loop
// -> drain -> teardown) and standard_renderer.go's diff-then-flush pattern,
// reinterpreted around an explicit single ActiveSection slot instead of the
// Elm-architecture Model/Update/View triad.
package kotter

import (
	"fmt"
	"io"
	"sync"

	"github.com/kottergo/kotter/ansicode"
	"github.com/kottergo/kotter/data"
	"github.com/kottergo/kotter/keys"
	"github.com/kottergo/kotter/terminal"
)

// SessionOption configures a Session at construction time. Kotter carries
// no config files (SPEC_FULL.md's ambient-stack decision); every knob is a
// functional option.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	profile  ansicode.Profile
	debugLog io.Writer
}

// WithProfile overrides color-profile auto-detection, e.g. to force
// truecolor in tests against a terminal.Fake.
func WithProfile(p ansicode.Profile) SessionOption {
	return func(c *sessionConfig) { c.profile = p }
}

// WithDebugLog opts into diagnostic logging (render-block panics, write
// failures) written to w. Nil (the default) disables logging entirely.
func WithDebugLog(w io.Writer) SessionOption {
	return func(c *sessionConfig) { c.debugLog = w }
}

// Session is the top-level lifetime: it owns the terminal, the data store,
// the shared key stream, and the single ActiveSection invariant (spec §1,
// §5).
type Session struct {
	term    terminal.Terminal
	profile ansicode.Profile
	debugLog io.Writer

	// Lifecycle is the root of the ConcurrentScopedData forest; every
	// Section's Lifecycle is a child of this one.
	Lifecycle *data.Lifecycle
	store     *data.Store

	keys *keys.Broadcast

	mu     sync.Mutex
	active *Section

	closeOnce sync.Once
}

// NewSession establishes a session over term: starts the background key
// reader and folds it into a shared Key broadcast (spec §4.7), and detects
// (or accepts an overridden) color profile.
func NewSession(term terminal.Terminal, opts ...SessionOption) (*Session, error) {
	cfg := sessionConfig{profile: ansicode.DetectProfile()}
	for _, opt := range opts {
		opt(&cfg)
	}

	codepoints, err := term.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoInteractiveTerminal, err)
	}

	s := &Session{
		term:      term,
		profile:   cfg.profile,
		debugLog:  cfg.debugLog,
		Lifecycle: data.NewLifecycle("session", nil),
		store:     data.NewStore(),
		keys:      keys.NewBroadcast(keys.Translate(codepoints)),
	}
	return s, nil
}

// NewSection creates a section bound to this session (spec §4.5: "A section
// is created by section { render } on a live Session. Creation starts
// Section.Lifecycle."). runFn may be nil for a section with no background
// work.
func (s *Session) NewSection(render RenderFunc, runFn RunFunc) *Section {
	return newSection(s, render, runFn)
}

func (s *Session) logf(format string, args ...any) {
	if s.debugLog == nil {
		return
	}
	fmt.Fprintf(s.debugLog, format+"\n", args...)
}

// tryActivate stakes the ActiveSection slot for sec, failing if one is
// already active (spec §4.5 step 1, §5's "at most one section active").
func (s *Session) tryActivate(sec *Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return ErrMultipleActiveSections
	}
	s.active = sec
	return nil
}

func (s *Session) clearActive(sec *Section) {
	s.mu.Lock()
	if s.active == sec {
		s.active = nil
	}
	s.mu.Unlock()
}

func (s *Session) isActive(sec *Section) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil && s.active == sec
}

func (s *Session) subscribeKeys() chan keys.Key  { return s.keys.Subscribe() }
func (s *Session) unsubscribeKeys(ch chan keys.Key) { s.keys.Unsubscribe(ch) }

// Close stops the session's lifecycle (cascading through every still-active
// section and run) and closes the terminal. Idempotent.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.store.StopLifecycle(s.Lifecycle)
		err = s.term.Close()
	})
	return err
}
