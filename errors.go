package kotter

import "errors"

// Sentinel errors for the fatal error kinds spec §7 enumerates that are not
// already represented by a more specific sentinel elsewhere (data.
// ErrLifecycleNotActive, the false return from timer.Manager.AddTimer for
// InvalidTimer).
var (
	// ErrNoInteractiveTerminal is returned by NewSession when the backend
	// fails to establish a readable input stream.
	ErrNoInteractiveTerminal = errors.New("kotter: failed to initialize terminal")

	// ErrMultipleActiveSections is returned by Section.Run when another
	// section is already active in the session.
	ErrMultipleActiveSections = errors.New("kotter: a section is already active in this session")

	// ErrSectionConsumed is returned by Section.Run on a section that has
	// already been run once.
	ErrSectionConsumed = errors.New("kotter: section has already been run")

	// ErrInvalidInputContext is returned by Input when called outside the
	// current render pass's main scope, more than once per pass, or from an
	// aside/offscreen scope.
	ErrInvalidInputContext = errors.New("kotter: input() called outside a render pass, twice in one pass, or from an aside/offscreen context")
)
