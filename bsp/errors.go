package bsp

import (
	"errors"
	"fmt"
)

// Sentinel error kinds surfaced by the core (spec.md §7). Fatal kinds abort
// the build; non-fatal kinds are counted into a Report and the build
// continues with the degenerate recovery spec.md describes.
var (
	// ErrDegenerateLevel: zero linedefs or all coincident vertices. Fatal.
	ErrDegenerateLevel = errors.New("bsp: degenerate level")
	// ErrUnclosableSubsector: a GL subsector could not be closed into a
	// polygon after the miniseg pass. Non-fatal; the degenerate closure of
	// §4.8 is applied and the build continues.
	ErrUnclosableSubsector = errors.New("bsp: unclosable subsector")
	// ErrSplitterOverflow: the chooser exhausted every candidate for a
	// non-convex working set. Fatal; should be unreachable if the
	// two-pass fallback (§4.5) is correct.
	ErrSplitterOverflow = errors.New("bsp: splitter search exhausted")
	// ErrNumericAbort: an intercept denominator underflowed below ε even
	// after widening SIDE_EPSILON once. Fatal.
	ErrNumericAbort = errors.New("bsp: numeric abort computing intercept")
)

// Report counts non-fatal error kinds encountered during a build, per
// spec.md §7's "counted and reported once per build" recovery policy.
type Report struct {
	UnclosableSubsectors int
	DroppedZeroLengthSegs int
	WidenedEpsilonRetries int
}

// BuildError wraps a fatal error kind with the context that triggered it.
type BuildError struct {
	Kind error
	Msg  string
}

func (e *BuildError) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *BuildError) Unwrap() error {
	return e.Kind
}

func fatalf(kind error, format string, args ...any) *BuildError {
	return &BuildError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
