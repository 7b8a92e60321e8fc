// Package mabiki provides debounce and throttle wrappers for function calls,
// i.e. ways to rate-limit how often a function is invoked based on the
// wall-clock time elapsed between calls.
//
// Debouncing ensures a function only runs once a burst of calls has settled,
// which is useful when calls may be triggered rapidly (user input, file
// system events) but the underlying operation is expensive and only the most
// recent call matters. Throttling ensures a function runs at most once per
// interval, while a burst is still in progress.
//
// Both wrappers carry a payload from the call site to the wrapped function
// and hand the function's latest result back to callers, so they can stand
// in for the function itself rather than only for side effects.
package mabiki

import (
	"time"
)

// Debounce returns a Debouncer that delays invoking fn until wait has
// elapsed since the last call to Call. Only the payload of the most recent
// call is passed to fn; earlier payloads from the same burst are discarded.
//
// By default fn is invoked on the trailing edge of a burst only. Use
// WithLeading to also invoke at the start of a burst, and WithMaxWait to
// bound how long an invocation can be deferred while calls keep arriving.
//
// A negative wait is treated as zero. A zero wait still defers the trailing
// invocation through the timer backend rather than invoking inline, so a
// single call with default options never invokes synchronously.
//
// Debounce panics if fn is nil. fn must not call back into the returned
// Debouncer; see the Debouncer documentation.
func Debounce[A, R any](
	wait time.Duration,
	fn func(A) R,
	opts ...Option,
) *Debouncer[A, R] {
	conf := config{trailing: true}
	for _, opt := range opts {
		opt(&conf)
	}

	return newDebouncer(wait, fn, conf)
}

// Throttle returns a Debouncer that invokes fn at most once per wait while
// calls keep arriving. It is the same engine as Debounce with leading and
// trailing invocation both enabled by default and the max wait forced equal
// to wait, which guarantees periodic flushing during a continuous burst.
//
// Use WithoutLeading or WithoutTrailing to drop either edge. WithMaxWait is
// ignored, as throttling is defined by maxWait == wait.
//
// Throttle panics if fn is nil. fn must not call back into the returned
// Debouncer; see the Debouncer documentation.
func Throttle[A, R any](
	wait time.Duration,
	fn func(A) R,
	opts ...Option,
) *Debouncer[A, R] {
	conf := config{leading: true, trailing: true}
	for _, opt := range opts {
		opt(&conf)
	}
	conf.maxWait = wait
	conf.hasMaxWait = true

	return newDebouncer(wait, fn, conf)
}
