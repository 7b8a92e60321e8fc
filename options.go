package mabiki

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Option is a function that can be used to configure a Debouncer created by
// Debounce or Throttle.
type Option func(*config)

// config collects constructor options before they are validated and copied
// into a Debouncer. Debounce and Throttle seed it with their respective
// defaults.
type config struct {
	leading    bool
	trailing   bool
	maxWait    time.Duration
	hasMaxWait bool
	clock      clockwork.Clock
}

// WithLeading returns an option that causes the wrapped function to be
// invoked immediately on the first call of a burst, before waiting for the
// wait duration.
//
// When only leading is enabled, a burst of calls invokes the function once at
// the start of the burst, and any subsequent calls are absorbed until the
// wait duration has passed since the last call.
//
// This is the default for Throttle.
func WithLeading() Option {
	return func(c *config) {
		c.leading = true
	}
}

// WithoutLeading returns an option that disables invocation on the first
// call of a burst. It is mainly useful with Throttle, where leading is
// enabled by default.
func WithoutLeading() Option {
	return func(c *config) {
		c.leading = false
	}
}

// WithTrailing returns an option that causes the wrapped function to be
// invoked once a burst settles, using the payload of the last call in the
// burst. This is the default for both Debounce and Throttle.
//
// If both leading and trailing are enabled, a burst of two or more calls
// invokes the function at the start of the burst and again after it settles.
// A burst consisting of a single call only invokes once, as the leading
// invocation consumes the pending payload.
func WithTrailing() Option {
	return func(c *config) {
		c.trailing = true
	}
}

// WithoutTrailing returns an option that disables invocation when a burst
// settles. Combined with WithLeading this gives classic "first call wins"
// behavior: the payload of later calls in a burst is discarded.
func WithoutTrailing() Option {
	return func(c *config) {
		c.trailing = false
	}
}

// WithMaxWait returns an option that causes the wrapped function to be
// invoked at least once every maxWait, even if calls keep arriving within
// the wait duration and the quiet period is therefore never reached.
//
// Without a max wait, the wrapped function might never be invoked if calls
// arrive continuously faster than the wait duration.
//
// A maxWait smaller than wait is raised to wait. Throttle ignores this
// option, as it always uses a max wait equal to its wait duration.
func WithMaxWait(maxWait time.Duration) Option {
	return func(c *config) {
		c.maxWait = maxWait
		c.hasMaxWait = true
	}
}

// WithClock returns an option that selects the clock and timer backend used
// by the Debouncer. It defaults to the real system clock, and exists mainly
// so tests can substitute a fake clock. A nil clock leaves the default in
// place.
func WithClock(clock clockwork.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}
