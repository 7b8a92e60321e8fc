package mabiki

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Debouncer wraps a function and limits how often it is invoked based on the
// time elapsed between calls. It is the shared engine behind Debounce and
// Throttle; the two only differ in their defaults and in whether a max wait
// is forced.
//
// Each call carries a payload of type A and the wrapped function produces a
// result of type R. The payload of the most recent call always wins: a call
// arriving while an invocation is pending overwrites the pending payload, it
// is never queued behind it. The last produced result is retained and
// handed back to callers whose call did not itself trigger an invocation.
//
// All methods are safe for concurrent use. The wrapped function runs while
// the Debouncer's internal state is locked, so it must not call back into
// its own wrapper; a reentrant call deadlocks.
type Debouncer[A, R any] struct {
	// Configuration
	fn         func(A) R
	wait       time.Duration
	maxWait    time.Duration
	hasMaxWait bool
	leading    bool
	trailing   bool
	clock      clockwork.Clock

	// State
	mu          sync.Mutex
	timer       clockwork.Timer
	timerActive bool
	pendingArg  A
	pendingSet  bool
	result      R
	lastCall    time.Time
	lastInvoke  time.Time
}

func newDebouncer[A, R any](
	wait time.Duration,
	fn func(A) R,
	conf config,
) *Debouncer[A, R] {
	if fn == nil {
		panic("mabiki: nil function")
	}

	if wait < 0 {
		wait = 0
	}

	// A max wait below wait could never fire after the quiet-period timer,
	// so it is raised to wait instead.
	if conf.hasMaxWait && conf.maxWait < wait {
		conf.maxWait = wait
	}

	if conf.clock == nil {
		conf.clock = clockwork.NewRealClock()
	}

	d := &Debouncer[A, R]{
		fn:         fn,
		wait:       wait,
		maxWait:    conf.maxWait,
		hasMaxWait: conf.hasMaxWait,
		leading:    conf.leading,
		trailing:   conf.trailing,
		clock:      conf.clock,
	}
	d.timer = stoppedTimer(d.clock, d.expire)

	return d
}

// Call records a call with the given payload and returns the last known
// result of the wrapped function, which may be stale: unless this call
// lands on a leading edge or past the max wait boundary, the invocation it
// leads to happens later, on the trailing edge of the burst.
//
// Before the wrapped function has been invoked for the first time, Call
// returns the zero value of R.
func (d *Debouncer[A, R]) Call(arg A) R {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	invokeNow := d.shouldInvoke(now)

	d.pendingArg = arg
	d.pendingSet = true
	d.lastCall = now

	if invokeNow {
		if !d.timerActive {
			return d.leadingEdge(now)
		}

		if d.hasMaxWait {
			// Calls are arriving faster than wait and the max wait boundary
			// has passed: keep the timer moving and invoke immediately so
			// a continuous burst still flushes periodically.
			d.startTimer(d.wait)

			return d.invoke(now)
		}
	}

	if !d.timerActive {
		d.startTimer(d.wait)
	}

	return d.result
}

// Cancel discards any pending invocation and forgets all call tracking, so
// that a subsequent call is treated as the start of a fresh burst. The last
// result is kept. Calling Cancel with nothing pending is a no-op.
func (d *Debouncer[A, R]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.timer.Stop()
	d.timerActive = false

	var zero A
	d.pendingArg = zero
	d.pendingSet = false
	d.lastCall = time.Time{}
	d.lastInvoke = time.Time{}
}

// Flush settles a pending trailing edge immediately, as if its timer had
// just fired, and returns the result. With nothing pending it returns the
// last known result unchanged, making it safe to call at shutdown or
// teardown boundaries to force deterministic settlement.
func (d *Debouncer[A, R]) Flush() R {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.timerActive {
		return d.result
	}

	return d.trailingEdge(d.clock.Now())
}

// Pending reports whether an invocation is currently pending, i.e. whether a
// burst is in progress.
func (d *Debouncer[A, R]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.timerActive
}

// shouldInvoke reports whether a call or timer expiry at time now is
// allowed to invoke the wrapped function: either this is the first call
// since creation or Cancel, the quiet period has elapsed, the clock has
// jumped backward, or the max wait boundary has been reached.
func (d *Debouncer[A, R]) shouldInvoke(now time.Time) bool {
	if d.lastCall.IsZero() {
		return true
	}

	sinceCall := now.Sub(d.lastCall)
	if sinceCall >= d.wait || sinceCall < 0 {
		return true
	}

	return d.hasMaxWait && now.Sub(d.lastInvoke) >= d.maxWait
}

// remainingWait returns how much longer the timer has to run before the next
// possible trailing edge, counted from now.
func (d *Debouncer[A, R]) remainingWait(now time.Time) time.Duration {
	remaining := d.wait - now.Sub(d.lastCall)

	if d.hasMaxWait {
		if m := d.maxWait - now.Sub(d.lastInvoke); m < remaining {
			remaining = m
		}
	}

	return remaining
}

// leadingEdge starts a new burst. The invoke time is recorded even when
// leading invocation is disabled, so that maxWait is measured from the start
// of the burst. It should only be called while the mutex is already locked.
func (d *Debouncer[A, R]) leadingEdge(now time.Time) R {
	d.lastInvoke = now
	d.startTimer(d.wait)

	if d.leading {
		return d.invoke(now)
	}

	return d.result
}

// trailingEdge settles a burst: it releases the timer slot and, if trailing
// invocation is enabled and a payload is still pending, invokes with it.
// Otherwise the pending payload is dropped and the previous result stands.
// It should only be called while the mutex is already locked.
func (d *Debouncer[A, R]) trailingEdge(now time.Time) R {
	d.timer.Stop()
	d.timerActive = false

	if d.trailing && d.pendingSet {
		return d.invoke(now)
	}

	var zero A
	d.pendingArg = zero
	d.pendingSet = false

	return d.result
}

// expire is called when the timer fires. If a more recent call has pushed
// the deadline out, the timer is rescheduled for the remaining wait instead
// of invoking.
func (d *Debouncer[A, R]) expire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	// The timer slot may have been released by Cancel or Flush after this
	// fire was already in flight.
	if !d.timerActive {
		return
	}

	now := d.clock.Now()
	if d.shouldInvoke(now) {
		d.trailingEdge(now)

		return
	}

	d.timer.Reset(d.remainingWait(now))
}

// startTimer claims the timer slot and (re)schedules it to fire after delay.
// It should only be called while the mutex is already locked.
func (d *Debouncer[A, R]) startTimer(delay time.Duration) {
	d.timer.Reset(delay)
	d.timerActive = true
}

// invoke consumes the pending payload and runs the wrapped function with it,
// retaining its result. All bookkeeping completes before the function runs,
// so a panicking function propagates without leaving the state inconsistent;
// in that case the previous result is kept. It should only be called while
// the mutex is already locked.
func (d *Debouncer[A, R]) invoke(now time.Time) R {
	arg := d.pendingArg

	var zero A
	d.pendingArg = zero
	d.pendingSet = false
	d.lastInvoke = now

	d.result = d.fn(arg)

	return d.result
}
