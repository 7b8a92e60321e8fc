package mabiki

import (
	"time"

	"github.com/jonboulle/clockwork"
)

const longDelay = 24 * time.Hour

// stoppedTimer returns a stopped clockwork.Timer created with AfterFunc on
// the given clock. The given function is not called until the timer is
// restarted with Reset.
func stoppedTimer(clock clockwork.Clock, f func()) clockwork.Timer {
	t := clock.AfterFunc(longDelay, f)
	t.Stop()

	return t
}
