package fiber

import (
	"math"
	"sync/atomic"
)

// Deadline is a comparable priority marker for a unit of work: lower values
// are more urgent. Sync is the distinguished most-urgent value and marks
// uninterruptible work. None means no work is pending; it compares after
// every real deadline so Min composes naturally.
//
// Values carry no wall-clock meaning. Asynchronous passes draw monotonically
// increasing counter values from a Clock, so earlier-requested work is more
// urgent than later-requested work.
type Deadline uint64

const (
	Sync Deadline = 0
	None Deadline = math.MaxUint64
)

// Before reports whether d is strictly more urgent than other.
func (d Deadline) Before(other Deadline) bool {
	return d < other
}

// Due reports whether work at deadline d must be processed in a pass running
// at passDeadline.
func (d Deadline) Due(passDeadline Deadline) bool {
	return d <= passDeadline
}

// Min returns the more urgent of two deadlines.
func Min(a, b Deadline) Deadline {
	if a < b {
		return a
	}
	return b
}

// Clock issues monotonically increasing deadlines for asynchronous passes.
// The zero value is ready to use; the first value issued is 1 so Sync is
// never handed out.
type Clock struct {
	last atomic.Uint64
}

// Next returns the next deadline.
func (c *Clock) Next() Deadline {
	return Deadline(c.last.Add(1))
}
