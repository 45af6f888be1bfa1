package reconcile

import (
	"github.com/vango-dev/loom/pkg/element"
	"github.com/vango-dev/loom/pkg/fiber"
)

// Root owns the committed "current" tree for one mount point. Container is
// the opaque host handle the commit phase renders into; the engine never
// inspects it.
type Root struct {
	Current   *fiber.Fiber
	Container any

	mode  fiber.Mode
	clock fiber.Clock
}

// RootOption configures a Root.
type RootOption func(*Root)

// WithMode sets the mode bits inherited by every fiber in the tree.
func WithMode(mode fiber.Mode) RootOption {
	return func(r *Root) {
		r.mode = mode
	}
}

// NewRoot creates a root with an empty committed tree.
func NewRoot(container any, opts ...RootOption) *Root {
	r := &Root{Container: container}
	for _, opt := range opts {
		opt(r)
	}
	r.Current = fiber.NewRoot(r.mode)
	r.Current.Instance = r
	return r
}

// NextDeadline issues the deadline for a newly requested asynchronous pass.
func (r *Root) NextDeadline() fiber.Deadline {
	return r.clock.Next()
}

// Mode returns the root's mode bits.
func (r *Root) Mode() fiber.Mode {
	return r.mode
}

// Commit finalizes a completed pass: the finished work-in-progress tree
// becomes the committed current tree. The caller is expected to have applied
// res.Effects to the host first. Committing does not touch fiber pairings;
// the displaced generation is recycled by the next pass.
func (r *Root) Commit(res *Result) {
	if res == nil || res.Finished == nil {
		return
	}
	r.Current = res.Finished
}

// ScheduleUpdate enqueues a state-transition request on f and bumps the
// deadlines on the path to the root so a later pass knows the subtree has
// due work. Both generations of each ancestor are bumped; the walk follows
// committed parent links.
func (r *Root) ScheduleUpdate(f *fiber.Fiber, payload any, deadline fiber.Deadline) {
	if f.Queue == nil {
		f.Queue = fiber.NewUpdateQueue(f.MemoizedState)
	}
	f.Queue.Append(&fiber.StateUpdate{Payload: payload, Deadline: deadline})

	f.Deadline = fiber.Min(f.Deadline, deadline)
	if alt := f.Alternate(); alt != nil {
		alt.Deadline = fiber.Min(alt.Deadline, deadline)
	}
	for p := f.Return; p != nil; p = p.Return {
		p.ChildDeadline = fiber.Min(p.ChildDeadline, deadline)
		if alt := p.Alternate(); alt != nil {
			alt.ChildDeadline = fiber.Min(alt.ChildDeadline, deadline)
		}
	}
}

// enqueue records el as the root's next description. Passes pick it up by
// processing the root's update queue.
func (r *Root) enqueue(el *element.Element, deadline fiber.Deadline) {
	r.Current.Queue.Append(&fiber.StateUpdate{Payload: el, Deadline: deadline})
}
