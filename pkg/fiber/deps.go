package fiber

import "github.com/vango-dev/loom/pkg/element"

// ContextDependency records that a fiber read one context during its last
// render.
type ContextDependency struct {
	Context *element.Context
	Next    *ContextDependency
}

// Dependencies tracks the contexts a fiber read, plus the deadline at which
// the reads happened. The structure is deep-copied when a pairing is
// recycled so that mutating it during a pass cannot corrupt the previous
// generation's copy.
type Dependencies struct {
	Deadline     Deadline
	FirstContext *ContextDependency
}

// Clone returns a deep, independent copy.
func (d *Dependencies) Clone() *Dependencies {
	if d == nil {
		return nil
	}
	clone := &Dependencies{Deadline: d.Deadline}
	var tail *ContextDependency
	for dep := d.FirstContext; dep != nil; dep = dep.Next {
		c := &ContextDependency{Context: dep.Context}
		if tail == nil {
			clone.FirstContext = c
		} else {
			tail.Next = c
		}
		tail = c
	}
	return clone
}

// Reads reports whether ctx is among the recorded reads.
func (d *Dependencies) Reads(ctx *element.Context) bool {
	if d == nil {
		return false
	}
	for dep := d.FirstContext; dep != nil; dep = dep.Next {
		if dep.Context == ctx {
			return true
		}
	}
	return false
}
