package reconcile

import (
	"github.com/vango-dev/loom/pkg/element"
	"github.com/vango-dev/loom/pkg/fiber"
)

// reconcileSingle reconciles a single rendered child (possibly nil).
func (r *Reconciler) reconcileSingle(wip *fiber.Fiber, el *element.Element) (*fiber.Fiber, error) {
	if el == nil {
		return r.reconcileChildren(wip, nil)
	}
	return r.reconcileChildren(wip, []*element.Element{el})
}

// reconcileChildren diffs the previous generation's children of wip against
// newChildren, producing the linked work-in-progress child list. Matching is
// by key when present, by position otherwise. Reused positions recycle their
// pairing; moved or new positions are tagged Placement; vanished positions
// are tagged Deletion and appended to wip's effect list immediately so the
// commit phase sees removals alongside the subtree they left. A persisting
// key is never tagged Deletion.
func (r *Reconciler) reconcileChildren(wip *fiber.Fiber, newChildren []*element.Element) (*fiber.Fiber, error) {
	var currentFirst *fiber.Fiber
	if current := wip.Alternate(); current != nil {
		currentFirst = current.Child
	}

	// Index the previous children.
	var ordered []*fiber.Fiber
	byKey := make(map[string]*fiber.Fiber)
	for c := currentFirst; c != nil; c = c.Sibling {
		ordered = append(ordered, c)
		if c.Key != "" {
			byKey[c.Key] = c
		}
	}

	matched := make(map[*fiber.Fiber]bool)
	var first, prev *fiber.Fiber

	idx := 0
	for _, el := range newChildren {
		if el == nil {
			continue
		}

		var match *fiber.Fiber
		if el.Key != "" {
			match = byKey[el.Key]
		} else if idx < len(ordered) && ordered[idx].Key == "" {
			match = ordered[idx]
		}

		var child *fiber.Fiber
		switch {
		case match != nil && describesFiber(match, el):
			matched[match] = true
			recycled := match.Alternate() != nil
			var err error
			child, err = fiber.WorkInProgress(match, pendingFor(match.Kind, el))
			if err != nil {
				return nil, err
			}
			if match.Index != idx {
				child.Flags.Set(fiber.Placement)
			}
			if r.metrics != nil {
				if recycled {
					r.metrics.fibersRecycled.Inc()
				} else {
					r.metrics.fibersAllocated.Inc()
				}
			}
		default:
			if match != nil {
				// Same position or key, incompatible definition: replace.
				matched[match] = true
				r.deleteChild(wip, match)
			}
			var err error
			child, err = fiber.FromElement(el, wip, wip.Mode, r.deadline)
			if err != nil {
				return nil, err
			}
			child.Flags.Set(fiber.Placement)
			if r.metrics != nil {
				r.metrics.fibersAllocated.Inc()
			}
		}

		if el.Props != nil {
			if ref, ok := el.Props["ref"]; ok {
				child.Ref = ref
			}
		}
		child.Index = idx
		child.Return = wip
		child.Sibling = nil
		if prev == nil {
			first = child
		} else {
			prev.Sibling = child
		}
		prev = child
		idx++
	}

	for _, c := range ordered {
		if !matched[c] {
			r.deleteChild(wip, c)
		}
	}

	wip.Child = first
	return first, nil
}

// deleteChild tags a previous-generation child for removal and queues it on
// wip's effect list. Deleted fibers have no new-generation counterpart; they
// are reachable only through the effect list.
func (r *Reconciler) deleteChild(wip *fiber.Fiber, child *fiber.Fiber) {
	child.Flags = fiber.Deletion
	wip.AppendEffect(child)
}

// describesFiber reports whether el is a compatible new description for the
// logical position prev occupies, i.e. the pairing can be recycled rather
// than replaced.
func describesFiber(prev *fiber.Fiber, el *element.Element) bool {
	switch el.Type {
	case element.MarkerText:
		return prev.Kind == fiber.KindText
	case element.MarkerFragment:
		return prev.Kind == fiber.KindFragment
	}
	if _, ok := renderFunc(el.Type); ok {
		// Indeterminate resolves to Function; both recycle against either.
		if prev.Kind != fiber.KindFunction && prev.Kind != fiber.KindIndeterminate {
			return false
		}
	}
	return sameType(prev.ElementType, el.Type)
}

// pendingFor shapes the pending input for a recycled fiber the same way the
// classifier shapes it for a fresh one.
func pendingFor(kind fiber.Kind, el *element.Element) any {
	switch kind {
	case fiber.KindText:
		return el.Text
	case fiber.KindFragment:
		return el.Children
	default:
		return el
	}
}
