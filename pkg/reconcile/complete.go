package reconcile

import (
	"github.com/vango-dev/loom/pkg/element"
	"github.com/vango-dev/loom/pkg/fiber"
)

// HostInstance is the opaque platform handle owned by a host fiber. The
// engine only creates it; the external commit phase is what binds it to a
// real output target.
type HostInstance struct {
	Tag string
}

// completeUnitOfWork completes wip and walks upward: every fiber whose
// children have all been processed is completed in strict post-order, its
// accumulated descendant-effect list is spliced onto its parent's, and the
// fiber itself is appended after its descendants when its own change tag is
// non-empty. The walk stops at the first unprocessed sibling, which becomes
// the next unit; reaching the root finishes the pass.
func (r *Reconciler) completeUnitOfWork(wip *fiber.Fiber) *fiber.Fiber {
	for {
		current := wip.Alternate()
		parent := wip.Return

		r.completeWork(current, wip)

		// This fiber's own work is done; only requests deferred past the
		// pass deadline keep it urgent.
		wip.Deadline = wip.Queue.MinDeadline()
		resetChildDeadline(wip)

		if parent == nil {
			// The root's list is its accumulated descendant list plus the
			// root itself if it changed.
			if wip.Flags != fiber.NoFlags {
				wip.AppendEffect(wip)
			}
			r.finished = wip
			return nil
		}

		parent.SpliceEffects(wip)
		if wip.Flags != fiber.NoFlags {
			parent.AppendEffect(wip)
		}

		if wip.Sibling != nil {
			return wip.Sibling
		}
		wip = parent
	}
}

// completeWork performs per-kind completion for one fiber.
func (r *Reconciler) completeWork(current, wip *fiber.Fiber) {
	switch wip.Kind {
	case fiber.KindText:
		if current == nil {
			return
		}
		oldText, _ := current.MemoizedProps.(string)
		newText, _ := wip.PendingProps.(string)
		if oldText != newText {
			wip.Flags.Set(fiber.Update)
		}

	case fiber.KindHost:
		el := pendingElement(wip)
		if current == nil {
			// First generation: the fiber takes exclusive ownership of its
			// platform handle.
			tag, _ := wip.Type.(string)
			wip.Instance = &HostInstance{Tag: tag}
			return
		}
		prev, ok := current.MemoizedProps.(*element.Element)
		if !ok || propsChanged(prev.Props, el.Props) {
			wip.Flags.Set(fiber.Update)
		}

	case fiber.KindContextProvider:
		pt := wip.Type.(*element.ProviderType)
		r.popProvider(pt.Context)
	}
}

// resetChildDeadline recomputes the most urgent deadline remaining among
// wip's direct children and their subtrees.
func resetChildDeadline(wip *fiber.Fiber) {
	d := fiber.None
	for c := wip.Child; c != nil; c = c.Sibling {
		d = fiber.Min(d, fiber.Min(c.Deadline, c.ChildDeadline))
	}
	wip.ChildDeadline = d
}
