package fiber

// New allocates a first-generation fiber. Callers set the type fields and
// deadline after allocation; the classifier does this for every recognized
// description shape.
func New(kind Kind, pendingProps any, key string, mode Mode) *Fiber {
	return &Fiber{
		Kind:          kind,
		Key:           key,
		PendingProps:  pendingProps,
		Mode:          mode,
		Deadline:      None,
		ChildDeadline: None,
	}
}

// NewRoot allocates the root fiber for a new tree. The root carries an
// update queue so new tree descriptions can be enqueued as state-transition
// requests.
func NewRoot(mode Mode) *Fiber {
	f := New(KindRoot, nil, "", mode)
	f.Queue = NewUpdateQueue(nil)
	return f
}

// WorkInProgress pairs current with a next-generation fiber carrying
// pendingProps.
//
// When no pairing exists yet a fiber is allocated, the stable fields are
// copied across, and the symmetric pairing is established. When a pairing
// already exists that fiber is reused in place: its pending input is
// replaced and its pass-scoped fields (change tag, effect pointers) are
// reset. This recycling bounds allocation to the number of structural
// changes rather than total renders.
//
// Sibling, Index, and other parent-relative fields are intentionally left
// for the parent's own child-reconciliation step to overwrite.
func WorkInProgress(current *Fiber, pendingProps any) (*Fiber, error) {
	if current == nil {
		return nil, newMissingPairing()
	}

	wip := current.alternate
	if wip == nil {
		wip = New(current.Kind, pendingProps, current.Key, current.Mode)
		wip.ElementType = current.ElementType
		wip.Type = current.Type
		wip.Instance = current.Instance
		pair(current, wip)
	} else {
		wip.PendingProps = pendingProps
		wip.Flags = NoFlags
		wip.ResetEffects()
		// Kind may have resolved (Indeterminate -> Function) since the
		// recycled fiber was last used.
		wip.Kind = current.Kind
		wip.Type = current.Type
	}

	wip.Deadline = current.Deadline
	wip.ChildDeadline = current.ChildDeadline
	wip.Child = current.Child
	wip.MemoizedProps = current.MemoizedProps
	wip.MemoizedState = current.MemoizedState
	// The queue is cloned, not shared: processing drains the queue, and a
	// discarded pass must not consume requests the committed generation
	// still owes.
	wip.Queue = current.Queue.Clone()
	wip.Deps = current.Deps.Clone()

	return wip, nil
}

// ResetWorkInProgress restores wip to the state WorkInProgress would have
// produced, without touching the identity-preserving fields a parent may
// already have set (pending input, index, key, ref, parent link). It is used
// when a speculative attempt over a subtree is discarded and the subtree
// must render again without losing reconciliation progress already made by
// the parent.
func ResetWorkInProgress(wip *Fiber, deadline Deadline) *Fiber {
	wip.Flags &= Placement
	wip.ResetEffects()

	current := wip.alternate
	if current == nil {
		// First generation: reset to the defaults of a freshly classified
		// fiber, bumped to the requested deadline.
		wip.ChildDeadline = None
		wip.Deadline = deadline
		wip.Child = nil
		wip.MemoizedProps = nil
		wip.MemoizedState = nil
		wip.Queue = nil
		wip.Deps = nil
		wip.Instance = nil
		return wip
	}

	wip.ChildDeadline = current.ChildDeadline
	wip.Deadline = current.Deadline
	wip.Child = current.Child
	wip.MemoizedProps = current.MemoizedProps
	wip.MemoizedState = current.MemoizedState
	wip.Queue = current.Queue.Clone()
	wip.Deps = current.Deps.Clone()
	wip.Instance = current.Instance
	wip.Type = current.Type
	return wip
}
