package fiber

// Fiber is one paired work-unit: a single position in the logical output
// tree. See the package documentation for the generation/pairing model.
type Fiber struct {
	// Kind is resolved once by the classifier. It changes at most once
	// afterwards: an Indeterminate fiber becomes Function when its
	// definition is first invoked successfully.
	Kind Kind

	// Key is the optional user-supplied stable identity used for list
	// reconciliation. Index is the fallback ordering key when no key is
	// given; it is owned by the parent's child-reconciliation step.
	Key   string
	Index int

	// ElementType is the definition as originally described; Type is the
	// concrete definition this fiber renders. They diverge only under
	// deferred loading.
	ElementType any
	Type        any

	// Instance is the opaque backing object: the constructed state holder
	// for composites or the platform handle for host fibers. Exclusively
	// owned by this fiber.
	Instance any

	// Tree links. Child and Sibling form a proper forest; Return points at
	// the parent during a pass.
	Return  *Fiber
	Child   *Fiber
	Sibling *Fiber

	Ref any

	// PendingProps is the newly requested configuration; MemoizedProps the
	// configuration used to produce the last committed output. The concrete
	// type depends on Kind: *element.Element for most kinds, string for
	// text, []*element.Element for fragments.
	PendingProps  any
	MemoizedProps any

	// MemoizedState is the last committed internal state (composites only).
	// Queue holds state-transition requests awaiting application.
	MemoizedState any
	Queue         *UpdateQueue

	// Deps tracks context reads from the last render.
	Deps *Dependencies

	Mode Mode

	// Flags is the pass-scoped change tag. The effect pointers thread this
	// pass's changed descendants into a flat list; they describe only the
	// current pass and are rebuilt every pass.
	Flags       Flags
	NextEffect  *Fiber
	FirstEffect *Fiber
	LastEffect  *Fiber

	// Deadline is this fiber's own required-completion deadline;
	// ChildDeadline the most urgent deadline among not-yet-processed
	// descendants. A subtree with no due work can be skipped entirely.
	Deadline      Deadline
	ChildDeadline Deadline

	// alternate links to the paired fiber from the other generation. The
	// relation is symmetric and not ownership; it is only ever written by
	// pair so the invariant lives in one place.
	alternate *Fiber
}

// Alternate returns the paired fiber from the other tree generation, or nil
// if this position has only one generation.
func (f *Fiber) Alternate() *Fiber {
	return f.alternate
}

// pair establishes the symmetric pairing between a current fiber and its
// work-in-progress counterpart.
func pair(a, b *Fiber) {
	a.alternate = b
	b.alternate = a
}

// AppendEffect appends e to f's queued-descendant-effect list.
func (f *Fiber) AppendEffect(e *Fiber) {
	e.NextEffect = nil
	if f.LastEffect == nil {
		f.FirstEffect = e
		f.LastEffect = e
		return
	}
	f.LastEffect.NextEffect = e
	f.LastEffect = e
}

// SpliceEffects appends child's accumulated descendant-effect list onto f's.
func (f *Fiber) SpliceEffects(child *Fiber) {
	if child.FirstEffect == nil {
		return
	}
	if f.FirstEffect == nil {
		f.FirstEffect = child.FirstEffect
	} else {
		f.LastEffect.NextEffect = child.FirstEffect
	}
	f.LastEffect = child.LastEffect
}

// ResetEffects clears the pass-scoped effect pointers.
func (f *Fiber) ResetEffects() {
	f.FirstEffect = nil
	f.LastEffect = nil
	f.NextEffect = nil
}
