package reconcile

import (
	"fmt"

	"github.com/vango-dev/loom/pkg/element"
	"github.com/vango-dev/loom/pkg/fiber"
)

// beginWork processes one fiber on the way down: it produces the fiber's
// next children description, reconciles them against the previous
// generation's children, and returns the first child to descend into (nil
// when the fiber is a leaf).
func (r *Reconciler) beginWork(wip *fiber.Fiber) (*fiber.Fiber, error) {
	switch wip.Kind {
	case fiber.KindRoot:
		return r.beginRoot(wip)
	case fiber.KindHost:
		el := pendingElement(wip)
		return r.reconcileChildren(wip, el.Children)
	case fiber.KindText:
		return nil, nil
	case fiber.KindFragment:
		children, _ := wip.PendingProps.([]*element.Element)
		return r.reconcileChildren(wip, children)
	case fiber.KindClass:
		return r.beginClass(wip)
	case fiber.KindFunction, fiber.KindIndeterminate:
		return r.beginFunction(wip)
	case fiber.KindMemo:
		return r.beginMemo(wip)
	case fiber.KindForwardRef:
		return r.beginForwardRef(wip)
	case fiber.KindLazy:
		return r.beginLazy(wip)
	case fiber.KindContextProvider:
		return r.beginProvider(wip)
	case fiber.KindContextConsumer:
		return r.beginConsumer(wip)
	case fiber.KindMode, fiber.KindProfiler, fiber.KindSuspense,
		fiber.KindSuspenseList, fiber.KindPortal, fiber.KindFundamental,
		fiber.KindScope:
		el := pendingElement(wip)
		return r.reconcileChildren(wip, el.Children)
	default:
		return nil, &fiber.Error{
			Code:     fiber.CodeInvalidElementType,
			Category: fiber.CategoryPass,
			Message:  fmt.Sprintf("cannot begin work on %s fiber", wip.Kind),
		}
	}
}

func (r *Reconciler) beginRoot(wip *fiber.Fiber) (*fiber.Fiber, error) {
	state := wip.Queue.Process(r.deadline)
	wip.MemoizedState = state

	el, _ := state.(*element.Element)
	if el == nil {
		return r.reconcileChildren(wip, nil)
	}
	return r.reconcileChildren(wip, []*element.Element{el})
}

func (r *Reconciler) beginClass(wip *fiber.Fiber) (*fiber.Fiber, error) {
	comp := wip.Type.(element.Component)
	wip.Instance = comp

	state := wip.MemoizedState
	if !wip.Queue.Empty() {
		state = wip.Queue.Process(r.deadline)
	}
	wip.MemoizedState = state

	el := pendingElement(wip)
	rendered := comp.Render(el.Props, state)
	return r.reconcileSingle(wip, rendered)
}

func (r *Reconciler) beginFunction(wip *fiber.Fiber) (*fiber.Fiber, error) {
	fn, ok := renderFunc(wip.Type)
	if !ok {
		return nil, &fiber.Error{
			Code:     fiber.CodeInvalidElementType,
			Category: fiber.CategoryPass,
			Message:  fmt.Sprintf("function fiber holds %T, not a render function", wip.Type),
		}
	}

	el := pendingElement(wip)
	rendered := fn(el.Props)

	// An indeterminate fiber resolves to Function permanently once its
	// definition has been invoked successfully.
	if wip.Kind == fiber.KindIndeterminate {
		wip.Kind = fiber.KindFunction
		if alt := wip.Alternate(); alt != nil {
			alt.Kind = fiber.KindFunction
		}
	}
	return r.reconcileSingle(wip, rendered)
}

func (r *Reconciler) beginMemo(wip *fiber.Fiber) (*fiber.Fiber, error) {
	mt := wip.ElementType.(*element.MemoType)
	el := pendingElement(wip)

	if current := wip.Alternate(); current != nil {
		if prev, ok := current.MemoizedProps.(*element.Element); ok && memoEqual(mt, prev, el) {
			return r.bailout(wip), nil
		}
	}

	inner := &element.Element{Type: mt.Inner, Key: el.Key, Props: el.Props, Children: el.Children}
	return r.reconcileSingle(wip, inner)
}

func (r *Reconciler) beginForwardRef(wip *fiber.Fiber) (*fiber.Fiber, error) {
	rt := wip.Type.(*element.ForwardRefType)
	el := pendingElement(wip)
	rendered := rt.Render(el.Props, wip.Ref)
	return r.reconcileSingle(wip, rendered)
}

func (r *Reconciler) beginLazy(wip *fiber.Fiber) (*fiber.Fiber, error) {
	lt := wip.ElementType.(*element.LazyType)
	resolved, err := lt.Resolve()
	if err != nil {
		return nil, &fiber.Error{
			Code:     fiber.CodeInvalidElementType,
			Category: fiber.CategoryClassify,
			Message:  fmt.Sprintf("deferred definition failed to load: %v", err),
			Owner:    fiber.NearestOwnerName(wip.Return),
			Wrapped:  err,
		}
	}
	wip.Type = resolved

	el := pendingElement(wip)
	inner := &element.Element{Type: resolved, Key: el.Key, Props: el.Props, Children: el.Children}
	return r.reconcileSingle(wip, inner)
}

func (r *Reconciler) beginProvider(wip *fiber.Fiber) (*fiber.Fiber, error) {
	pt := wip.Type.(*element.ProviderType)
	el := pendingElement(wip)
	value := el.Props["value"]

	// A changed value must reach every recorded reader below, even through
	// subtrees that would otherwise bail out, so readers are bumped to this
	// pass's deadline before any child decides to skip.
	if current := wip.Alternate(); current != nil {
		if prev, ok := current.MemoizedProps.(*element.Element); ok {
			if !propEqual(prev.Props["value"], value) {
				r.propagateContextChange(wip, pt.Context)
			}
		}
	}

	r.pushProvider(pt.Context, value)
	return r.reconcileChildren(wip, el.Children)
}

// propagateContextChange marks every committed fiber below wip that read ctx
// as due in this pass, bumping ChildDeadline on the ancestors in between.
// Nested providers of the same context shadow the change for their subtree
// and detect their own value changes, so the walk stops at them.
func (r *Reconciler) propagateContextChange(wip *fiber.Fiber, ctx *element.Context) {
	for c := wip.Child; c != nil; c = c.Sibling {
		r.markContextReaders(c, ctx)
	}
	resetChildDeadlineFloor(wip)
}

func (r *Reconciler) markContextReaders(f *fiber.Fiber, ctx *element.Context) {
	if f.Deps.Reads(ctx) {
		f.Deadline = fiber.Min(f.Deadline, r.deadline)
		if alt := f.Alternate(); alt != nil {
			alt.Deadline = fiber.Min(alt.Deadline, r.deadline)
		}
	}
	if f.Kind == fiber.KindContextProvider {
		if pt, ok := f.Type.(*element.ProviderType); ok && pt.Context == ctx {
			return
		}
	}
	for c := f.Child; c != nil; c = c.Sibling {
		r.markContextReaders(c, ctx)
	}
	resetChildDeadlineFloor(f)
}

// resetChildDeadlineFloor lowers ChildDeadline to the children's most urgent
// deadline without ever raising it.
func resetChildDeadlineFloor(f *fiber.Fiber) {
	d := f.ChildDeadline
	for c := f.Child; c != nil; c = c.Sibling {
		d = fiber.Min(d, fiber.Min(c.Deadline, c.ChildDeadline))
	}
	f.ChildDeadline = d
	if alt := f.Alternate(); alt != nil {
		alt.ChildDeadline = fiber.Min(alt.ChildDeadline, d)
	}
}

func (r *Reconciler) beginConsumer(wip *fiber.Fiber) (*fiber.Fiber, error) {
	ct := wip.Type.(*element.ConsumerType)
	el := pendingElement(wip)

	value := r.readContext(ct.Context)
	wip.Deps = &fiber.Dependencies{
		Deadline:     r.deadline,
		FirstContext: &fiber.ContextDependency{Context: ct.Context},
	}

	render, ok := el.Props["render"].(func(value any) *element.Element)
	if !ok {
		return nil, &fiber.Error{
			Code:     fiber.CodeInvalidElementType,
			Category: fiber.CategoryClassify,
			Message:  fmt.Sprintf("context consumer for %q requires a render function child", ct.Context.Name()),
			Owner:    fiber.NearestOwnerName(wip.Return),
		}
	}
	return r.reconcileSingle(wip, render(value))
}

// bailout skips re-rendering an unchanged fiber. If nothing below it has due
// work the whole subtree is skipped; otherwise the previous children are
// recycled in place and descended into.
func (r *Reconciler) bailout(wip *fiber.Fiber) *fiber.Fiber {
	if !wip.ChildDeadline.Due(r.deadline) {
		// Keep the committed children as-is: no descendant is due.
		return nil
	}
	return r.cloneChildren(wip)
}

// cloneChildren recycles the previous generation's child fibers under wip
// without re-rendering them.
func (r *Reconciler) cloneChildren(wip *fiber.Fiber) *fiber.Fiber {
	var first, prev *fiber.Fiber
	for c := wip.Child; c != nil; c = c.Sibling {
		clone, err := fiber.WorkInProgress(c, c.PendingProps)
		if err != nil {
			break
		}
		clone.Index = c.Index
		clone.Ref = c.Ref
		clone.Return = wip
		clone.Sibling = nil
		if prev == nil {
			first = clone
		} else {
			prev.Sibling = clone
		}
		prev = clone
	}
	wip.Child = first
	return first
}

// pushProvider makes value the current value of ctx for the subtree being
// descended. Values nest; completeWork pops on the way back up.
func (r *Reconciler) pushProvider(ctx *element.Context, value any) {
	r.providers[ctx] = append(r.providers[ctx], value)
}

func (r *Reconciler) popProvider(ctx *element.Context) {
	stack := r.providers[ctx]
	if n := len(stack); n > 0 {
		r.providers[ctx] = stack[:n-1]
	}
}

// readContext returns the nearest provided value, or the context default.
func (r *Reconciler) readContext(ctx *element.Context) any {
	if stack := r.providers[ctx]; len(stack) > 0 {
		return stack[len(stack)-1]
	}
	return ctx.Default()
}

// pendingElement returns the fiber's pending input as an element. Fibers
// whose pending input is not an element (text, fragments) never reach the
// call sites.
func pendingElement(wip *fiber.Fiber) *element.Element {
	if el, ok := wip.PendingProps.(*element.Element); ok && el != nil {
		return el
	}
	return &element.Element{}
}

// renderFunc mirrors the classifier's recognition of function components.
func renderFunc(t any) (element.Render, bool) {
	switch fn := t.(type) {
	case element.Render:
		return fn, true
	case func(element.Props) *element.Element:
		return element.Render(fn), true
	}
	return nil, false
}
