package fiber

import "github.com/vango-dev/loom/pkg/element"

// FromElement is the classifier: it maps a description to the kind of
// work-unit it must become and allocates the first-generation fiber for it.
// owner is the fiber requesting the child and is used only for diagnostics.
// The decision policy, in order: intrinsic tag, function/composite
// definition, built-in marker or wrapper type, then failure with
// InvalidElementType. Pure beyond fiber creation.
func FromElement(el *element.Element, owner *Fiber, mode Mode, deadline Deadline) (*Fiber, error) {
	if el == nil {
		return nil, newInvalidElementType(nil, owner)
	}

	if tag, ok := el.Type.(string); ok {
		f := New(KindHost, el, el.Key, mode)
		f.ElementType = tag
		f.Type = tag
		f.Ref = propRef(el)
		f.Deadline = deadline
		return f, nil
	}

	if comp, ok := el.Type.(element.Component); ok {
		f := New(KindClass, el, el.Key, mode)
		f.ElementType = comp
		f.Type = comp
		f.Ref = propRef(el)
		f.Deadline = deadline
		return f, nil
	}
	if fn, ok := asRender(el.Type); ok {
		// Plain function: indeterminate until invoked successfully.
		f := New(KindIndeterminate, el, el.Key, mode)
		f.ElementType = fn
		f.Type = fn
		f.Deadline = deadline
		return f, nil
	}

	switch t := el.Type.(type) {
	case element.Marker:
		return fromMarker(t, el, owner, mode, deadline)
	case *element.ProviderType:
		return newWrapper(KindContextProvider, t, el, mode, deadline), nil
	case *element.ConsumerType:
		return newWrapper(KindContextConsumer, t, el, mode, deadline), nil
	case *element.MemoType:
		return newWrapper(KindMemo, t, el, mode, deadline), nil
	case *element.ForwardRefType:
		f := newWrapper(KindForwardRef, t, el, mode, deadline)
		f.Ref = propRef(el)
		return f, nil
	case *element.LazyType:
		// Resolved type stays nil until the loader has run; ElementType and
		// Type diverge only on this path.
		f := New(KindLazy, el, el.Key, mode)
		f.ElementType = t
		f.Deadline = deadline
		return f, nil
	case *element.PortalType:
		return newWrapper(KindPortal, t, el, mode, deadline), nil
	case *element.FundamentalType:
		return newWrapper(KindFundamental, t, el, mode, deadline), nil
	case *element.ScopeType:
		return newWrapper(KindScope, t, el, mode, deadline), nil
	}

	return nil, newInvalidElementType(el.Type, owner)
}

func fromMarker(m element.Marker, el *element.Element, owner *Fiber, mode Mode, deadline Deadline) (*Fiber, error) {
	switch m {
	case element.MarkerText:
		f := New(KindText, el.Text, el.Key, mode)
		f.Deadline = deadline
		return f, nil
	case element.MarkerFragment:
		// A fragment takes the children description directly rather than
		// wrapping it another level.
		return NewFragment(el.Children, el.Key, mode, deadline), nil
	case element.MarkerStrictMode:
		f := New(KindMode, el, el.Key, mode|ModeStrict)
		f.ElementType = m
		f.Deadline = deadline
		return f, nil
	case element.MarkerProfiler:
		f := New(KindProfiler, el, el.Key, mode|ModeProfile)
		f.ElementType = m
		f.Deadline = deadline
		return f, nil
	case element.MarkerSuspense:
		f := New(KindSuspense, el, el.Key, mode)
		f.ElementType = m
		f.Deadline = deadline
		return f, nil
	case element.MarkerSuspenseList:
		f := New(KindSuspenseList, el, el.Key, mode)
		f.ElementType = m
		f.Deadline = deadline
		return f, nil
	default:
		return nil, newInvalidElementType(m, owner)
	}
}

// NewFragment allocates a list-fragment fiber whose pending input is the
// children description itself.
func NewFragment(children []*element.Element, key string, mode Mode, deadline Deadline) *Fiber {
	f := New(KindFragment, children, key, mode)
	f.ElementType = element.MarkerFragment
	f.Deadline = deadline
	return f
}

func newWrapper(kind Kind, typ any, el *element.Element, mode Mode, deadline Deadline) *Fiber {
	f := New(kind, el, el.Key, mode)
	f.ElementType = typ
	f.Type = typ
	f.Deadline = deadline
	return f
}

// asRender recognizes plain function components whether or not the caller
// converted to the named Render type.
func asRender(t any) (element.Render, bool) {
	switch fn := t.(type) {
	case element.Render:
		return fn, true
	case func(element.Props) *element.Element:
		return element.Render(fn), true
	}
	return nil, false
}

func propRef(el *element.Element) any {
	if el.Props == nil {
		return nil
	}
	return el.Props["ref"]
}
