package element

import "fmt"

// Text creates a text element.
func Text(content string) *Element {
	return &Element{Type: MarkerText, Text: content}
}

// Textf creates a formatted text element.
func Textf(format string, args ...any) *Element {
	return Text(fmt.Sprintf(format, args...))
}

// El creates an intrinsic element with the given tag.
func El(tag string, props Props, children ...*Element) *Element {
	return &Element{Type: tag, Props: props, Children: compact(children)}
}

// New creates an element of an arbitrary type.
func New(typ any, props Props, children ...*Element) *Element {
	return &Element{Type: typ, Props: props, Children: compact(children)}
}

// Keyed returns a copy of el with the given reconciliation key.
func Keyed(key string, el *Element) *Element {
	if el == nil {
		return nil
	}
	clone := *el
	clone.Key = key
	return &clone
}

// Fragment groups children without introducing a wrapper position.
func Fragment(children ...*Element) *Element {
	return &Element{Type: MarkerFragment, Children: compact(children)}
}

// Strict wraps children in a strict-mode boundary. Descendants inherit the
// strict mode bit at creation.
func Strict(children ...*Element) *Element {
	return &Element{Type: MarkerStrictMode, Children: compact(children)}
}

// Profile wraps children in a profiler boundary identified by id.
func Profile(id string, children ...*Element) *Element {
	return &Element{Type: MarkerProfiler, Props: Props{"id": id}, Children: compact(children)}
}

// Suspense wraps children in a suspense boundary with the given fallback.
func Suspense(fallback *Element, children ...*Element) *Element {
	return &Element{Type: MarkerSuspense, Props: Props{"fallback": fallback}, Children: compact(children)}
}

// SuspenseList coordinates the reveal order of nested suspense boundaries.
func SuspenseList(children ...*Element) *Element {
	return &Element{Type: MarkerSuspenseList, Children: compact(children)}
}

// Portal renders children into the given host container.
func Portal(container any, children ...*Element) *Element {
	return &Element{Type: &PortalType{Container: container}, Children: compact(children)}
}

// compact drops nil children so callers can build trees conditionally. The
// input is returned as-is when nothing needs dropping; otherwise a fresh
// slice is built so a caller-owned backing array is never shifted in place.
func compact(children []*Element) []*Element {
	for i, c := range children {
		if c != nil {
			continue
		}
		out := make([]*Element, 0, len(children)-1)
		out = append(out, children[:i]...)
		for _, rest := range children[i+1:] {
			if rest != nil {
				out = append(out, rest)
			}
		}
		return out
	}
	return children
}
