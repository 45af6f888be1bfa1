package element

import "sync"

// Props holds the configuration requested for a position: attributes, event
// handlers, and component inputs.
type Props map[string]any

// Element describes one position in a requested output tree.
type Element struct {
	Type     any        // What this position renders (see package doc)
	Key      string     // Stable identity for list reconciliation
	Props    Props      // Requested configuration
	Children []*Element // Ordered child descriptions
	Text     string     // Content for MarkerText elements
}

// Marker identifies the built-in element types that carry no user definition.
type Marker uint8

const (
	MarkerText Marker = iota + 1
	MarkerFragment
	MarkerStrictMode
	MarkerProfiler
	MarkerSuspense
	MarkerSuspenseList
)

// String returns the string representation of the Marker.
func (m Marker) String() string {
	switch m {
	case MarkerText:
		return "Text"
	case MarkerFragment:
		return "Fragment"
	case MarkerStrictMode:
		return "StrictMode"
	case MarkerProfiler:
		return "Profiler"
	case MarkerSuspense:
		return "Suspense"
	case MarkerSuspenseList:
		return "SuspenseList"
	default:
		return "Unknown"
	}
}

// Component is a stateful composite definition. Implementing this interface
// is the explicit marker that distinguishes a composite from a plain render
// function during classification.
type Component interface {
	Render(props Props, state any) *Element
}

// Render is a plain function component. A position rendered by a Render
// stays indeterminate until the function has been invoked once.
type Render func(props Props) *Element

// Context carries a value down the tree without threading it through props.
// Its provider and consumer element types are allocated once so that type
// identity is stable across renders.
type Context struct {
	name         string
	defaultValue any
	provider     *ProviderType
	consumer     *ConsumerType
}

// NewContext creates a context with a name (used in diagnostics) and the
// value consumers see when no provider is above them.
func NewContext(name string, defaultValue any) *Context {
	c := &Context{name: name, defaultValue: defaultValue}
	c.provider = &ProviderType{Context: c}
	c.consumer = &ConsumerType{Context: c}
	return c
}

// Name returns the context's diagnostic name.
func (c *Context) Name() string { return c.name }

// Default returns the value consumers see without a provider.
func (c *Context) Default() any { return c.defaultValue }

// ProviderType is the stable element type for a context's provider.
type ProviderType struct {
	Context *Context
}

// ConsumerType is the stable element type for a context's consumer.
type ConsumerType struct {
	Context *Context
}

// Provide builds a provider element supplying value to all descendants.
func (c *Context) Provide(value any, children ...*Element) *Element {
	return &Element{Type: c.provider, Props: Props{"value": value}, Children: children}
}

// Consume builds a consumer element whose child is produced from the nearest
// provided value.
func (c *Context) Consume(render func(value any) *Element) *Element {
	return &Element{Type: c.consumer, Props: Props{"render": render}}
}

// MemoType wraps a definition so that re-renders bail out when the requested
// props are unchanged.
type MemoType struct {
	Inner   any
	Compare func(prev, next Props) bool // nil means shallow comparison
}

// Memo wraps inner with the default shallow props comparison.
func Memo(inner any) *MemoType {
	return &MemoType{Inner: inner}
}

// MemoWithCompare wraps inner with a custom props comparison.
func MemoWithCompare(inner any, compare func(prev, next Props) bool) *MemoType {
	return &MemoType{Inner: inner, Compare: compare}
}

// ForwardRefType renders with the position's ref forwarded alongside props.
type ForwardRefType struct {
	Render func(props Props, ref any) *Element
}

// ForwardRef creates a forward-ref element type.
func ForwardRef(render func(props Props, ref any) *Element) *ForwardRefType {
	return &ForwardRefType{Render: render}
}

// LazyType defers loading a definition until the position is first rendered.
// The loader runs at most once; its result is memoized for all later passes.
type LazyType struct {
	loader   func() (any, error)
	once     sync.Once
	resolved any
	err      error
}

// Lazy creates a deferred element type from a loader.
func Lazy(loader func() (any, error)) *LazyType {
	return &LazyType{loader: loader}
}

// Resolve invokes the loader once and memoizes the resolved definition.
func (l *LazyType) Resolve() (any, error) {
	l.once.Do(func() {
		l.resolved, l.err = l.loader()
	})
	return l.resolved, l.err
}

// PortalType renders children into a different host container.
type PortalType struct {
	Container any
}

// FundamentalType wraps a host-primitive implementation.
type FundamentalType struct {
	Impl any
}

// ScopeType groups a subtree under a named scope primitive.
type ScopeType struct {
	Name string
}
