package fiber

// Kind is the work-unit type discriminator, resolved once at the classifier
// boundary. Downstream code dispatches on Kind and never re-inspects the raw
// description.
type Kind uint8

const (
	KindIndeterminate   Kind = iota // Function component not yet invoked
	KindFunction                    // Plain function component
	KindClass                       // Stateful composite
	KindRoot                        // Tree root
	KindHost                        // Intrinsic tag ("div", "button", ...)
	KindText                        // Plain text
	KindFragment                    // Grouping without wrapper
	KindMode                        // Strict-mode boundary
	KindContextProvider             // Context value supplier
	KindContextConsumer             // Context value reader
	KindProfiler                    // Profiling boundary
	KindSuspense                    // Suspense boundary
	KindSuspenseList                // Suspense reveal coordinator
	KindMemo                        // Props-equality bailout wrapper
	KindForwardRef                  // Ref-forwarding wrapper
	KindLazy                        // Deferred-loading placeholder
	KindDehydrated                  // Dehydrated server placeholder
	KindPortal                      // Render into another container
	KindFundamental                 // Host fundamental primitive
	KindScope                       // Scope primitive
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindIndeterminate:
		return "Indeterminate"
	case KindFunction:
		return "Function"
	case KindClass:
		return "Class"
	case KindRoot:
		return "Root"
	case KindHost:
		return "Host"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindMode:
		return "Mode"
	case KindContextProvider:
		return "ContextProvider"
	case KindContextConsumer:
		return "ContextConsumer"
	case KindProfiler:
		return "Profiler"
	case KindSuspense:
		return "Suspense"
	case KindSuspenseList:
		return "SuspenseList"
	case KindMemo:
		return "Memo"
	case KindForwardRef:
		return "ForwardRef"
	case KindLazy:
		return "Lazy"
	case KindDehydrated:
		return "Dehydrated"
	case KindPortal:
		return "Portal"
	case KindFundamental:
		return "Fundamental"
	case KindScope:
		return "Scope"
	default:
		return "Unknown"
	}
}

// Composite reports whether the kind renders by invoking a user definition.
func (k Kind) Composite() bool {
	switch k {
	case KindIndeterminate, KindFunction, KindClass, KindForwardRef, KindMemo:
		return true
	default:
		return false
	}
}
