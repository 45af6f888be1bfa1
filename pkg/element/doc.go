// Package element provides the tree description types consumed by the
// reconciliation engine.
//
// An Element describes one position in a requested output tree: what it
// renders (its Type), how it is identified across renders (its Key), and the
// configuration it was requested with (Props and Children). Elements are
// immutable inputs; the engine never mutates a description, it only reads it
// while building the paired work-in-progress tree.
//
// # Element types
//
// The Type field accepts:
//
//   - a string: an intrinsic/host tag name such as "div"
//   - a Component: a stateful composite definition
//   - a Render function: a plain function component
//   - a Marker: fragment, strict mode, profiler, suspense, suspense list, text
//   - one of the wrapper types: *MemoType, *ForwardRefType, *LazyType,
//     *PortalType, *FundamentalType, *ScopeType, or a context's stable
//     *ProviderType / *ConsumerType
//
// # Building trees
//
// Elements are created using factory functions:
//
//	El("div", Props{"class": "card"},
//	    El("h1", nil, Text("Title")),
//	    El("p", nil, Text("Content")),
//	)
package element
