// Package fiber provides the paired work-unit data model for the
// reconciliation engine.
//
// A Fiber represents one position in the logical output tree, independent of
// how many times its content has changed. Exactly two tree generations exist
// at any time: the committed "current" tree and the "work-in-progress" tree
// being computed. A fiber in one generation has at most one paired
// counterpart in the other, reachable through Alternate; the pairing is
// symmetric and maintained in a single place.
//
// The tree is stored as a child + sibling singly-linked structure: each
// fiber has one pointer to its first child and one to its next sibling,
// which keeps memory proportional to node count regardless of fan-out and
// makes reparenting during diffing O(1).
//
// FromElement is the classifier: it maps a raw description to the kind of
// work-unit it must become. WorkInProgress pairs a previous-generation fiber
// with its next-generation counterpart, recycling the existing pairing when
// one exists so that allocation is bounded by structural changes rather
// than total renders. ResetWorkInProgress restores a fiber to the state
// WorkInProgress would have produced when a speculative attempt is
// discarded.
package fiber
