// Package reconcile runs incremental, interruptible reconciliation passes.
//
// A pass takes a new tree description for a Root and computes a
// work-in-progress tree paired node-by-node with the committed one. Each
// paired fiber is tagged with the change it needs, and the changed fibers
// are threaded into a flat, ordered effect list for an external commit phase
// to apply. Nothing is user-visible until the pass reaches the root and the
// caller commits the result; a canceled pass therefore has no observable
// effect.
//
// Work is expressed as discrete node-processing steps. Between steps the
// reconciler checks a yield callback, so a scheduler can interleave more
// urgent work; resumption re-enters at the retained next unit with no state
// lost. Exactly one pass is in flight per Reconciler at a time, and only the
// reconciler mutates pass-scoped fiber fields, so no locking is needed.
//
// Typical use:
//
//	root := reconcile.NewRoot(nil)
//	rec := reconcile.New(root)
//
//	res, err := rec.RenderRoot(ctx, description)
//	if err != nil {
//	    // classification failure; nothing was committed
//	}
//	root.Commit(res)
//	// res.Effects is the ordered changed-node list for the commit phase
package reconcile
