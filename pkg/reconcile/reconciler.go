package reconcile

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/loom/pkg/element"
	"github.com/vango-dev/loom/pkg/fiber"
	"github.com/vango-dev/loom/pkg/profile"
)

// Reconciler runs passes over one Root. It is single-threaded by contract:
// exactly one pass is in flight at a time, and only the reconciler mutates
// pass-scoped fiber fields.
type Reconciler struct {
	root        *Root
	logger      *slog.Logger
	metrics     *Metrics
	tracer      trace.Tracer
	profiler    *profile.Store
	shouldYield func() bool

	// In-flight pass state.
	wip       *fiber.Fiber
	next      *fiber.Fiber
	finished  *fiber.Fiber
	deadline  fiber.Deadline
	providers map[*element.Context][]any
	units     int
	started   time.Time
	span      trace.Span
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// WithMetrics attaches pass metrics.
func WithMetrics(m *Metrics) Option {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

// WithTracer attaches an OpenTelemetry tracer; one span is recorded per
// pass.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Reconciler) {
		r.tracer = tracer
	}
}

// WithProfiler attaches the profiling side table. It is only populated for
// subtrees whose mode carries the profiling bit.
func WithProfiler(store *profile.Store) Option {
	return func(r *Reconciler) {
		r.profiler = store
	}
}

// WithShouldYield sets the cooperative yield callback consulted between
// units of asynchronous passes. Synchronous passes never yield.
func WithShouldYield(fn func() bool) Option {
	return func(r *Reconciler) {
		r.shouldYield = fn
	}
}

// New creates a reconciler for root.
func New(root *Root, opts ...Option) *Reconciler {
	r := &Reconciler{root: root, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is the artifact of one completed pass: the finished tree, destined
// to become the next current generation, and the ordered effect list for the
// commit phase. Each effect entry exposes its change tag, kind, instance,
// and new/old configuration through the fiber's fields.
type Result struct {
	Finished *fiber.Fiber
	Effects  []*fiber.Fiber
	Deadline fiber.Deadline
	Units    int
}

// BeginPass prepares an interruptible pass that will reconcile el at the
// given deadline. An in-flight pass is discarded first: a more urgent pass
// supersedes a less urgent one wholesale, never per node.
func (r *Reconciler) BeginPass(el *element.Element, deadline fiber.Deadline) error {
	if r.next != nil {
		r.logger.Debug("pass superseded", "deadline", uint64(deadline))
		r.Cancel()
	}

	r.root.enqueue(el, deadline)

	wip, err := fiber.WorkInProgress(r.root.Current, nil)
	if err != nil {
		return err
	}

	r.wip = wip
	r.next = wip
	r.finished = nil
	r.deadline = deadline
	r.providers = make(map[*element.Context][]any)
	r.units = 0
	r.started = time.Now()

	if r.tracer != nil {
		_, r.span = r.tracer.Start(context.Background(), "loom.pass",
			trace.WithAttributes(attribute.Int64("loom.deadline", int64(deadline))))
	}
	return nil
}

// Work processes units until the pass completes, the yield callback asks for
// an interruption, or ctx is done. It returns true once the pass has reached
// the root. Classification failures abort the pass; nothing is committed.
func (r *Reconciler) Work(ctx context.Context) (bool, error) {
	if r.next == nil && r.finished == nil {
		return false, nil
	}

	for r.next != nil {
		if err := ctx.Err(); err != nil {
			r.Cancel()
			return false, err
		}

		next, err := r.performUnitOfWork(r.next)
		if err != nil {
			r.failPass(err)
			return false, err
		}
		r.next = next

		if r.next != nil && r.deadline != fiber.Sync && r.shouldYield != nil && r.shouldYield() {
			return false, nil
		}
	}
	return true, nil
}

// Finish returns the pass result once Work has reported completion.
func (r *Reconciler) Finish() *Result {
	if r.finished == nil {
		return nil
	}

	res := &Result{
		Finished: r.finished,
		Deadline: r.deadline,
		Units:    r.units,
	}
	for e := r.finished.FirstEffect; e != nil; e = e.NextEffect {
		res.Effects = append(res.Effects, e)
	}

	if r.metrics != nil {
		r.metrics.passesTotal.WithLabelValues("completed").Inc()
		r.metrics.passDuration.Observe(time.Since(r.started).Seconds())
		r.metrics.unitsProcessed.Add(float64(r.units))
		r.metrics.effectsEmitted.Add(float64(len(res.Effects)))
	}
	if r.span != nil {
		r.span.SetAttributes(
			attribute.Int("loom.units", r.units),
			attribute.Int("loom.effects", len(res.Effects)),
		)
		r.span.SetStatus(codes.Ok, "")
		r.span.End()
		r.span = nil
	}
	r.logger.Debug("pass finished",
		"units", r.units, "effects", len(res.Effects), "deadline", uint64(r.deadline))

	r.wip = nil
	r.finished = nil
	r.providers = nil
	return res
}

// Cancel discards the in-flight pass. Nothing was committed, so cancellation
// has no user-visible effect. Fibers on the actively descended path that are
// still paired with a current fiber are restored, so the next pass recycles
// them cleanly.
func (r *Reconciler) Cancel() {
	if r.next == nil && r.wip == nil {
		return
	}
	for f := r.next; f != nil; f = f.Return {
		fiber.ResetWorkInProgress(f, r.deadline)
	}
	if r.metrics != nil {
		r.metrics.passesTotal.WithLabelValues("canceled").Inc()
	}
	if r.span != nil {
		r.span.AddEvent("canceled")
		r.span.End()
		r.span = nil
	}
	r.logger.Debug("pass canceled", "units", r.units)

	r.wip = nil
	r.next = nil
	r.finished = nil
	r.providers = nil
}

// RenderRoot runs one full synchronous, uninterruptible pass and returns its
// result. The caller applies the effects and then commits via Root.Commit.
func (r *Reconciler) RenderRoot(ctx context.Context, el *element.Element) (*Result, error) {
	if err := r.BeginPass(el, fiber.Sync); err != nil {
		return nil, err
	}
	done, err := r.Work(ctx)
	if err != nil {
		return nil, err
	}
	if !done {
		// Sync passes never yield; reaching here means ctx interference
		// handled above, so this is unreachable in practice.
		r.Cancel()
		return nil, ctx.Err()
	}
	return r.Finish(), nil
}

// failPass records a fatal pass error and discards the attempt.
func (r *Reconciler) failPass(err error) {
	if r.metrics != nil {
		r.metrics.passesTotal.WithLabelValues("failed").Inc()
	}
	if r.span != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
		r.span.End()
		r.span = nil
	}
	r.logger.Error("pass failed", "error", err)

	r.wip = nil
	r.next = nil
	r.finished = nil
	r.providers = nil
}

// performUnitOfWork processes one fiber: begin its work, and if it produced
// no child, complete it (and any finished ancestors) immediately.
func (r *Reconciler) performUnitOfWork(wip *fiber.Fiber) (*fiber.Fiber, error) {
	var beginStart time.Time
	profiling := r.profiler != nil && wip.Mode.Has(fiber.ModeProfile)
	if profiling {
		beginStart = time.Now()
	}

	next, err := r.beginWork(wip)
	if err != nil {
		return nil, err
	}
	wip.MemoizedProps = wip.PendingProps
	r.units++

	var beginDur time.Duration
	if profiling {
		beginDur = time.Since(beginStart)
	}

	if next == nil {
		completeStart := time.Now()
		next = r.completeUnitOfWork(wip)
		if profiling {
			r.profiler.Record(wip, beginDur, time.Since(completeStart))
		}
	} else if profiling {
		r.profiler.Record(wip, beginDur, 0)
	}
	return next, nil
}
