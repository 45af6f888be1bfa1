package fiber

import "testing"

func TestUpdateQueueAppendOrder(t *testing.T) {
	q := NewUpdateQueue(0)
	q.Append(&StateUpdate{Payload: 1, Deadline: Sync})
	q.Append(&StateUpdate{Payload: 2, Deadline: Sync})
	q.Append(&StateUpdate{Payload: 3, Deadline: Sync})

	if q.Empty() {
		t.Fatal("queue with pending requests reports empty")
	}
	if got := q.First().Payload; got != 1 {
		t.Errorf("First().Payload = %v, want 1", got)
	}

	got := q.Process(Sync)
	if got != 3 {
		t.Errorf("Process = %v, want last payload 3", got)
	}
	if !q.Empty() {
		t.Error("queue should be drained after processing everything")
	}
}

func TestUpdateQueueFunctionalPayload(t *testing.T) {
	q := NewUpdateQueue(10)
	q.Append(&StateUpdate{Payload: func(prev any) any { return prev.(int) + 1 }, Deadline: Sync})
	q.Append(&StateUpdate{Payload: func(prev any) any { return prev.(int) * 2 }, Deadline: Sync})

	if got := q.Process(Sync); got != 22 {
		t.Errorf("Process = %v, want (10+1)*2 = 22", got)
	}
	if q.BaseState != 22 {
		t.Errorf("BaseState = %v, want 22", q.BaseState)
	}
}

func TestUpdateQueuePartialReplay(t *testing.T) {
	q := NewUpdateQueue(0)
	q.Append(&StateUpdate{Payload: 1, Deadline: 2})
	q.Append(&StateUpdate{Payload: func(prev any) any { return prev.(int) + 10 }, Deadline: 9})
	q.Append(&StateUpdate{Payload: func(prev any) any { return prev.(int) + 100 }, Deadline: 2})

	// A pass at deadline 2 applies the first and third requests and keeps
	// the deferred one.
	if got := q.Process(2); got != 101 {
		t.Errorf("Process(2) = %v, want 101", got)
	}
	if q.Empty() {
		t.Fatal("deferred request should remain queued")
	}
	if got := q.MinDeadline(); got != 9 {
		t.Errorf("MinDeadline = %v, want 9", got)
	}

	// A later, less urgent pass folds in the remainder.
	if got := q.Process(9); got != 111 {
		t.Errorf("Process(9) = %v, want 111", got)
	}
	if !q.Empty() {
		t.Error("queue should be drained")
	}
}

func TestUpdateQueueClone(t *testing.T) {
	q := NewUpdateQueue("base")
	q.Append(&StateUpdate{Payload: "a", Deadline: 1})
	q.Append(&StateUpdate{Payload: "b", Deadline: 2})

	clone := q.Clone()
	clone.Append(&StateUpdate{Payload: "c", Deadline: 3})
	clone.Process(None)

	// The original must be untouched by mutations of the clone.
	if q.BaseState != "base" {
		t.Errorf("original BaseState = %v, want base", q.BaseState)
	}
	n := 0
	for u := q.First(); u != nil; u = u.next {
		n++
	}
	if n != 2 {
		t.Errorf("original has %d pending requests, want 2", n)
	}
}

func TestUpdateQueueNilReceiver(t *testing.T) {
	var q *UpdateQueue
	if !q.Empty() {
		t.Error("nil queue should report empty")
	}
	if q.First() != nil {
		t.Error("nil queue First should be nil")
	}
	if got := q.Process(Sync); got != nil {
		t.Errorf("nil queue Process = %v, want nil", got)
	}
	if got := q.MinDeadline(); got != None {
		t.Errorf("nil queue MinDeadline = %v, want None", got)
	}
	if q.Clone() != nil {
		t.Error("nil queue Clone should be nil")
	}
}

func TestStateUpdateAlongsideUpdateFlag(t *testing.T) {
	// The Update change tag and the state-transition request are unrelated;
	// a fiber can carry both at once.
	f := New(KindClass, nil, "", NoMode)
	f.Flags.Set(Update)
	f.Queue = NewUpdateQueue(nil)
	f.Queue.Append(&StateUpdate{Payload: 1, Deadline: Sync})

	if !f.Flags.Has(Update) {
		t.Error("change tag lost")
	}
	if f.Queue.Empty() {
		t.Error("request lost")
	}
}

func TestMinDeadlineSync(t *testing.T) {
	q := NewUpdateQueue(nil)
	q.Append(&StateUpdate{Payload: 1, Deadline: 5})
	q.Append(&StateUpdate{Payload: 2, Deadline: Sync})
	if got := q.MinDeadline(); got != Sync {
		t.Errorf("MinDeadline = %v, want Sync", got)
	}
}
