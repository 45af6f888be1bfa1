package fiber

// StateUpdate is one state-transition request awaiting application. Payload
// is either the next state value or a func(prev any) any computing it from
// the previous state.
type StateUpdate struct {
	Payload  any
	Deadline Deadline

	next *StateUpdate
}

// UpdateQueue is an ordered queue of state-transition requests, stored as a
// singly-linked list for O(1) append.
type UpdateQueue struct {
	BaseState any

	first *StateUpdate
	last  *StateUpdate
}

// NewUpdateQueue creates a queue folding over base.
func NewUpdateQueue(base any) *UpdateQueue {
	return &UpdateQueue{BaseState: base}
}

// Append adds u to the end of the queue.
func (q *UpdateQueue) Append(u *StateUpdate) {
	u.next = nil
	if q.last == nil {
		q.first = u
		q.last = u
		return
	}
	q.last.next = u
	q.last = u
}

// Empty reports whether no requests are pending.
func (q *UpdateQueue) Empty() bool {
	return q == nil || q.first == nil
}

// First returns the oldest pending request without removing it.
func (q *UpdateQueue) First() *StateUpdate {
	if q == nil {
		return nil
	}
	return q.first
}

// Process folds every request due at passDeadline into the base state and
// returns the result. Requests not yet due are kept, in order, for a later
// pass; this allows partial replay.
func (q *UpdateQueue) Process(passDeadline Deadline) any {
	if q == nil {
		return nil
	}
	state := q.BaseState
	var keptFirst, keptLast *StateUpdate
	for u := q.first; u != nil; u = u.next {
		if !u.Deadline.Due(passDeadline) {
			kept := &StateUpdate{Payload: u.Payload, Deadline: u.Deadline}
			if keptLast == nil {
				keptFirst = kept
			} else {
				keptLast.next = kept
			}
			keptLast = kept
			continue
		}
		if fn, ok := u.Payload.(func(prev any) any); ok {
			state = fn(state)
		} else {
			state = u.Payload
		}
	}
	q.BaseState = state
	q.first = keptFirst
	q.last = keptLast
	return state
}

// MinDeadline returns the most urgent deadline among pending requests, or
// None when the queue is empty.
func (q *UpdateQueue) MinDeadline() Deadline {
	d := None
	if q == nil {
		return d
	}
	for u := q.first; u != nil; u = u.next {
		d = Min(d, u.Deadline)
	}
	return d
}

// Clone returns an independent copy of the queue and its pending requests.
func (q *UpdateQueue) Clone() *UpdateQueue {
	if q == nil {
		return nil
	}
	clone := &UpdateQueue{BaseState: q.BaseState}
	for u := q.first; u != nil; u = u.next {
		clone.Append(&StateUpdate{Payload: u.Payload, Deadline: u.Deadline})
	}
	return clone
}
