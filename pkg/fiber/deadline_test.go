package fiber

import "testing"

func TestDeadlineOrdering(t *testing.T) {
	if !Sync.Before(1) {
		t.Error("Sync must be more urgent than any counter value")
	}
	if !Deadline(1).Before(None) {
		t.Error("every real deadline must be more urgent than None")
	}
	if None.Before(None) {
		t.Error("None is not before itself")
	}
}

func TestDeadlineDue(t *testing.T) {
	if !Deadline(3).Due(3) {
		t.Error("equal deadlines are due")
	}
	if !Deadline(2).Due(5) {
		t.Error("more urgent work is due at a less urgent pass")
	}
	if Deadline(5).Due(2) {
		t.Error("less urgent work is not due at a more urgent pass")
	}
	if None.Due(5) {
		t.Error("None means no work pending")
	}
}

func TestMin(t *testing.T) {
	if got := Min(3, 7); got != 3 {
		t.Errorf("Min(3, 7) = %d, want 3", got)
	}
	if got := Min(None, 7); got != 7 {
		t.Errorf("Min(None, 7) = %d, want 7", got)
	}
	if got := Min(Sync, 7); got != Sync {
		t.Errorf("Min(Sync, 7) = %d, want Sync", got)
	}
}

func TestClockMonotonic(t *testing.T) {
	var c Clock
	prev := c.Next()
	if prev == Sync {
		t.Fatal("clock must never issue Sync")
	}
	for i := 0; i < 100; i++ {
		next := c.Next()
		if !prev.Before(next) {
			t.Fatalf("clock went backwards: %d then %d", prev, next)
		}
		prev = next
	}
}
