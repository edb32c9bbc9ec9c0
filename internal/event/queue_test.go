package event

import "testing"

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(4)
	q.Push(Event{Type: Explosion})
	q.Push(Event{Type: NearMiss})

	got := q.Drain()
	if len(got) != 2 || got[0].Type != Explosion || got[1].Type != NearMiss {
		t.Fatalf("Drain() = %+v", got)
	}
	if q.Len() != 0 {
		t.Errorf("queue should be empty after drain, Len() = %d", q.Len())
	}
	if q.Drain() != nil {
		t.Error("draining an empty queue should return nil")
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewQueue(3)
	for i := 1; i <= 5; i++ {
		q.Push(Event{HazardID: uint64(i)})
	}

	got := q.Drain()
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	for i, want := range []uint64{3, 4, 5} {
		if got[i].HazardID != want {
			t.Errorf("event %d has id %d, expected %d", i, got[i].HazardID, want)
		}
	}
	if q.Dropped() != 2 {
		t.Errorf("Dropped() = %d, expected 2", q.Dropped())
	}
}

func TestQueueWrapsAfterDrain(t *testing.T) {
	q := NewQueue(2)
	q.Push(Event{HazardID: 1})
	q.Drain()
	q.Push(Event{HazardID: 2})
	q.Push(Event{HazardID: 3})

	got := q.Drain()
	if len(got) != 2 || got[0].HazardID != 2 || got[1].HazardID != 3 {
		t.Errorf("Drain() = %+v", got)
	}
}

func TestMultiSink(t *testing.T) {
	var a, b []Type
	s := Multi(
		SinkFunc(func(e Event) { a = append(a, e.Type) }),
		nil,
		SinkFunc(func(e Event) { b = append(b, e.Type) }),
	)
	s.Emit(Event{Type: Death})

	if len(a) != 1 || len(b) != 1 {
		t.Errorf("expected both sinks to receive the event, got %v %v", a, b)
	}
}
