package vpad

import "testing"

// record collects dispatched pointer events for assertions.
type record struct {
	kind EventType
	id   int
	x, y float64
}

func recordSource(s *PointerSource) *[]record {
	var events []record
	s.OnDown(func(p *Pointer) { events = append(events, record{EventDown, p.ID, p.X, p.Y}) })
	s.OnUp(func(p *Pointer) { events = append(events, record{EventUp, p.ID, p.X, p.Y}) })
	s.OnMove(func(p *Pointer) { events = append(events, record{EventMove, p.ID, p.X, p.Y}) })
	return &events
}

func TestInjectDownUp(t *testing.T) {
	s := NewPointerSource()
	events := recordSource(s)

	s.InjectDown(1, 100, 200)
	s.Poll()

	p := s.Pointer(1)
	if !p.Active {
		t.Error("pointer 1 not active after injected down")
	}
	if p.X != 100 || p.Y != 200 {
		t.Errorf("pointer position = (%v, %v), want (100, 200)", p.X, p.Y)
	}

	s.InjectUp(1, 100, 200)
	s.Poll()
	if p.Active {
		t.Error("pointer 1 still active after injected up")
	}

	want := []record{{EventDown, 1, 100, 200}, {EventUp, 1, 100, 200}}
	if len(*events) != len(want) {
		t.Fatalf("%d events dispatched, want %d", len(*events), len(want))
	}
	for i, w := range want {
		if (*events)[i] != w {
			t.Errorf("event %d = %+v, want %+v", i, (*events)[i], w)
		}
	}
}

func TestInjectQueueDrainedInOrder(t *testing.T) {
	s := NewPointerSource()
	events := recordSource(s)

	// A full gesture queued before a single Poll must be delivered whole,
	// in order, within that Poll.
	s.InjectDown(0, 10, 10)
	s.InjectMove(0, 20, 10)
	s.InjectMove(0, 30, 10)
	s.InjectUp(0, 30, 10)
	s.Poll()

	want := []EventType{EventDown, EventMove, EventMove, EventUp}
	if len(*events) != len(want) {
		t.Fatalf("%d events dispatched, want %d", len(*events), len(want))
	}
	for i, w := range want {
		if (*events)[i].kind != w {
			t.Errorf("event %d kind = %v, want %v", i, (*events)[i].kind, w)
		}
	}

	// The queue is consumed; the next Poll dispatches nothing further.
	if s.drainInjected() {
		t.Error("queue not empty after Poll")
	}
}

func TestInjectIgnoresInvalidTransitions(t *testing.T) {
	s := NewPointerSource()
	events := recordSource(s)

	s.InjectMove(0, 10, 10) // move without down
	s.InjectUp(0, 10, 10)   // up without down
	s.Poll()
	if len(*events) != 0 {
		t.Fatalf("inactive pointer dispatched %d events, want 0", len(*events))
	}

	s.InjectDown(0, 10, 10)
	s.InjectDown(0, 50, 50) // second down while held
	s.Poll()
	if len(*events) != 1 {
		t.Fatalf("%d events dispatched, want 1", len(*events))
	}
	if p := s.Pointer(0); p.X != 10 {
		t.Errorf("second down while held moved the pointer to %v", p.X)
	}
}

func TestInjectUnknownSlotIgnored(t *testing.T) {
	s := NewPointerSource()
	events := recordSource(s)

	s.InjectDown(99, 10, 10)
	s.Poll()
	if len(*events) != 0 {
		t.Errorf("out-of-range slot dispatched %d events, want 0", len(*events))
	}
}

func TestSetMaxPointersGrowsOnly(t *testing.T) {
	s := NewPointerSource()
	if got := s.MaxPointers(); got != defaultMaxPointers {
		t.Fatalf("MaxPointers = %d, want %d", got, defaultMaxPointers)
	}

	s.SetMaxPointers(5)
	if got := s.MaxPointers(); got != 5 {
		t.Errorf("MaxPointers = %d, want 5", got)
	}

	// Shrinking is refused so active contacts keep their slots.
	s.SetMaxPointers(1)
	if got := s.MaxPointers(); got != 5 {
		t.Errorf("MaxPointers shrank to %d", got)
	}

	if p := s.Pointer(0); !p.IsMouse {
		t.Error("slot 0 is not the mouse")
	}
	if p := s.Pointer(4); p == nil || p.IsMouse {
		t.Error("slot 4 missing or marked as mouse")
	}
	if s.Pointer(5) != nil {
		t.Error("slot 5 should be out of range")
	}
}

func TestInjectTap(t *testing.T) {
	s := NewPointerSource()
	events := recordSource(s)

	s.InjectTap(0, 42, 24)
	s.Poll()

	if len(*events) != 2 {
		t.Fatalf("%d events dispatched, want 2", len(*events))
	}
	if (*events)[0].kind != EventDown || (*events)[1].kind != EventUp {
		t.Errorf("tap dispatched %v then %v, want down then up", (*events)[0].kind, (*events)[1].kind)
	}
}

func TestInjectDrag(t *testing.T) {
	s := NewPointerSource()
	events := recordSource(s)

	s.InjectDrag(0, 0, 0, 100, 0, 3)
	s.Poll()

	// down + 3 moves + up
	if len(*events) != 5 {
		t.Fatalf("%d events dispatched, want 5", len(*events))
	}
	if (*events)[0].kind != EventDown || (*events)[4].kind != EventUp {
		t.Fatalf("drag must start with down and end with up, got %+v", *events)
	}
	prev := 0.0
	for _, e := range (*events)[1:4] {
		if e.kind != EventMove {
			t.Errorf("intermediate event kind = %v, want move", e.kind)
		}
		if e.x <= prev || e.x >= 100 {
			t.Errorf("move x = %v, want strictly between %v and 100", e.x, prev)
		}
		prev = e.x
	}
}

func TestPollAfterDispose(t *testing.T) {
	s := NewPointerSource()
	events := recordSource(s)

	s.InjectDown(0, 10, 10)
	s.dispose()
	s.Poll()
	if len(*events) != 0 {
		t.Errorf("disposed source dispatched %d events", len(*events))
	}
}
