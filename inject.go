package vpad

// syntheticPointerEvent is a single injected pointer event. Screen
// coordinates are used, identical to real device input.
type syntheticPointerEvent struct {
	id   int
	x, y float64
	kind EventType // EventDown, EventMove, or EventUp
}

// InjectDown queues a contact-start event for pointer slot id at the given
// screen coordinates. Injected events are consumed by the next Poll call,
// which dispatches the entire queue before the frame's update ticks.
// Injecting any event switches the source into synthetic mode: real device
// input is no longer read, so queued gestures play out undisturbed.
func (s *PointerSource) InjectDown(id int, x, y float64) {
	s.inject(syntheticPointerEvent{id: id, x: x, y: y, kind: EventDown})
}

// InjectMove queues a movement event for a held pointer slot.
func (s *PointerSource) InjectMove(id int, x, y float64) {
	s.inject(syntheticPointerEvent{id: id, x: x, y: y, kind: EventMove})
}

// InjectUp queues a contact-end event for pointer slot id.
func (s *PointerSource) InjectUp(id int, x, y float64) {
	s.inject(syntheticPointerEvent{id: id, x: x, y: y, kind: EventUp})
}

func (s *PointerSource) inject(evt syntheticPointerEvent) {
	s.synthetic = true
	s.injectQueue = append(s.injectQueue, evt)
}

// InjectTap is a convenience that queues a down followed by an up at the
// same coordinates.
func (s *PointerSource) InjectTap(id int, x, y float64) {
	s.InjectDown(id, x, y)
	s.InjectUp(id, x, y)
}

// InjectDrag queues a full drag: down at (fromX, fromY), steps linearly
// interpolated moves, and up at (toX, toY).
func (s *PointerSource) InjectDrag(id int, fromX, fromY, toX, toY float64, steps int) {
	s.InjectDown(id, fromX, fromY)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(id, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectUp(id, toX, toY)
}

// drainInjected dispatches every queued synthetic event in order. Returns
// true if any event was consumed.
func (s *PointerSource) drainInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	for _, evt := range s.injectQueue {
		p := s.Pointer(evt.id)
		if p == nil {
			debugf("injected event for pointer %d exceeds slot capacity %d", evt.id, len(s.pointers))
			continue
		}
		switch evt.kind {
		case EventDown:
			if !p.Active {
				s.dispatchDown(p, evt.x, evt.y)
			}
		case EventMove:
			if p.Active {
				s.dispatchMove(p, evt.x, evt.y)
			}
		case EventUp:
			if p.Active {
				s.dispatchUp(p, evt.x, evt.y)
			}
		}
	}
	s.injectQueue = s.injectQueue[:0]
	return true
}
