package vpad

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// defaultMaxPointers is the number of concurrent contact slots a source
	// starts with: the mouse plus one touch. The Manager raises this as more
	// controls are registered so every control can bind its own contact.
	defaultMaxPointers = 2
)

// Pointer is one active touch or mouse contact. Pointers are owned by the
// PointerSource; controls hold a non-owning reference to at most one while
// tracking it and must compare identity before acting on up/move events.
type Pointer struct {
	ID      int     // slot index: 0 = mouse, >= 1 = touch
	X, Y    float64 // current position in screen coordinates
	Active  bool    // true while the contact is held
	IsMouse bool

	touchID ebiten.TouchID // valid while Active and !IsMouse
}

// Position returns the pointer's current position.
func (p *Pointer) Position() Vec2 {
	return Vec2{X: p.X, Y: p.Y}
}

// PointerSource converts Ebitengine's polled mouse and touch state into
// down/up/move events and dispatches them to registered handlers. One slot
// is reserved for the mouse (pointer 0); touches are assigned to slots 1..n
// for the duration of the contact.
type PointerSource struct {
	pointers []*Pointer

	down signal[*Pointer]
	up   signal[*Pointer]
	move signal[*Pointer]

	injectQueue  []syntheticPointerEvent
	synthetic    bool
	prevTouchIDs []ebiten.TouchID
	disposed     bool
}

// NewPointerSource creates a source with the default two contact slots.
func NewPointerSource() *PointerSource {
	s := &PointerSource{}
	s.SetMaxPointers(defaultMaxPointers)
	return s
}

// MaxPointers returns the number of concurrent contact slots.
func (s *PointerSource) MaxPointers() int {
	return len(s.pointers)
}

// SetMaxPointers grows the concurrent contact capacity to n slots.
// The capacity never shrinks below its current value or below the default,
// so active contacts keep their slots.
func (s *PointerSource) SetMaxPointers(n int) {
	if n < defaultMaxPointers {
		n = defaultMaxPointers
	}
	for len(s.pointers) < n {
		id := len(s.pointers)
		s.pointers = append(s.pointers, &Pointer{ID: id, IsMouse: id == 0})
	}
}

// Pointer returns the pointer in slot id, or nil if out of range.
func (s *PointerSource) Pointer(id int) *Pointer {
	if id < 0 || id >= len(s.pointers) {
		return nil
	}
	return s.pointers[id]
}

// --- Handler registration ---

// OnDown registers a handler for contact-start events.
func (s *PointerSource) OnDown(fn func(*Pointer)) Handle {
	return s.down.connect(fn)
}

// OnUp registers a handler for contact-end events.
func (s *PointerSource) OnUp(fn func(*Pointer)) Handle {
	return s.up.connect(fn)
}

// OnMove registers a handler for movement of a held contact.
func (s *PointerSource) OnMove(fn func(*Pointer)) Handle {
	return s.move.connect(fn)
}

// --- Polling ---

// Poll reads the current device state and dispatches the resulting pointer
// events. Once any event has been injected the source is in synthetic mode:
// it drains the queued events instead of reading the real devices, so
// injected contacts are never cancelled by absent device state. Call once
// per frame, before the controls' update ticks.
func (s *PointerSource) Poll() {
	if s.disposed {
		return
	}
	if s.synthetic {
		s.drainInjected()
		return
	}
	s.pollMouse()
	s.pollTouches()
}

// pollMouse maintains slot 0 from the cursor position and left button.
// A mouse pointer is only a contact while the button is held; hover
// movement is not dispatched.
func (s *PointerSource) pollMouse() {
	p := s.pointers[0]
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !p.Active:
		s.dispatchDown(p, x, y)
	case !pressed && p.Active:
		s.dispatchUp(p, x, y)
	case pressed && p.Active && (x != p.X || y != p.Y):
		s.dispatchMove(p, x, y)
	}
}

// pollTouches maintains slots 1..n from Ebitengine's touch list.
func (s *PointerSource) pollTouches() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	seen := make(map[int]bool, len(touchIDs))
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue // capacity exhausted; touch ignored
		}
		seen[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		x, y := float64(tx), float64(ty)
		p := s.pointers[slot]
		if !p.Active {
			p.touchID = tid
			s.dispatchDown(p, x, y)
		} else if x != p.X || y != p.Y {
			s.dispatchMove(p, x, y)
		}
	}

	// Release slots whose touch vanished this frame.
	for i := 1; i < len(s.pointers); i++ {
		p := s.pointers[i]
		if p.Active && !p.IsMouse && !seen[i] {
			s.dispatchUp(p, p.X, p.Y)
		}
	}
}

// touchSlot maps an ebiten.TouchID to a touch slot, allocating a free one
// for new contacts. Returns -1 if every slot is occupied.
func (s *PointerSource) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < len(s.pointers); i++ {
		p := s.pointers[i]
		if p.Active && p.touchID == tid {
			return i
		}
	}
	for i := 1; i < len(s.pointers); i++ {
		if !s.pointers[i].Active {
			return i
		}
	}
	return -1
}

// --- Dispatch ---

func (s *PointerSource) dispatchDown(p *Pointer, x, y float64) {
	p.Active = true
	p.X, p.Y = x, y
	s.down.emit(p)
}

func (s *PointerSource) dispatchUp(p *Pointer, x, y float64) {
	p.X, p.Y = x, y
	s.up.emit(p)
	p.Active = false
}

func (s *PointerSource) dispatchMove(p *Pointer, x, y float64) {
	p.X, p.Y = x, y
	s.move.emit(p)
}

// dispose drops all handlers and queued events. Further polls are no-ops.
func (s *PointerSource) dispose() {
	s.down.dispose()
	s.up.dispose()
	s.move.dispose()
	s.injectQueue = nil
	s.disposed = true
}
