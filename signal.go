package vpad

// signal is a minimal synchronous observer list. Dispatch is fire-and-forget
// in registration order; there is no queuing. Controls own one signal per
// notification channel (down/up/move/update). A handler may remove itself or
// any other handler mid-dispatch: removal during an emit nils the entry in
// place, and the list is compacted once the outermost emit returns.
type signal[T any] struct {
	handlers  []sigHandler[T]
	nextID    uint32
	emitDepth int
	removed   bool
	disposed  bool
}

type sigHandler[T any] struct {
	id uint32
	fn func(T)
}

// Handle allows removing a registered callback.
type Handle struct {
	id     uint32
	remove func(uint32)
}

// Remove unregisters the callback so it no longer fires.
// Safe to call on a zero Handle or after the owning control is destroyed.
func (h Handle) Remove() {
	if h.remove != nil {
		h.remove(h.id)
	}
}

// connect registers fn and returns a removable Handle.
func (s *signal[T]) connect(fn func(T)) Handle {
	if s.disposed {
		return Handle{}
	}
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, sigHandler[T]{id: id, fn: fn})
	return Handle{id: id, remove: s.removeByID}
}

func (s *signal[T]) removeByID(id uint32) {
	for i := range s.handlers {
		if s.handlers[i].id != id {
			continue
		}
		if s.emitDepth > 0 {
			// Shifting entries under an in-flight emit would make its loop
			// skip or re-read handlers. Nil the slot; emit compacts later.
			s.handlers[i].fn = nil
			s.removed = true
			return
		}
		copy(s.handlers[i:], s.handlers[i+1:])
		s.handlers[len(s.handlers)-1] = sigHandler[T]{}
		s.handlers = s.handlers[:len(s.handlers)-1]
		return
	}
}

// emit invokes every handler synchronously in registration order. Handlers
// removed mid-dispatch no longer fire, including later in the same emit.
func (s *signal[T]) emit(v T) {
	s.emitDepth++
	for i := 0; i < len(s.handlers); i++ {
		if fn := s.handlers[i].fn; fn != nil {
			fn(v)
		}
	}
	s.emitDepth--
	if s.emitDepth == 0 && s.removed {
		s.compact()
		s.removed = false
	}
}

// compact drops the slots nilled by mid-dispatch removals.
func (s *signal[T]) compact() {
	kept := s.handlers[:0]
	for _, h := range s.handlers {
		if h.fn != nil {
			kept = append(kept, h)
		}
	}
	for i := len(kept); i < len(s.handlers); i++ {
		s.handlers[i] = sigHandler[T]{}
	}
	s.handlers = kept
}

// dispose drops all handlers. Further connects are no-ops returning an
// inert Handle.
func (s *signal[T]) dispose() {
	s.handlers = nil
	s.disposed = true
}
