package vpad

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// padControl is the common lifecycle of Stick and DPad: both share the
// surface's per-frame tick and expose an idempotent Destroy.
type padControl interface {
	tick(dt float32)
	Destroy()
}

// Manager owns the pad's controls and its pointer source. Create controls
// through the Add factories, call Update once per frame from the game
// loop, and remove controls explicitly when done; nothing auto-expires.
//
// Within one Update, all pending pointer events are delivered before the
// controls' update ticks run, so every control reflects the latest pointer
// state when its OnUpdate notification fires.
type Manager struct {
	source *PointerSource

	clockFn func() time.Time
	keyFn   func(ebiten.Key) bool

	sticks  []padControl // sticks and dpads, insertion order
	buttons []*Button

	sink      EventSink
	destroyed bool
}

// NewManager creates a manager with its own pointer source.
func NewManager() *Manager {
	return &Manager{
		source:  NewPointerSource(),
		clockFn: time.Now,
		keyFn:   ebiten.IsKeyPressed,
	}
}

// Source returns the manager's pointer source. Use it to inject synthetic
// events or inspect pointer slots.
func (m *Manager) Source() *PointerSource { return m.source }

// SetEventSink forwards every notification any control dispatches to sink
// as a flat Event. Pass nil to stop forwarding.
func (m *Manager) SetEventSink(sink EventSink) { m.sink = sink }

// --- Factories ---

// AddStick creates an analogue stick, registers its pointer handlers, and
// adds it to the stick registry.
func (m *Manager) AddStick(cfg StickConfig) *Stick {
	st := newStick(cfg, m.now, m.emitEvent)
	st.attach(m.source)
	m.sticks = append(m.sticks, st)
	m.growPointerSlots()
	return st
}

// AddDPad creates a digital 4-way joystick, registers its pointer
// handlers, and adds it to the stick registry.
func (m *Manager) AddDPad(cfg DPadConfig) *DPad {
	d := newDPad(cfg, m.now, m.emitEvent)
	d.attach(m.source)
	m.sticks = append(m.sticks, d)
	m.growPointerSlots()
	return d
}

// AddButton creates a press/release button, registers its pointer
// handlers, and adds it to the button registry.
func (m *Manager) AddButton(cfg ButtonConfig) *Button {
	b := newButton(cfg, m.now, m.emitEvent)
	b.attach(m.source)
	m.buttons = append(m.buttons, b)
	m.growPointerSlots()
	return b
}

// growPointerSlots raises the source's concurrent contact capacity so each
// control beyond the default two can bind its own simultaneous pointer.
func (m *Manager) growPointerSlots() {
	if n := len(m.sticks) + len(m.buttons); n > defaultMaxPointers {
		m.source.SetMaxPointers(n)
	}
}

// --- Removal ---

// RemoveStick destroys the stick and removes it from the registry.
func (m *Manager) RemoveStick(st *Stick) { m.removePad(st) }

// RemoveDPad destroys the dpad and removes it from the registry.
func (m *Manager) RemoveDPad(d *DPad) { m.removePad(d) }

func (m *Manager) removePad(c padControl) {
	for i, other := range m.sticks {
		if other == c {
			m.sticks = append(m.sticks[:i], m.sticks[i+1:]...)
			break
		}
	}
	c.Destroy()
}

// RemoveButton destroys the button and removes it from the registry.
func (m *Manager) RemoveButton(b *Button) {
	for i, other := range m.buttons {
		if other == b {
			m.buttons = append(m.buttons[:i], m.buttons[i+1:]...)
			break
		}
	}
	b.Destroy()
}

// --- Per-frame update ---

// Update advances the pad by one frame: it polls the pointer source
// (delivering every pending event), runs keyboard edge detection for
// bound buttons, then ticks every control in insertion order.
func (m *Manager) Update() {
	if m.destroyed {
		return
	}
	m.source.Poll()

	for _, b := range m.buttons {
		if k, ok := b.Key(); ok {
			b.pollKey(m.keyFn(k))
		}
	}

	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS // SyncWithFPS reports -1
	}
	dt := float32(1.0 / float64(tps))
	for _, c := range m.sticks {
		c.tick(dt)
	}
	for _, b := range m.buttons {
		b.tick()
	}
}

// Destroy tears down every control and the pointer source. Idempotent.
func (m *Manager) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	for _, c := range m.sticks {
		c.Destroy()
	}
	for _, b := range m.buttons {
		b.Destroy()
	}
	m.sticks = nil
	m.buttons = nil
	m.source.dispose()
}

func (m *Manager) now() time.Time { return m.clockFn() }

func (m *Manager) emitEvent(e Event) {
	if m.sink != nil {
		m.sink.EmitEvent(e)
	}
}
