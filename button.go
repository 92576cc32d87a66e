package vpad

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ButtonConfig describes a digital press/release control.
type ButtonConfig struct {
	Name string

	// X, Y is the button position; HitArea is tested in local coordinates
	// relative to it and scales with the button scale.
	X, Y    float64
	HitArea HitShape

	// RepeatRate re-fires the down notification at this interval while the
	// button is held. 0 disables repeat-fire.
	RepeatRate time.Duration

	Texture   string
	UpFrame   string
	DownFrame string
}

// ButtonContext carries a button's state at dispatch time. Pointer is nil
// and FromKey true when a bound key drove the transition. Duration is the
// press length, valid on up events.
type ButtonContext struct {
	Button   *Button
	Pointer  *Pointer
	Key      ebiten.Key
	FromKey  bool
	Duration time.Duration
}

// Button is a digital control independent of the stick surface: a pointer
// landing in its hit area (or a bound keyboard key) drives a simple
// down/up state machine with optional repeat-fire while held.
type Button struct {
	clock func() time.Time

	name      string
	texture   string
	upFrame   string
	downFrame string

	pos     Vec2
	hitArea HitShape
	scale   float64
	alpha   float64

	enabled bool
	visible bool
	isDown  bool

	timeDown time.Time
	timeUp   time.Time
	lastHeld time.Duration

	pointer     *Pointer
	key         ebiten.Key
	hasKey      bool
	keyWasDown  bool
	downFromKey bool

	repeatRate time.Duration
	nextRepeat time.Time

	downSig signal[ButtonContext]
	upSig   signal[ButtonContext]

	downHandle Handle
	upHandle   Handle
	destroyed  bool

	sink func(Event)
}

func newButton(cfg ButtonConfig, clock func() time.Time, sink func(Event)) *Button {
	return &Button{
		clock:      clock,
		name:       cfg.Name,
		texture:    cfg.Texture,
		upFrame:    cfg.UpFrame,
		downFrame:  cfg.DownFrame,
		pos:        Vec2{X: cfg.X, Y: cfg.Y},
		hitArea:    cfg.HitArea,
		scale:      1,
		alpha:      1,
		enabled:    true,
		visible:    true,
		repeatRate: cfg.RepeatRate,
		sink:       sink,
	}
}

// attach registers the button's handlers with the pointer source.
func (b *Button) attach(src *PointerSource) {
	b.downHandle = src.OnDown(b.checkDown)
	b.upHandle = src.OnUp(b.checkUp)
}

// --- Pointer event handlers ---

func (b *Button) checkDown(p *Pointer) {
	if b.destroyed || !b.enabled || !b.visible || b.isDown || b.hitArea == nil {
		return
	}
	lx := (p.X - b.pos.X) / b.scale
	ly := (p.Y - b.pos.Y) / b.scale
	if !b.hitArea.Contains(lx, ly) {
		return
	}
	b.pointer = p
	b.setDown(false)
}

func (b *Button) checkUp(p *Pointer) {
	if b.destroyed || p == nil || p != b.pointer {
		return
	}
	b.pointer = nil
	b.setUp(false)
}

// --- Key binding ---

// AddKey binds a keyboard key so that its press and release drive the same
// state machine; contexts carry the key instead of a pointer. Binding a
// different key unbinds the previous one first. Rebinding the same key is
// a no-op returning false.
func (b *Button) AddKey(k ebiten.Key) bool {
	if b.hasKey && b.key == k {
		return false
	}
	if b.hasKey {
		b.RemoveKey()
	}
	b.key = k
	b.hasKey = true
	return true
}

// RemoveKey unbinds the keyboard key. A press currently held through the
// key is released.
func (b *Button) RemoveKey() {
	if !b.hasKey {
		return
	}
	if b.isDown && b.downFromKey {
		b.setUp(true)
	}
	b.hasKey = false
	b.keyWasDown = false
}

// Key returns the bound key, if any.
func (b *Button) Key() (ebiten.Key, bool) {
	return b.key, b.hasKey
}

// pollKey runs the key edge detection against the current pressed state.
// Called once per frame by the Manager before the button's tick.
func (b *Button) pollKey(pressed bool) {
	if b.destroyed || !b.hasKey {
		return
	}
	switch {
	case pressed && !b.keyWasDown:
		b.keyWasDown = true
		if b.enabled && !b.isDown {
			b.setDown(true)
		}
	case !pressed && b.keyWasDown:
		b.keyWasDown = false
		if b.isDown && b.downFromKey {
			b.setUp(true)
		}
	}
}

// --- State transitions ---

func (b *Button) setDown(fromKey bool) {
	b.isDown = true
	b.downFromKey = fromKey
	b.timeDown = b.clock()
	b.timeUp = time.Time{}
	if b.repeatRate > 0 {
		b.nextRepeat = b.timeDown.Add(b.repeatRate)
	}
	b.fireDown()
}

func (b *Button) setUp(fromKey bool) {
	b.isDown = false
	b.timeUp = b.clock()
	b.lastHeld = b.timeUp.Sub(b.timeDown)
	b.fireUp(fromKey)
}

// tick re-fires the down notification while held when a repeat rate is
// set. The next fire is scheduled from the current time rather than a
// fixed interval, so it tolerates frame-rate jitter.
func (b *Button) tick() {
	if b.destroyed || !b.isDown || b.repeatRate <= 0 {
		return
	}
	now := b.clock()
	if now.Before(b.nextRepeat) {
		return
	}
	b.nextRepeat = now.Add(b.repeatRate)
	b.fireDown()
}

// --- Derived state ---

// Duration returns the time the button has been held while down, or the
// length of the last completed press while up.
func (b *Button) Duration() time.Duration {
	if b.isDown {
		return b.clock().Sub(b.timeDown)
	}
	return b.lastHeld
}

// Frame returns the skin frame matching the current state.
func (b *Button) Frame() string {
	if b.isDown {
		return b.downFrame
	}
	return b.upFrame
}

// --- Notification channels ---

// OnDown registers a callback fired on press and on every repeat-fire.
func (b *Button) OnDown(fn func(ButtonContext)) Handle { return b.downSig.connect(fn) }

// OnUp registers a callback fired on release; its context carries the
// press duration.
func (b *Button) OnUp(fn func(ButtonContext)) Handle { return b.upSig.connect(fn) }

// Destroy deregisters the button's pointer handlers and disposes its
// notification channels. Idempotent.
func (b *Button) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.downHandle.Remove()
	b.upHandle.Remove()
	b.pointer = nil
	b.downSig.dispose()
	b.upSig.dispose()
}

// --- Accessors ---

// Name returns the identifier the button was created with.
func (b *Button) Name() string { return b.name }

// Texture returns the skin texture key the renderer should use.
func (b *Button) Texture() string { return b.texture }

// Position returns the button position.
func (b *Button) Position() Vec2 { return b.pos }

// SetPosition moves the button; the hit area follows.
func (b *Button) SetPosition(x, y float64) { b.pos = Vec2{X: x, Y: y} }

// Scale returns the uniform scale factor applied to the hit area.
func (b *Button) Scale() float64 { return b.scale }

// SetScale resizes the hit area proportionally.
func (b *Button) SetScale(v float64) { b.scale = v }

// Alpha returns the opacity the renderer should draw the button with.
func (b *Button) Alpha() float64 { return b.alpha }

// SetAlpha sets the render opacity.
func (b *Button) SetAlpha(v float64) { b.alpha = v }

// Visible reports whether the button should be drawn and hit-tested.
func (b *Button) Visible() bool { return b.visible }

// SetVisible shows or hides the button.
func (b *Button) SetVisible(v bool) { b.visible = v }

// Enabled reports whether the button reacts to new presses.
func (b *Button) Enabled() bool { return b.enabled }

// SetEnabled toggles reaction to new presses. A held press still receives
// its release.
func (b *Button) SetEnabled(v bool) { b.enabled = v }

// IsDown reports whether the button is pressed.
func (b *Button) IsDown() bool { return b.isDown }

// IsUp reports the inverse of IsDown.
func (b *Button) IsUp() bool { return !b.isDown }

// TimeDown returns when the button was last pressed.
func (b *Button) TimeDown() time.Time { return b.timeDown }

// TimeUp returns when the button was last released. Zero while down.
func (b *Button) TimeUp() time.Time { return b.timeUp }

// RepeatRate returns the repeat-fire interval; 0 means disabled.
func (b *Button) RepeatRate() time.Duration { return b.repeatRate }

// SetRepeatRate sets the repeat-fire interval. Takes effect on the next
// press.
func (b *Button) SetRepeatRate(r time.Duration) { b.repeatRate = r }

// HitArea returns the hit shape in local coordinates.
func (b *Button) HitArea() HitShape { return b.hitArea }

// SetHitArea replaces the hit shape.
func (b *Button) SetHitArea(h HitShape) { b.hitArea = h }

// Pointer returns the currently bound pointer, or nil.
func (b *Button) Pointer() *Pointer { return b.pointer }

// --- Dispatch ---

func (b *Button) fireDown() {
	ctx := ButtonContext{Button: b, Pointer: b.pointer, FromKey: b.downFromKey}
	if b.downFromKey {
		ctx.Key = b.key
	}
	b.downSig.emit(ctx)
	b.emitSink(EventDown, ctx)
}

func (b *Button) fireUp(fromKey bool) {
	ctx := ButtonContext{Button: b, FromKey: fromKey, Duration: b.lastHeld}
	if fromKey {
		ctx.Key = b.key
	}
	b.upSig.emit(ctx)
	b.emitSink(EventUp, ctx)
}

func (b *Button) emitSink(t EventType, ctx ButtonContext) {
	if b.sink == nil {
		return
	}
	pid := -1
	if ctx.Pointer != nil {
		pid = ctx.Pointer.ID
	}
	b.sink(Event{
		Type:      t,
		Kind:      KindButton,
		Name:      b.name,
		PointerID: pid,
		Key:       ctx.Key,
		FromKey:   ctx.FromKey,
		Duration:  ctx.Duration,
	})
}
