package vpad

import (
	"math"
	"time"
)

// StickConfig describes an analogue stick. Zero values fall back to the
// documented defaults; frame and texture identifiers are free-form strings
// resolved by the consumer's renderer.
type StickConfig struct {
	Name string

	// X, Y is the base center; Distance the travel radius.
	X, Y     float64
	Distance float64

	// DeadZone defaults to 15% of Distance. HandleRadius is the hit radius
	// around the handle (the "handle visual half-width") and defaults to
	// Distance, so the whole base circle accepts contacts.
	DeadZone     float64
	HandleRadius float64

	MotionLock  MotionLock
	ShowOnTouch bool

	// FadeSeconds animates the show-on-touch appear/disappear alpha.
	// 0 shows and hides instantly.
	FadeSeconds float64

	Texture    string
	BaseFrame  string
	StickFrame string
}

// StickContext carries a stick's derived values at dispatch time.
type StickContext struct {
	Stick   *Stick
	Pointer *Pointer // nil after release

	Force  float64
	ForceX float64
	ForceY float64
	X      float64
	Y      float64

	Angle     float64
	AngleFull float64
	Quadrant  int
	Octant    int
}

// Stick is an analogue joystick producing continuous force and direction
// output from the shared tracking surface.
type Stick struct {
	surface

	baseFrame  string
	stickFrame string

	downSig   signal[StickContext]
	upSig     signal[StickContext]
	moveSig   signal[StickContext]
	updateSig signal[StickContext]

	sink func(Event)
}

func newStick(cfg StickConfig, clock func() time.Time, sink func(Event)) *Stick {
	st := &Stick{
		baseFrame:  cfg.BaseFrame,
		stickFrame: cfg.StickFrame,
		sink:       sink,
	}
	st.surface = *newSurface(cfg.Name, cfg.X, cfg.Y, cfg.Distance)
	st.surface.notify = st
	st.surface.clock = clock
	st.surface.texture = cfg.Texture
	st.surface.motionLock = cfg.MotionLock
	st.surface.fadeSeconds = cfg.FadeSeconds
	if cfg.DeadZone > 0 {
		st.surface.deadZone = cfg.DeadZone
	}
	if cfg.HandleRadius > 0 {
		st.surface.handleRadius = cfg.HandleRadius
	}
	if cfg.ShowOnTouch {
		st.SetShowOnTouch(true)
	}
	return st
}

// --- Derived output ---

// Force is the deflection magnitude in [0, 1]: a linear ramp that reaches
// full force at half the travel distance and clamps at 1 beyond it.
// 0 while up or still tracking inside the dead zone.
func (st *Stick) Force() float64 {
	half := st.distance * st.scale / 2
	if !st.isDown || half <= 0 {
		return 0
	}
	return math.Min(1, st.lineLength()/half)
}

// X is the continuous left-right value in [-1, 1], linear in the line
// angle and independent of vertical deflection. 0 while idle.
func (st *Stick) X() float64 {
	if !st.isDown || st.lineLength() == 0 {
		return 0
	}
	return (90 - math.Abs(st.Angle())) / 90
}

// Y is the continuous up-down value in [-1, 1]; positive is screen-down.
// 0 while idle.
func (st *Stick) Y() float64 {
	if !st.isDown || st.lineLength() == 0 {
		return 0
	}
	a := st.Angle()
	if a >= 0 {
		return (90 - math.Abs(a-90)) / 90
	}
	return -(90 - math.Abs(a+90)) / 90
}

// ForceX is Force scaled by X.
func (st *Stick) ForceX() float64 { return st.Force() * st.X() }

// ForceY is Force scaled by Y.
func (st *Stick) ForceY() float64 { return st.Force() * st.Y() }

// FilterX remaps ForceX into [0, 1] centered at 0.5 and rounded to two
// decimals, for consumers that need normalized inputs such as shader
// uniforms.
func (st *Stick) FilterX() float64 { return round2((st.ForceX() + 1) / 2) }

// FilterY remaps ForceY into [0, 1] centered at 0.5, rounded to two
// decimals.
func (st *Stick) FilterY() float64 { return round2((st.ForceY() + 1) / 2) }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BaseFrame returns the skin frame for the base graphic.
func (st *Stick) BaseFrame() string { return st.baseFrame }

// StickFrame returns the skin frame for the handle graphic.
func (st *Stick) StickFrame() string { return st.stickFrame }

// --- Notification channels ---

// OnDown registers a callback fired when the stick transitions to down.
func (st *Stick) OnDown(fn func(StickContext)) Handle { return st.downSig.connect(fn) }

// OnUp registers a callback fired when the bound pointer is released.
func (st *Stick) OnUp(fn func(StickContext)) Handle { return st.upSig.connect(fn) }

// OnMove registers a callback fired for every processed pointer movement.
func (st *Stick) OnMove(fn func(StickContext)) Handle { return st.moveSig.connect(fn) }

// OnUpdate registers a callback fired once per frame while the stick is
// down — the polling-friendly alternative to OnMove.
func (st *Stick) OnUpdate(fn func(StickContext)) Handle { return st.updateSig.connect(fn) }

// Destroy deregisters the stick's pointer handlers and disposes its
// notification channels. Idempotent.
func (st *Stick) Destroy() {
	st.surface.destroy()
	st.downSig.dispose()
	st.upSig.dispose()
	st.moveSig.dispose()
	st.updateSig.dispose()
}

// --- notifier ---

func (st *Stick) context() StickContext {
	return StickContext{
		Stick:     st,
		Pointer:   st.pointer,
		Force:     st.Force(),
		ForceX:    st.ForceX(),
		ForceY:    st.ForceY(),
		X:         st.X(),
		Y:         st.Y(),
		Angle:     st.Angle(),
		AngleFull: st.AngleFull(),
		Quadrant:  st.Quadrant(),
		Octant:    st.Octant(),
	}
}

func (st *Stick) emit(t EventType, sig *signal[StickContext]) {
	ctx := st.context()
	sig.emit(ctx)
	if st.sink == nil {
		return
	}
	pid := -1
	if ctx.Pointer != nil {
		pid = ctx.Pointer.ID
	}
	st.sink(Event{
		Type:      t,
		Kind:      KindStick,
		Name:      st.name,
		PointerID: pid,
		Force:     ctx.Force,
		AxisX:     ctx.X,
		AxisY:     ctx.Y,
		Angle:     ctx.Angle,
	})
}

func (st *Stick) fireDown()   { st.emit(EventDown, &st.downSig) }
func (st *Stick) fireUp()     { st.emit(EventUp, &st.upSig) }
func (st *Stick) fireMove()   { st.emit(EventMove, &st.moveSig) }
func (st *Stick) fireUpdate() { st.emit(EventUpdate, &st.updateSig) }
