package vpad

import "time"

// DPadFrames names the skin frame for each visual state of a DPad.
type DPadFrames struct {
	Neutral string
	Up      string
	Down    string
	Left    string
	Right   string
}

// DPadConfig describes a digital 4-way joystick. Geometry defaults match
// StickConfig.
type DPadConfig struct {
	Name string

	X, Y     float64
	Distance float64

	DeadZone     float64
	HandleRadius float64

	MotionLock  MotionLock
	ShowOnTouch bool
	FadeSeconds float64

	Texture string
	Frames  DPadFrames
}

// DPadContext carries a DPad's derived values at dispatch time.
type DPadContext struct {
	DPad    *DPad
	Pointer *Pointer // nil after release

	Direction Direction
	X         int
	Y         int

	Angle     float64
	AngleFull float64
	Quadrant  int
	Octant    int
}

// DPad runs the same pointer state machine as Stick but discretizes the
// output: while down, the quadrant selects one of four cardinal
// directions; while up or inside the dead zone the direction is DirNone.
type DPad struct {
	surface

	frames DPadFrames

	downSig   signal[DPadContext]
	upSig     signal[DPadContext]
	moveSig   signal[DPadContext]
	updateSig signal[DPadContext]

	sink func(Event)
}

func newDPad(cfg DPadConfig, clock func() time.Time, sink func(Event)) *DPad {
	d := &DPad{
		frames: cfg.Frames,
		sink:   sink,
	}
	d.surface = *newSurface(cfg.Name, cfg.X, cfg.Y, cfg.Distance)
	d.surface.notify = d
	d.surface.clock = clock
	d.surface.texture = cfg.Texture
	d.surface.motionLock = cfg.MotionLock
	d.surface.fadeSeconds = cfg.FadeSeconds
	if cfg.DeadZone > 0 {
		d.surface.deadZone = cfg.DeadZone
	}
	if cfg.HandleRadius > 0 {
		d.surface.handleRadius = cfg.HandleRadius
	}
	if cfg.ShowOnTouch {
		d.SetShowOnTouch(true)
	}
	return d
}

// --- Derived output ---

// Direction is a pure function of the quadrant while down: quadrant 0 is
// right, 1 down, 2 left, 3 up (screen coordinates, Y increasing downward).
// DirNone while up or tracking.
func (d *DPad) Direction() Direction {
	if !d.isDown {
		return DirNone
	}
	switch d.Quadrant() {
	case 1:
		return DirDown
	case 2:
		return DirLeft
	case 3:
		return DirUp
	}
	return DirRight
}

// X is the step value of the horizontal axis: -1, 0 or 1.
func (d *DPad) X() int {
	switch d.Direction() {
	case DirLeft:
		return -1
	case DirRight:
		return 1
	}
	return 0
}

// Y is the step value of the vertical axis: -1 (up), 0 or 1 (down).
func (d *DPad) Y() int {
	switch d.Direction() {
	case DirUp:
		return -1
	case DirDown:
		return 1
	}
	return 0
}

// Frame returns the skin frame matching the current direction.
func (d *DPad) Frame() string {
	switch d.Direction() {
	case DirUp:
		return d.frames.Up
	case DirDown:
		return d.frames.Down
	case DirLeft:
		return d.frames.Left
	case DirRight:
		return d.frames.Right
	}
	return d.frames.Neutral
}

// --- Notification channels ---

// OnDown registers a callback fired when the pad transitions to down.
func (d *DPad) OnDown(fn func(DPadContext)) Handle { return d.downSig.connect(fn) }

// OnUp registers a callback fired when the bound pointer is released.
func (d *DPad) OnUp(fn func(DPadContext)) Handle { return d.upSig.connect(fn) }

// OnMove registers a callback fired for every processed pointer movement.
func (d *DPad) OnMove(fn func(DPadContext)) Handle { return d.moveSig.connect(fn) }

// OnUpdate registers a callback fired once per frame while the pad is down.
func (d *DPad) OnUpdate(fn func(DPadContext)) Handle { return d.updateSig.connect(fn) }

// Destroy deregisters the pad's pointer handlers and disposes its
// notification channels. Idempotent.
func (d *DPad) Destroy() {
	d.surface.destroy()
	d.downSig.dispose()
	d.upSig.dispose()
	d.moveSig.dispose()
	d.updateSig.dispose()
}

// --- notifier ---

func (d *DPad) context() DPadContext {
	return DPadContext{
		DPad:      d,
		Pointer:   d.pointer,
		Direction: d.Direction(),
		X:         d.X(),
		Y:         d.Y(),
		Angle:     d.Angle(),
		AngleFull: d.AngleFull(),
		Quadrant:  d.Quadrant(),
		Octant:    d.Octant(),
	}
}

func (d *DPad) emit(t EventType, sig *signal[DPadContext]) {
	ctx := d.context()
	sig.emit(ctx)
	if d.sink == nil {
		return
	}
	pid := -1
	if ctx.Pointer != nil {
		pid = ctx.Pointer.ID
	}
	d.sink(Event{
		Type:      t,
		Kind:      KindDPad,
		Name:      d.name,
		PointerID: pid,
		AxisX:     float64(ctx.X),
		AxisY:     float64(ctx.Y),
		Angle:     ctx.Angle,
		Direction: ctx.Direction,
	})
}

func (d *DPad) fireDown()   { d.emit(EventDown, &d.downSig) }
func (d *DPad) fireUp()     { d.emit(EventUp, &d.upSig) }
func (d *DPad) fireMove()   { d.emit(EventMove, &d.moveSig) }
func (d *DPad) fireUpdate() { d.emit(EventUpdate, &d.updateSig) }
