package vpad

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// deadZoneRatio is the default dead-zone radius as a fraction of the travel
// distance. Independently settable afterwards; changing the distance later
// never re-derives it.
const deadZoneRatio = 0.15

// notifier formats surface transitions into control-specific contexts.
// Stick and DPad implement it; the surface itself never builds payloads.
type notifier interface {
	fireDown()
	fireUp()
	fireMove()
	fireUpdate()
}

// surface is the pointer-tracking state machine shared by Stick and DPad:
// base/handle geometry, dead-zone handling, the tracking sub-state, and the
// angle/quadrant/octant derivation. All derived values are computed on
// demand from the tracking line so a reset line yields a clean idle state.
type surface struct {
	notify notifier
	source *PointerSource
	clock  func() time.Time

	name    string
	texture string

	base    Vec2 // center of the base circle
	handle  Vec2 // current handle position
	lineEnd Vec2 // pointer position with per-axis motion lock applied

	distance     float64 // travel radius
	deadZone     float64
	handleRadius float64 // hit radius around the handle
	scale        float64

	motionLock  MotionLock
	showOnTouch bool
	fadeSeconds float64

	enabled  bool
	visible  bool
	isDown   bool
	tracking bool

	alpha     float64
	fade      *gween.Tween
	fadingOut bool

	timeDown time.Time
	timeUp   time.Time

	pointer *Pointer

	downHandle Handle
	upHandle   Handle
	moveHandle Handle
	destroyed  bool
}

func newSurface(name string, x, y, distance float64) *surface {
	return &surface{
		name:         name,
		base:         Vec2{X: x, Y: y},
		handle:       Vec2{X: x, Y: y},
		lineEnd:      Vec2{X: x, Y: y},
		distance:     distance,
		deadZone:     distance * deadZoneRatio,
		handleRadius: distance,
		scale:        1,
		alpha:        1,
		enabled:      true,
		visible:      true,
		clock:        time.Now,
	}
}

// attach registers the surface's handlers with the pointer source.
func (s *surface) attach(src *PointerSource) {
	s.source = src
	s.downHandle = src.OnDown(s.checkDown)
	s.upHandle = src.OnUp(s.checkUp)
	s.moveHandle = src.OnMove(s.checkMove)
}

// --- Pointer event handlers ---

// checkDown engages the surface on a qualifying contact. Show-on-touch
// controls warp to the contact and go down immediately; otherwise the
// contact must land in the handle's hit circle, entering the tracking
// sub-state while still inside the dead zone.
func (s *surface) checkDown(p *Pointer) {
	if s.destroyed || !s.enabled || s.isDown || s.pointer != nil {
		return
	}
	if s.showOnTouch && !s.visible {
		s.pointer = p
		s.base = p.Position()
		s.handle = s.base
		s.lineEnd = s.base
		s.show()
		s.setDown()
		return
	}
	if !s.visible {
		return
	}
	hitArea := HitCircle{CenterX: s.handle.X, CenterY: s.handle.Y, Radius: s.handleRadius * s.scale}
	if !hitArea.Contains(p.X, p.Y) {
		return
	}
	s.pointer = p
	s.updateLine(p)
	if s.lineLength() <= s.deadZone*s.scale {
		s.tracking = true
		return
	}
	s.setDown()
	s.placeHandle()
}

// checkUp releases the surface. Only the bound pointer may release it;
// anything else is a stale reference and is silently ignored.
func (s *surface) checkUp(p *Pointer) {
	if s.destroyed || p == nil || p != s.pointer {
		return
	}
	s.pointer = nil
	s.tracking = false
	s.isDown = false
	s.timeUp = s.clock()
	s.handle = s.base
	s.lineEnd = s.base
	if s.showOnTouch {
		s.hide()
	}
	s.notify.fireUp()
}

// checkMove recomputes the tracking line and handle for a movement of the
// bound pointer. Inside the dead zone a not-yet-down surface stays idle;
// a tracking surface that crosses the dead zone is promoted to down.
func (s *surface) checkMove(p *Pointer) {
	if s.destroyed || p == nil || p != s.pointer {
		return
	}
	if !s.isDown && !s.tracking {
		return
	}
	s.updateLine(p)
	if !s.isDown {
		if s.lineLength() <= s.deadZone*s.scale {
			return
		}
		s.setDown()
	}
	s.placeHandle()
	s.notify.fireMove()
}

// setDown transitions from idle or tracking to down.
func (s *surface) setDown() {
	s.isDown = true
	s.tracking = false
	s.timeDown = s.clock()
	s.timeUp = time.Time{}
	s.notify.fireDown()
}

// updateLine moves the tracking line's endpoint to the pointer position,
// pinning the locked axis to the base.
func (s *surface) updateLine(p *Pointer) {
	end := p.Position()
	switch s.motionLock {
	case LockHorizontal:
		end.Y = s.base.Y
	case LockVertical:
		end.X = s.base.X
	}
	s.lineEnd = end
}

// placeHandle follows the pointer inside the base circle and clamps the
// handle radially to the circumference beyond it, so the handle never
// exceeds the travel distance.
func (s *surface) placeHandle() {
	r := s.distance * s.scale
	if s.lineLength() < r {
		s.handle = s.lineEnd
		return
	}
	a := s.angleRadians()
	s.handle = Vec2{X: s.base.X + math.Cos(a)*r, Y: s.base.Y + math.Sin(a)*r}
}

// tick runs once per frame after all pointer events have been delivered.
// While down (and not merely tracking) it fires the polling-friendly
// update notification.
func (s *surface) tick(dt float32) {
	if s.destroyed {
		return
	}
	if s.fade != nil {
		v, done := s.fade.Update(dt)
		s.alpha = float64(v)
		if done {
			if s.fadingOut {
				s.visible = false
			}
			s.fade = nil
		}
	}
	if s.isDown && !s.tracking {
		s.notify.fireUpdate()
	}
}

func (s *surface) show() {
	s.visible = true
	if s.fadeSeconds > 0 {
		s.fade = gween.New(float32(s.alpha), 1, float32(s.fadeSeconds), ease.OutQuad)
		s.fadingOut = false
		return
	}
	s.alpha = 1
}

func (s *surface) hide() {
	if s.fadeSeconds > 0 {
		s.fade = gween.New(float32(s.alpha), 0, float32(s.fadeSeconds), ease.OutQuad)
		s.fadingOut = true
		return
	}
	s.alpha = 0
	s.visible = false
}

// destroy deregisters the pointer handlers and drops the bound pointer.
// Idempotent; subsequent pointer events produce no state change.
func (s *surface) destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.downHandle.Remove()
	s.upHandle.Remove()
	s.moveHandle.Remove()
	s.pointer = nil
	s.fade = nil
}

// --- Derived geometry ---

func (s *surface) lineLength() float64 {
	return s.base.DistanceTo(s.lineEnd)
}

func (s *surface) angleRadians() float64 {
	return s.base.AngleTo(s.lineEnd)
}

// Angle returns the angle of the base-to-pointer line in degrees, in
// (-180, 180]. 0 points right; positive angles rotate toward screen-down.
func (s *surface) Angle() float64 {
	return s.angleRadians() * 180 / math.Pi
}

// AngleFull returns the line angle shifted into [0, 360).
func (s *surface) AngleFull() float64 {
	a := s.Angle()
	if a < 0 {
		a += 360
	}
	return a
}

// Quadrant buckets AngleFull into four half-open 90-degree sectors offset
// by 45 degrees: [45,135) is 1, [135,225) is 2, [225,315) is 3, the rest
// is 0. In screen coordinates 0 faces right, 1 down, 2 left, 3 up.
func (s *surface) Quadrant() int {
	return quadrantOf(s.AngleFull())
}

// Octant returns AngleFull rounded to the nearest multiple of 45 degrees,
// normalized into [0, 360).
func (s *surface) Octant() int {
	return octantOf(s.AngleFull())
}

func quadrantOf(angleFull float64) int {
	switch {
	case angleFull >= 45 && angleFull < 135:
		return 1
	case angleFull >= 135 && angleFull < 225:
		return 2
	case angleFull >= 225 && angleFull < 315:
		return 3
	}
	return 0
}

func octantOf(angleFull float64) int {
	return int(math.Round(angleFull/45)) * 45 % 360
}

// --- Accessors ---

// Name returns the identifier the control was created with.
func (s *surface) Name() string { return s.name }

// Texture returns the skin texture key the renderer should use.
func (s *surface) Texture() string { return s.texture }

// Position returns the base center.
func (s *surface) Position() Vec2 { return s.base }

// SetPosition moves the base center, translating the handle and tracking
// line with it.
func (s *surface) SetPosition(x, y float64) {
	dx := x - s.base.X
	dy := y - s.base.Y
	s.base = Vec2{X: x, Y: y}
	s.handle.X += dx
	s.handle.Y += dy
	s.lineEnd.X += dx
	s.lineEnd.Y += dy
}

// HandlePosition returns the current handle position. While up this is the
// base center; while engaged it follows the pointer, clamped to the base
// circle.
func (s *surface) HandlePosition() Vec2 { return s.handle }

// Distance returns the configured travel radius.
func (s *surface) Distance() float64 { return s.distance }

// SetDistance sets the travel radius. The dead zone is not rescaled.
func (s *surface) SetDistance(v float64) { s.distance = v }

// DeadZone returns the dead-zone radius.
func (s *surface) DeadZone() float64 { return s.deadZone }

// SetDeadZone sets the dead-zone radius independently of the distance.
func (s *surface) SetDeadZone(v float64) { s.deadZone = v }

// Scale returns the uniform scale factor applied to all radii.
func (s *surface) Scale() float64 { return s.scale }

// SetScale sets the uniform scale factor. Hit areas and travel limits
// resize proportionally; the renderer should scale visuals to match.
func (s *surface) SetScale(v float64) { s.scale = v }

// Alpha returns the opacity the renderer should draw the control with.
func (s *surface) Alpha() float64 { return s.alpha }

// SetAlpha sets the render opacity. Does not affect hit testing.
func (s *surface) SetAlpha(v float64) { s.alpha = v }

// Visible reports whether the control should be drawn and hit-tested.
func (s *surface) Visible() bool { return s.visible }

// SetVisible shows or hides the control immediately, without fading.
func (s *surface) SetVisible(v bool) { s.visible = v }

// Enabled reports whether the control reacts to new contacts.
func (s *surface) Enabled() bool { return s.enabled }

// SetEnabled toggles reaction to new contacts. A control that is already
// down still receives its move and up events so it cannot get stuck.
func (s *surface) SetEnabled(v bool) { s.enabled = v }

// IsDown reports whether the control is engaged beyond the dead zone.
func (s *surface) IsDown() bool { return s.isDown }

// IsUp reports the inverse of IsDown. Exactly one of the two is true.
func (s *surface) IsUp() bool { return !s.isDown }

// IsTracking reports the transient sub-state after a qualifying contact
// but before the dead zone has been exceeded.
func (s *surface) IsTracking() bool { return s.tracking }

// TimeDown returns when the control last went down.
func (s *surface) TimeDown() time.Time { return s.timeDown }

// TimeUp returns when the control last went up. Zero while down.
func (s *surface) TimeUp() time.Time { return s.timeUp }

// MotionLock returns the axis constraint.
func (s *surface) MotionLock() MotionLock { return s.motionLock }

// SetMotionLock constrains handle movement to one axis.
func (s *surface) SetMotionLock(l MotionLock) { s.motionLock = l }

// ShowOnTouch reports whether the control hides until touched.
func (s *surface) ShowOnTouch() bool { return s.showOnTouch }

// SetShowOnTouch toggles show-on-touch mode. Enabling it hides the control
// until the next contact warps it into place.
func (s *surface) SetShowOnTouch(v bool) {
	s.showOnTouch = v
	if v && s.visible {
		s.visible = false
		s.alpha = 0
	}
}

// Pointer returns the currently bound pointer, or nil.
func (s *surface) Pointer() *Pointer { return s.pointer }
