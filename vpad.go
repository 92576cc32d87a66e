package vpad

import (
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Vec2 is a 2D point or offset. The coordinate system has its origin at the
// top-left, with Y increasing downward (screen coordinates).
type Vec2 struct {
	X, Y float64
}

// DistanceTo returns the Euclidean distance between v and other.
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := other.X - v.X
	dy := other.Y - v.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleTo returns the angle in radians of the line from v to other.
// 0 points right; positive angles rotate toward screen-down.
func (v Vec2) AngleTo(other Vec2) float64 {
	return math.Atan2(other.Y-v.Y, other.X-v.X)
}

// --- Hit shapes ---

// HitShape is a hit-testable region in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Enums ---

// MotionLock restricts which axis of the pointer position a stick handle
// follows during movement.
type MotionLock uint8

const (
	LockNone       MotionLock = iota // handle follows the pointer freely
	LockHorizontal                   // handle moves horizontally only
	LockVertical                     // handle moves vertically only
)

// Direction is the discrete output of a DPad.
type Direction uint8

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "none"
}

// EventType identifies which notification channel produced an Event.
type EventType uint8

const (
	EventDown EventType = iota
	EventUp
	EventMove
	EventUpdate
)

// ControlKind identifies the type of control an Event originated from.
type ControlKind uint8

const (
	KindStick ControlKind = iota
	KindDPad
	KindButton
)

// --- Event sink ---

// Event carries flattened control state for the optional EventSink bridge.
// Stick fields are valid for KindStick, Direction for KindDPad, and
// Key/FromKey/Duration for KindButton.
type Event struct {
	Type      EventType
	Kind      ControlKind
	Name      string
	PointerID int // -1 when triggered by a key
	Force     float64
	AxisX     float64
	AxisY     float64
	Angle     float64
	Direction Direction
	Key       ebiten.Key
	FromKey   bool
	Duration  time.Duration
}

// EventSink receives every notification any control dispatches.
// Set one on a Manager to bridge pad events into an ECS or event bus.
type EventSink interface {
	EmitEvent(event Event)
}

// --- Debug logging ---

// Debug enables warning output on stderr for suspicious usage, such as
// unknown skin frame names or events after destroy.
var Debug bool

func debugf(format string, args ...any) {
	if Debug {
		log.Printf("vpad: "+format, args...)
	}
}
