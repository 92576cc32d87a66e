// Package ecs provides ECS adapters for vpad.
package ecs

import (
	"github.com/phanxgames/vpad"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PadEventType is the Donburi event type for vpad control events.
// Subscribe to this in your ECS systems to receive stick, dpad, and button
// notifications.
var PadEventType = events.NewEventType[vpad.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Control
// events are published to PadEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) vpad.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event vpad.Event) {
	PadEventType.Publish(s.world, event)
}
