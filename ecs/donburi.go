package ecs

import (
	"github.com/phanxgames/starfield"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// StarEventType is the Donburi event type for starfield lifecycle events.
var StarEventType = events.NewEventType[starfield.StarEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on StarEventType and delivered by ProcessEvents, so handlers run
// wherever the world is processed rather than inside Field.Update.
func NewDonburiSink(world donburi.World) starfield.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event starfield.StarEvent) {
	StarEventType.Publish(s.world, event)
}
