package ecs

import (
	"github.com/phanxgames/scratchoff"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ScratchEventType is the Donburi event type for scratchoff component events.
var ScratchEventType = events.NewEventType[scratchoff.Event]()

type donburiSink struct {
	world donburi.World
	types map[scratchoff.EventType]bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to ScratchEventType and delivered by ProcessEvents. When types
// are given, only those kinds are forwarded.
func NewDonburiSink(world donburi.World, types ...scratchoff.EventType) scratchoff.EventSink {
	s := &donburiSink{world: world}
	if len(types) > 0 {
		s.types = make(map[scratchoff.EventType]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
	return s
}

func (s *donburiSink) EmitEvent(event scratchoff.Event) {
	if s.types != nil && !s.types[event.Type] {
		return
	}
	ScratchEventType.Publish(s.world, event)
}
