// Package ecs provides ECS adapters for scratchoff's component events.
//
// The primary adapter is [NewDonburiSink], which bridges surface and carousel
// events (strokes, coverage samples, reveal, resize, carousel moves) into a
// [Donburi] world as typed events. Subscribe to [ScratchEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	surface.SetEventSink(sink)
//	carousel.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
