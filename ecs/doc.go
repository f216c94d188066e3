// Package ecs provides ECS adapters for starfield's lifecycle events.
//
// The primary adapter is [NewDonburiSink], which bridges star regeneration
// events (started, superseded, applied, failed) into a [Donburi] world as
// typed events. Subscribe to [StarEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	field.SetEventSink(sink)
//	mirror := ecs.NewMirror(world, field)
//
// [NewMirror] keeps one entity per star with a [Star] component that tracks
// seed, hue and state as events are processed.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
