package ecs

import (
	"github.com/phanxgames/starfield"

	"github.com/yohamta/donburi"
)

// StarData mirrors one star's lifecycle into the ECS world.
type StarData struct {
	Index     int
	Seed      int32
	Hue       float32
	State     starfield.StarState
	LastEvent starfield.EventType
	Tick      uint64
	Applied   int
	Failed    int
}

// Star is the component holding StarData.
var Star = donburi.NewComponentType[StarData]()

// Mirror keeps one entity per star in step with the field. Entities are
// updated when StarEventType events are processed, not when they are emitted.
type Mirror struct {
	entities []donburi.Entity
}

// NewMirror creates an entity for every star of field, seeded from its
// current state, and subscribes to StarEventType in world. Pair it with a
// sink from NewDonburiSink on the same world.
func NewMirror(world donburi.World, field *starfield.Field) *Mirror {
	m := &Mirror{}
	for _, s := range field.Stars() {
		e := world.Create(Star)
		Star.SetValue(world.Entry(e), StarData{
			Index: s.Index(),
			Seed:  s.Seed(),
			Hue:   s.Hue(),
			State: s.State(),
		})
		m.entities = append(m.entities, e)
	}
	StarEventType.Subscribe(world, m.apply)
	return m
}

// Entity returns the entity mirroring star i.
func (m *Mirror) Entity(i int) (donburi.Entity, bool) {
	if i < 0 || i >= len(m.entities) {
		return 0, false
	}
	return m.entities[i], true
}

// Data returns a copy of star i's mirrored state.
func (m *Mirror) Data(world donburi.World, i int) (StarData, bool) {
	e, ok := m.Entity(i)
	if !ok || !world.Valid(e) {
		return StarData{}, false
	}
	return *Star.Get(world.Entry(e)), true
}

func (m *Mirror) apply(w donburi.World, ev starfield.StarEvent) {
	e, ok := m.Entity(ev.Star)
	if !ok || !w.Valid(e) {
		return
	}
	d := Star.Get(w.Entry(e))
	d.State = ev.State
	d.LastEvent = ev.Type
	d.Tick = ev.Tick
	switch ev.Type {
	case starfield.EventRegenerationApplied:
		d.Seed = ev.Seed
		d.Hue = ev.Hue
		d.Applied++
	case starfield.EventRegenerationFailed:
		d.Failed++
	}
}
