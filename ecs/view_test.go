package ecs_test

import (
	"testing"

	"github.com/plus3/laneshift/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(&Position{X: 1, Y: 2}, Label("rock"))

	view := ecs.NewView[struct {
		*Position
		*Label
	}](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, Label("rock"), *item.Label)
	assert.Equal(t, 1.0, item.Position.X)
	assert.Equal(t, 2.0, item.Position.Y)
}

func TestViewMissingComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(&Position{X: 5})

	view := ecs.NewView[struct {
		*Position
		*Drift
	}](storage)

	assert.Nil(t, view.Get(id))
}

func TestViewWritesThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{Z: -10}, Drift{DZ: 4})

	view := ecs.NewView[struct {
		*Position
		*Drift
	}](storage)

	for item := range view.Values() {
		item.Position.Z += item.Drift.DZ
	}

	assert.Equal(t, -6.0, ecs.ReadComponent[Position](storage, id).Z)
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	want := storage.Spawn(Position{}, Hazard{Lane: 2})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Hazard
	}](storage)

	found := 0
	for id, item := range view.Iter() {
		assert.Equal(t, want, id)
		assert.Equal(t, want, item.EntityId)
		found++
	}
	assert.Equal(t, 1, found)

	named := ecs.NewView[struct {
		Id     ecs.EntityId
		Hazard *Hazard
	}](storage)
	item := named.Get(want)
	require.NotNil(t, item)
	assert.Equal(t, want, item.Id)
}

func TestViewOptional(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{Z: 1}, Hazard{Lane: 0})
	storage.Spawn(Position{Z: 2}, Pickup{Value: 50})
	storage.Spawn(Position{Z: 3})

	view := ecs.NewView[struct {
		*Position
		Hazard *Hazard `ecs:"optional"`
		Pickup *Pickup `ecs:"optional"`
	}](storage)

	hazards, pickups, plain := 0, 0, 0
	for item := range view.Values() {
		switch {
		case item.Hazard != nil:
			hazards++
		case item.Pickup != nil:
			pickups++
		default:
			plain++
		}
	}

	assert.Equal(t, 1, hazards)
	assert.Equal(t, 1, pickups)
	assert.Equal(t, 1, plain)
	assert.Equal(t, 3, view.Count())
}

func TestViewSkipsDeleted(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Position{}, Pickup{})
	b := storage.Spawn(Position{}, Pickup{})
	storage.Delete(a)

	view := ecs.NewView[struct{ *Pickup }](storage)
	assert.Nil(t, view.Get(a))
	assert.NotNil(t, view.Get(b))
	assert.Equal(t, 1, view.Count())
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	view := ecs.NewView[struct {
		*Position
		Drift *Drift `ecs:"optional"`
	}](storage)

	with := view.Spawn(struct {
		*Position
		Drift *Drift `ecs:"optional"`
	}{Position: &Position{Z: 1}, Drift: &Drift{DZ: 2}})
	without := view.Spawn(struct {
		*Position
		Drift *Drift `ecs:"optional"`
	}{Position: &Position{Z: 3}})

	assert.NotEqual(t, with.ArchetypeId(), without.ArchetypeId())
	assert.Equal(t, 2.0, ecs.ReadComponent[Drift](storage, with).DZ)
	assert.Nil(t, ecs.ReadComponent[Drift](storage, without))
}

func TestViewPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			A ecs.EntityId
			B ecs.EntityId
		}](storage)
	})
}
