package ecs_test

import (
	"testing"

	"github.com/plus3/laneshift/ecs"
	"github.com/stretchr/testify/assert"
)

type spawnOnce struct {
	done bool
}

func (s *spawnOnce) Execute(frame *ecs.UpdateFrame) {
	if s.done {
		return
	}
	frame.Commands.Spawn(Position{Z: -220}, Hazard{Lane: 1})
	s.done = true
}

type countHazards struct {
	Hazards ecs.Query[struct{ *Hazard }]
	seen    []int
}

func (s *countHazards) Execute(frame *ecs.UpdateFrame) {
	s.seen = append(s.seen, s.Hazards.Len())
}

type clearHazards struct {
	Hazards ecs.Query[struct {
		ecs.EntityId
		*Hazard
	}]
}

func (s *clearHazards) Execute(frame *ecs.UpdateFrame) {
	for id := range s.Hazards.Iter() {
		frame.Commands.Delete(id)
	}
}

func TestCommandsVisibleToNextSystem(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	before := &countHazards{}
	after := &countHazards{}
	scheduler.Register(before)
	scheduler.Register(&spawnOnce{})
	scheduler.Register(after)
	scheduler.Register(&clearHazards{})

	scheduler.Once(0)
	assert.Equal(t, []int{0}, before.seen)
	assert.Equal(t, []int{1}, after.seen)
	assert.Equal(t, 0, storage.CollectStats().TotalEntityCount)
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	victim := storage.Spawn(Position{}, Pickup{Value: 1})

	var order []string
	commands := newFlushableCommands()
	commands.Spawn(Position{}, Pickup{Value: 2})
	commands.Delete(victim)
	commands.Defer(func() {
		order = append(order, "defer")
		assert.Equal(t, 1, storage.CollectStats().TotalEntityCount)
	})
	assert.Equal(t, 3, commands.Pending())

	commands.Flush(storage)
	assert.Equal(t, []string{"defer"}, order)
	assert.Equal(t, 0, commands.Pending())

	// the spawn reused the deleted slot
	pickup := ecs.ReadComponent[Pickup](storage, victim)
	if assert.NotNil(t, pickup) {
		assert.Equal(t, 2, pickup.Value)
	}
}

// newFlushableCommands borrows a command buffer from a scheduler frame.
func newFlushableCommands() *ecs.Commands {
	var captured *ecs.Commands
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(systemFunc(func(frame *ecs.UpdateFrame) { captured = frame.Commands }))
	scheduler.Once(0)
	return captured
}

type systemFunc func(frame *ecs.UpdateFrame)

func (f systemFunc) Execute(frame *ecs.UpdateFrame) { f(frame) }
