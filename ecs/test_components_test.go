package ecs_test

import "github.com/plus3/laneshift/ecs"

// Test components shaped after the runner's world.
type Position struct {
	X, Y, Z float64
}

type Drift struct {
	DZ float64
}

type Hazard struct {
	Lane int
}

type Pickup struct {
	Value int
}

type Label string

type Tally struct {
	Count int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Drift](registry)
	ecs.RegisterComponent[Hazard](registry)
	ecs.RegisterComponent[Pickup](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[int](registry)
	ecs.RegisterComponent[string](registry)
	ecs.RegisterComponent[float64](registry)
	return registry
}
