package ecs_test

import (
	"testing"

	"github.com/plus3/laneshift/ecs"
)

func BenchmarkSpawnDelete(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := storage.Spawn(Position{Z: -220}, Hazard{Lane: i % 3})
		storage.Delete(id)
	}
}

func BenchmarkQueryExecute(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := range 256 {
		storage.Spawn(Position{Z: float64(-i)}, Hazard{Lane: i % 3})
		storage.Spawn(Position{Z: float64(-i)}, Pickup{Value: 50})
	}

	query := ecs.NewQuery[struct {
		*Position
		*Hazard
	}](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		query.Execute()
	}
}

func BenchmarkSchedulerOnce(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := range 256 {
		storage.Spawn(Position{Z: float64(-i)}, Drift{DZ: 1})
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&DriftSystem{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheduler.Once(1.0 / 60)
	}
}
