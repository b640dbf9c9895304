package ecs_test

import (
	"testing"

	"github.com/plus3/laneshift/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleton(t *testing.T) {
	t.Run("initializer used once", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())

		first := ecs.NewSingleton[Tally](storage, Tally{Count: 1})
		second := ecs.NewSingleton[Tally](storage, Tally{Count: 99})

		assert.Equal(t, 1, second.Get().Count)
		assert.Same(t, first.Get(), second.Get())
	})

	t.Run("set keeps pointer stable", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		tally := ecs.NewSingleton[Tally](storage)
		ptr := tally.Get()

		tally.Set(Tally{Count: 5})
		assert.Same(t, ptr, tally.Get())
		assert.Equal(t, 5, ptr.Count)

		storage.AddSingleton(Tally{Count: 6})
		assert.Equal(t, 6, ptr.Count)
	})

	t.Run("unbound accessor", func(t *testing.T) {
		var tally ecs.Singleton[Tally]
		assert.Nil(t, tally.Get())
		assert.False(t, tally.Exists())

		storage := ecs.NewStorage(newTestRegistry())
		tally.Init(storage)
		assert.False(t, tally.Exists())

		tally.Set(Tally{Count: 3})
		require.True(t, tally.Exists())
		assert.Equal(t, 3, tally.Get().Count)
	})

	t.Run("read singleton", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())

		var tally *Tally
		assert.False(t, storage.ReadSingleton(&tally))

		ecs.NewSingleton[Tally](storage, Tally{Count: 4})
		require.True(t, storage.ReadSingleton(&tally))
		assert.Equal(t, 4, tally.Count)

		assert.Panics(t, func() { storage.ReadSingleton(tally) })
	})
}
