package ecs

import (
	"iter"
	"slices"
)

// Query is a View whose matching archetypes and per-frame results are
// cached. The Scheduler refreshes a system's queries right before the system
// runs, so Iter reflects every structural change made by earlier systems.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a Query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops all caches.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the result cache from the current storage contents.
func (q *Query[T]) Execute() {
	if n := len(q.storage.ordered); n != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.ordered {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.lastArchetypeCount = n
	}

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, item)
		}
	}

	q.cacheValid = true
}

// Iter yields the cached (EntityId, T) pairs.
// Panics if Execute has not run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustBeExecuted()
	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Backward yields the cached pairs in reverse order.
func (q *Query[T]) Backward() iter.Seq2[EntityId, T] {
	q.mustBeExecuted()
	return func(yield func(EntityId, T) bool) {
		for i := len(q.cachedEntities) - 1; i >= 0; i-- {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values yields only the cached view structs.
func (q *Query[T]) Values() iter.Seq[T] {
	q.mustBeExecuted()
	return slices.Values(q.cachedComponents)
}

// Len returns the number of cached results.
func (q *Query[T]) Len() int {
	q.mustBeExecuted()
	return len(q.cachedEntities)
}

// SortFunc orders the cached results in place for the rest of the frame.
func (q *Query[T]) SortFunc(cmp func(a, b T) int) {
	q.mustBeExecuted()
	idx := make([]int, len(q.cachedComponents))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp(q.cachedComponents[a], q.cachedComponents[b])
	})

	entities := make([]EntityId, len(idx))
	components := make([]T, len(idx))
	for to, from := range idx {
		entities[to] = q.cachedEntities[from]
		components[to] = q.cachedComponents[from]
	}
	q.cachedEntities = entities
	q.cachedComponents = components
}

func (q *Query[T]) mustBeExecuted() {
	if !q.cacheValid {
		panic("Query used before Query.Execute()")
	}
}
