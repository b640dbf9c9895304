package debugui

import (
	"github.com/plus3/laneshift/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	hasSelection       bool
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	frames        int
}

type WatchComponent struct {
	title  string
	fields func() []Field
}

// Field is one label/value row.
type Field struct {
	Label string
	Value string
}
