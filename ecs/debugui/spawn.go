package debugui

import "github.com/plus3/laneshift/ecs"

// Target is the world the overlay inspects.
type Target struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	// Watch, if set, feeds an extra key/value panel.
	WatchTitle string
	Watch      func() []Field
}

// RegisterDebugUIComponents registers the overlay world's components.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[WatchComponent](registry)
}

// SpawnDebugUI adds the standard panels for target to the overlay world.
func SpawnDebugUI(overlay *ecs.Storage, target Target) {
	ecs.NewSingleton(overlay, ImguiInputState{})
	ecs.NewSingleton(overlay, Visibility{})

	panels := ecs.NewView[struct {
		*EntityBrowserComponent
		*PerformanceStatsComponent
		*WatchComponent
	}](overlay)
	id := panels.Spawn(struct {
		*EntityBrowserComponent
		*PerformanceStatsComponent
		*WatchComponent
	}{
		EntityBrowserComponent:    ptr(NewEntityBrowserComponent(100)),
		PerformanceStatsComponent: ptr(NewPerformanceStatsComponent(120)),
		WatchComponent:            &WatchComponent{title: target.WatchTitle, fields: target.Watch},
	})
	p := panels.Get(id)

	overlay.Spawn(ImguiItem{Render: func(dt float64) { p.PerformanceStatsComponent.Render(dt, target.Storage, target.Scheduler) }})
	overlay.Spawn(ImguiItem{Render: func(float64) { p.EntityBrowserComponent.Render(target.Storage) }})
	if target.Watch != nil {
		overlay.Spawn(ImguiItem{Render: func(float64) { p.WatchComponent.Render() }})
	}
}

func ptr[T any](v T) *T {
	return &v
}
