package debugui

import "github.com/plus3/fixedsim/ecs"

// SpawnDebugUI registers the stats, entity browser and inspector windows on
// ui. counters is polled once per frame and may be nil.
func SpawnDebugUI(ui *ImguiSystem, loop *ecs.Loop, registry *ecs.Registry, source ComponentSource, counters func() []Counter) {
	stats := NewPerformanceStats(120)
	browser := NewEntityBrowser(100)
	inspector := NewComponentInspector(source)

	ui.Add(func() {
		var c []Counter
		if counters != nil {
			c = counters()
		}
		stats.Render(loop, c, ui.DeltaTime())
	})
	ui.Add(func() {
		browser.Render(registry)
	})
	ui.Add(func() {
		selected, ok := browser.Selected()
		inspector.Render(registry, selected, ok)
	})
}
