package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/fixedsim/ecs"
	"github.com/plus3/fixedsim/sim"
)

type Report struct {
	// Configuration
	Duration         time.Duration
	Step             time.Duration
	FrameTime        time.Duration
	ObjectsPerSecond float64
	SpawnCount       int
	Workers          int

	// Results
	TotalUpdates      int64
	TotalTime         time.Duration
	UpdateTime        Stats
	Loop              *ecs.LoopStats
	World             sim.Stats
	RenderedFrames    int64
	RenderedInstances int64
	GCPauseMetrics    bool
	MemStatsStart     runtime.MemStats
	MemStatsEnd       runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Simulation Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Fixed Step:** {{.Step}}
- **Frame Time:** {{if .FrameTime}}{{.FrameTime}}{{else}}wall clock{{end}}
- **Objects Per Second:** {{.ObjectsPerSecond}}
- **Particles Per Update:** {{.SpawnCount}} ({{.Workers}} workers)

## Performance Results
- **Total Frames:** {{.TotalUpdates}}
- **Total Ticks:** {{.Loop.Ticks}} ({{.Loop.ClampedFrames}} clamped frames)
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems
| System | Phase | Runs | Avg | Max | Share |
|---|---|---|---|---|---|
{{- $total := systemsTotal .Loop}}
{{- range .Loop.Systems}}
| {{.Name}} | {{.Phase}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} | {{share .TotalDuration $total}} |
{{- end}}

## World
- **Entities:** {{.World.Entities}}
- **Objects:** {{.World.Objects}}
- **Particles:** {{.World.Particles}}
- **Occupied Cells:** {{.World.OccupiedCells}}
- **Contacts (last tick):** {{.World.Contacts}}
- **Pickups:** {{.World.Pickups}}
- **Removed Entities:** {{.Loop.RemovedEntities}}
- **Rendered Instances:** {{.RenderedInstances}} over {{.RenderedFrames}} frames

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"systemsTotal": func(stats *ecs.LoopStats) time.Duration {
			var total time.Duration
			for _, s := range stats.Systems {
				total += s.TotalDuration
			}
			return total
		},
		"share": func(d, total time.Duration) string {
			if total == 0 {
				return "-"
			}
			return fmt.Sprintf("%.1f%%", 100*float64(d)/float64(total))
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
