package ecs

import "time"

// Phase tells tick systems from frame systems in stats.
type Phase int

const (
	PhaseTick Phase = iota
	PhaseFrame
)

func (p Phase) String() string {
	if p == PhaseTick {
		return "tick"
	}
	return "frame"
}

// LoopStats is a snapshot of a loop's counters and per-system timings.
type LoopStats struct {
	Ticks           uint64
	Frames          uint64
	ClampedFrames   uint64
	RemovedEntities uint64
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats holds the run count and timings of one registered system.
// Durations are zero until the system has run.
type SystemStats struct {
	Name           string
	Phase          Phase
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

func (s *SystemStats) observe(d time.Duration) {
	if s.ExecutionCount == 0 || d < s.MinDuration {
		s.MinDuration = d
	}
	s.MaxDuration = max(s.MaxDuration, d)
	s.ExecutionCount++
	s.LastDuration = d
	s.TotalDuration += d
	s.AvgDuration = s.TotalDuration / time.Duration(s.ExecutionCount)
}

// phaseSystems runs the systems of one phase in order and times each call.
type phaseSystems struct {
	systems []System
	stats   []SystemStats
}

func (p *phaseSystems) register(system System, phase Phase) {
	p.systems = append(p.systems, system)
	p.stats = append(p.stats, SystemStats{Name: systemName(system), Phase: phase})
}

func (p *phaseSystems) run(frame *UpdateFrame) {
	for i, system := range p.systems {
		start := time.Now()
		system.Execute(frame)
		p.stats[i].observe(time.Since(start))
	}
}
