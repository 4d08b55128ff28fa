package ecs

import (
	"context"
	"math"
	"reflect"
	"slices"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultMaxCatchUp bounds the frame time accepted before clamping, in steps.
	DefaultMaxCatchUp = 4
)

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if name := systemType.Name(); name != "" {
		return name
	}
	return systemType.String()
}

// FrameResult describes what one call to Loop.Frame did.
type FrameResult struct {
	Steps       int
	Clamped     bool
	Removed     int
	Accumulator float64
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLogger sets the logger used for clamp and removal diagnostics.
func WithLogger(log *zap.Logger) LoopOption {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// WithMaxCatchUp sets how many steps worth of frame time are accepted before
// the frame is treated as a stall.
func WithMaxCatchUp(steps float64) LoopOption {
	return func(l *Loop) {
		if steps > 0 {
			l.maxCatchUp = steps
		}
	}
}

// WithRegistry attaches the entity registry drained at the end of each frame.
func WithRegistry(registry *Registry, remover Remover) LoopOption {
	return func(l *Loop) {
		l.registry = registry
		l.remover = remover
	}
}

// Loop advances tick systems by a constant step an integer number of times per
// frame, then runs frame systems once, then applies queued entity removals.
//
// Frame time is accumulated in whole nanoseconds, so frame times that are
// exact multiples of the step leave nothing behind. Systems still receive
// the step in seconds as configured.
type Loop struct {
	step        float64
	stepNanos   time.Duration
	maxCatchUp  float64
	accumulator time.Duration

	tick  phaseSystems
	frame phaseSystems
	input func(frame *UpdateFrame)

	registry *Registry
	remover  Remover

	ticks   uint64
	frames  uint64
	clamped uint64
	removed uint64

	log *zap.Logger
}

// NewLoop creates a loop with the given fixed step in seconds.
func NewLoop(step float64, opts ...LoopOption) *Loop {
	if step <= 0 {
		panic("ecs: loop step must be positive")
	}
	l := &Loop{
		step:       step,
		stepNanos:  toDuration(step),
		maxCatchUp: DefaultMaxCatchUp,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddTickSystem registers a system run once per fixed step, in registration order.
func (l *Loop) AddTickSystem(system System) {
	l.tick.register(system, PhaseTick)
}

// AddFrameSystem registers a system run once per frame after all steps, in
// registration order.
func (l *Loop) AddFrameSystem(system System) {
	l.frame.register(system, PhaseFrame)
}

// SetInput sets the hook applied once per fixed step after the tick systems.
func (l *Loop) SetInput(fn func(frame *UpdateFrame)) {
	l.input = fn
}

// Frame advances the simulation by dt seconds of real time.
func (l *Loop) Frame(dt float64) FrameResult {
	var result FrameResult
	if dt < 0 {
		dt = 0
	}

	accumulated := toDuration(dt)
	if dt > l.step*l.maxCatchUp {
		l.log.Debug("frame time clamped", zap.Float64("dt", dt), zap.Float64("step", l.step))
		accumulated = l.stepNanos
		result.Clamped = true
		l.clamped++
	}
	l.accumulator += accumulated

	for l.accumulator >= l.stepNanos {
		l.ticks++
		frame := newUpdateFrame(l.step, l.ticks, true, l.registry)
		l.tick.run(frame)
		if l.input != nil {
			l.input(frame)
		}
		l.accumulator -= l.stepNanos
		result.Steps++
	}

	l.frames++
	l.frame.run(newUpdateFrame(dt, l.ticks, false, l.registry))

	if l.registry != nil && l.remover != nil {
		result.Removed = l.registry.FinalizeRemovals(l.remover)
		if result.Removed > 0 {
			l.removed += uint64(result.Removed)
			l.log.Debug("entities removed", zap.Int("count", result.Removed), zap.Uint64("frame", l.frames))
		}
	}

	result.Accumulator = l.accumulator.Seconds()
	return result
}

// toDuration rounds seconds to the nearest nanosecond.
func toDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// Run calls Frame with the measured wall-clock delta at the given interval
// until the context is cancelled.
func (l *Loop) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			l.Frame(dt)
		}
	}
}

// Step returns the fixed step in seconds.
func (l *Loop) Step() float64 {
	return l.step
}

// Accumulator returns the real time not yet consumed by fixed steps, in
// seconds.
func (l *Loop) Accumulator() float64 {
	return l.accumulator.Seconds()
}

// Ticks returns the number of fixed steps executed.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// Frames returns the number of frames executed.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// GetStats returns a snapshot of loop counters and per-system timings. Tick
// systems are listed before frame systems.
func (l *Loop) GetStats() *LoopStats {
	stats := &LoopStats{
		Ticks:           l.ticks,
		Frames:          l.frames,
		ClampedFrames:   l.clamped,
		RemovedEntities: l.removed,
		Systems:         slices.Concat(l.tick.stats, l.frame.stats),
	}
	stats.SystemCount = len(stats.Systems)
	for _, s := range stats.Systems {
		stats.TotalExecutions += s.ExecutionCount
	}
	return stats
}
