package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/fixedsim/config"
	"github.com/plus3/fixedsim/content"
	"github.com/plus3/fixedsim/sim"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// countingRenderer stands in for a graphics device and only counts what it
// would have drawn.
type countingRenderer struct {
	frames    int64
	instances int64
}

func (r *countingRenderer) Render(frame *sim.RenderFrame) {
	r.frames++
	for _, b := range frame.Batches {
		r.instances += int64(len(b.Instances))
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML config file. Defaults are used when empty.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	frameTime := flag.Duration("frame", 0, "Simulated frame time. Zero feeds measured wall-clock time.")
	objects := flag.Float64("objects", -1, "Override benchmark.objects_per_second.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory: cpu or mem.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		return err
	}
	if *objects >= 0 {
		cfg.Benchmark.ObjectsPerSecond = *objects
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *profileMode)
	}

	manifest, err := content.LoadOrDefault(cfg.Content.Manifest)
	if err != nil {
		return err
	}
	prefabs, err := manifest.BuildPrefabs()
	if err != nil {
		return err
	}

	renderer := &countingRenderer{}
	world, err := sim.NewWorld(cfg, prefabs, renderer, sim.WithLogger(log))
	if err != nil {
		return err
	}

	report := &Report{
		Duration:         *duration,
		Step:             time.Duration(cfg.Sim.Step * float64(time.Second)),
		FrameTime:        *frameTime,
		ObjectsPerSecond: cfg.Benchmark.ObjectsPerSecond,
		SpawnCount:       cfg.Particles.SpawnCount,
		Workers:          cfg.Particles.Workers,
		GCPauseMetrics:   *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", *duration), zap.Duration("frame", *frameTime))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()
			if *frameTime > 0 {
				deltaTime = *frameTime
			}

			updateStart := time.Now()
			world.Frame(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Loop = world.Loop().GetStats()
	report.World = world.Stats()
	report.RenderedFrames = renderer.frames
	report.RenderedInstances = renderer.instances
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished",
		zap.Int64("frames", totalUpdates),
		zap.Uint64("ticks", report.Loop.Ticks),
		zap.Int("objects", report.World.Objects),
		zap.Int("particles", report.World.Particles),
	)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}
