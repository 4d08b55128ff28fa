package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/fixedsim/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := config.Defaults()
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 1.0/60.0, cfg.Sim.Step, 1e-12)
	assert.Equal(t, 4.0, cfg.Sim.MaxCatchUp)
	assert.Equal(t, 200, cfg.Particles.SpawnCount)
	assert.InDelta(t, 0.002, cfg.Particles.DeathChance, 1e-12)
	assert.Equal(t, [3]float32{-100, 0, -100}, cfg.Particles.BoundsMin)
	assert.Equal(t, float32(20), cfg.Player.Speed)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[sim]
step = 0.02
seed = 42

[particles]
spawn_count = 50
bounds_max = [10.0, 10.0, 10.0]

[logging]
level = "debug"
format = "json"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.02, cfg.Sim.Step)
	assert.Equal(t, uint64(42), cfg.Sim.Seed)
	assert.Equal(t, 4.0, cfg.Sim.MaxCatchUp)
	assert.Equal(t, 50, cfg.Particles.SpawnCount)
	assert.Equal(t, [3]float32{10, 10, 10}, cfg.Particles.BoundsMax)
	assert.Equal(t, [3]float32{-100, 0, -100}, cfg.Particles.BoundsMin)
	assert.Equal(t, float32(10), cfg.Collision.CellSize)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "[sim\nstep = "))
		assert.ErrorContains(t, err, "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "[sim]\nstep = 0.0\n"))
		assert.ErrorIs(t, err, config.ErrInvalidStep)

		_, err = config.Load(writeConfig(t, "[collision]\ncell_size = -1.0\n"))
		assert.ErrorIs(t, err, config.ErrInvalidCellSize)
	})
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := config.LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		err    error
	}{
		{"catch-up below one", func(c *config.Config) { c.Sim.MaxCatchUp = 0.5 }, config.ErrInvalidCatchUp},
		{"chance above one", func(c *config.Config) { c.Particles.DeathChance = 1.5 }, config.ErrInvalidChance},
		{"inverted bounds", func(c *config.Config) { c.Particles.BoundsMin[1] = 200 }, config.ErrInvalidBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.err)
		})
	}

	t.Run("worker count is floored at one", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.Particles.Workers = 0
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 1, cfg.Particles.Workers)
	})
}

func TestNewLogger(t *testing.T) {
	log, err := config.NewLogger(config.LoggingConfig{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))

	log, err = config.NewLogger(config.LoggingConfig{Level: "bogus", Format: "json"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}
