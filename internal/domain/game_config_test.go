package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGameConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultGameConfig().Validate())
}

func TestGameConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *GameConfig)
	}{
		{"narrow", func(c *GameConfig) { c.Width = 5 }},
		{"tall", func(c *GameConfig) { c.Height = 500 }},
		{"stopped", func(c *GameConfig) { c.BaseSpeed = 0 }},
		{"max below base", func(c *GameConfig) { c.MaxSpeed = c.BaseSpeed - 1 }},
		{"negative step", func(c *GameConfig) { c.SpeedStep = -0.5 }},
		{"NaN base speed", func(c *GameConfig) { c.BaseSpeed = math.NaN() }},
		{"infinite base speed", func(c *GameConfig) { c.BaseSpeed = math.Inf(1); c.MaxSpeed = math.Inf(1) }},
		{"NaN max speed", func(c *GameConfig) { c.MaxSpeed = math.NaN() }},
		{"infinite max speed", func(c *GameConfig) { c.MaxSpeed = math.Inf(1) }},
		{"NaN step", func(c *GameConfig) { c.SpeedStep = math.NaN() }},
		{"infinite step", func(c *GameConfig) { c.SpeedStep = math.Inf(1) }},
		{"no levels", func(c *GameConfig) { c.LevelEvery = 0 }},
		{"no power-up", func(c *GameConfig) { c.PowerUpDuration = 0 }},
		{"no attempts", func(c *GameConfig) { c.PlacementAttempts = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestGridSide(t *testing.T) {
	side, err := GridSide(40)
	require.NoError(t, err)
	assert.Equal(t, int32(40), side)

	_, err = GridSide(4294967306)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = GridSide(-4294967286)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGameConfigCopyIsIndependent(t *testing.T) {
	cfg := DefaultGameConfig()
	cp := cfg.Copy()
	cp.Width = 99

	assert.Equal(t, int32(40), cfg.Width)
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, TickInterval(10))
	assert.Equal(t, 50*time.Millisecond, TickInterval(20))
	assert.Equal(t, time.Second, TickInterval(0))
	assert.Equal(t, time.Second, TickInterval(math.NaN()))
	assert.Equal(t, time.Second, TickInterval(math.Inf(1)))
}
