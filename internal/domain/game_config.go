package domain

import (
	"fmt"
	"math"
	"time"
)

type GameConfig struct {
	Width  int32
	Height int32

	// Speed is measured in ticks per second.
	BaseSpeed float64
	MaxSpeed  float64
	SpeedStep float64

	// A level is gained every LevelEvery points of regular food.
	LevelEvery int

	BigFoodInterval time.Duration
	BigFoodLifespan time.Duration
	PowerUpDuration time.Duration

	PlacementAttempts int
}

func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Width:             40,
		Height:            30,
		BaseSpeed:         10,
		MaxSpeed:          20,
		SpeedStep:         0.5,
		LevelEvery:        5,
		BigFoodInterval:   30 * time.Second,
		BigFoodLifespan:   10 * time.Second,
		PowerUpDuration:   5 * time.Second,
		PlacementAttempts: 1000,
	}
}

func (c *GameConfig) Validate() error {
	if c.Width < 10 || c.Width > 100 {
		return fmt.Errorf("%w: width %d out of range 10-100", ErrInvalidConfig, c.Width)
	}
	if c.Height < 10 || c.Height > 100 {
		return fmt.Errorf("%w: height %d out of range 10-100", ErrInvalidConfig, c.Height)
	}
	for _, v := range []float64{c.BaseSpeed, c.MaxSpeed, c.SpeedStep} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: speeds must be finite", ErrInvalidConfig)
		}
	}
	if c.BaseSpeed <= 0 {
		return fmt.Errorf("%w: base speed must be positive", ErrInvalidConfig)
	}
	if c.MaxSpeed < c.BaseSpeed {
		return fmt.Errorf("%w: max speed %.1f below base speed %.1f", ErrInvalidConfig, c.MaxSpeed, c.BaseSpeed)
	}
	if c.SpeedStep < 0 {
		return fmt.Errorf("%w: negative speed step", ErrInvalidConfig)
	}
	if c.LevelEvery < 1 {
		return fmt.Errorf("%w: level step must be at least 1", ErrInvalidConfig)
	}
	if c.BigFoodInterval <= 0 || c.BigFoodLifespan <= 0 || c.PowerUpDuration <= 0 {
		return fmt.Errorf("%w: timers must be positive", ErrInvalidConfig)
	}
	if c.PlacementAttempts < 1 {
		return fmt.Errorf("%w: placement attempts must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// GridSide converts a side length from an int, rejecting values that do not
// fit the board's int32 coordinates.
func GridSide(n int) (int32, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: side %d does not fit the grid", ErrInvalidConfig, n)
	}
	return int32(n), nil
}

func (c *GameConfig) Copy() *GameConfig {
	cp := *c
	return &cp
}

// TickInterval converts a speed in ticks per second to a tick period.
func TickInterval(speed float64) time.Duration {
	if !(speed > 0) || math.IsInf(speed, 1) {
		return time.Second
	}
	return time.Duration(float64(time.Second) / speed)
}
