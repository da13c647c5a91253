package domain

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

type SessionState int

const (
	SessionPlaying SessionState = iota
	SessionGameOver
)

func (s SessionState) String() string {
	if s == SessionGameOver {
		return "game over"
	}
	return "playing"
}

// GameSession owns every piece of simulation state. It is not safe for
// concurrent use; callers serialize access.
type GameSession struct {
	Config    *GameConfig
	Field     *Field
	Snake     *Snake
	Food      *Food
	BigFood   *Food
	Obstacles *ObstacleField

	State      SessionState
	HighScore  int
	FinalScore int
	FinalLevel int
	TickCount  int64

	bigFoodTimer time.Time
	rng          *rand.Rand
}

func NewGameSession(config *GameConfig, rng *rand.Rand, now time.Time) (*GameSession, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfg := config.Copy()
	field := NewField(cfg.Width, cfg.Height)

	gs := &GameSession{
		Config:    cfg,
		Field:     field,
		Snake:     NewSnake(field, rng, cfg.BaseSpeed),
		Obstacles: NewObstacleField(),
		rng:       rng,
	}

	if err := gs.Reset(now); err != nil {
		return nil, fmt.Errorf("initial layout: %w", err)
	}
	return gs, nil
}

// Reset starts a new round. The high score survives.
func (gs *GameSession) Reset(now time.Time) error {
	gs.Snake.Reset(gs.Field, gs.rng, gs.Config.BaseSpeed)
	gs.BigFood = nil
	gs.bigFoodTimer = now
	gs.State = SessionPlaying
	gs.TickCount = 0

	var errs []error

	gs.Food = NewFood(now)
	if err := gs.Food.RandomizePosition(gs.Field, gs.rng, NewCellSet(gs.Snake.Points), gs.Config.PlacementAttempts); err != nil {
		gs.Food = nil
		errs = append(errs, err)
	}

	if err := gs.regenerateObstacles(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (gs *GameSession) regenerateObstacles() error {
	avoid := NewCellSet(gs.Snake.Points)
	if gs.Food != nil {
		avoid.Add(gs.Food.Cells()...)
	}
	if gs.BigFood != nil {
		avoid.Add(gs.BigFood.Cells()...)
	}
	return gs.Obstacles.Generate(gs.Field, gs.rng, gs.Snake.Level, avoid, gs.Config.PlacementAttempts)
}

func (gs *GameSession) placeFood(now time.Time) error {
	food := NewFood(now)
	avoid := NewCellSet(gs.Snake.Points, gs.Obstacles.Cells())
	if gs.BigFood != nil {
		avoid.Add(gs.BigFood.Cells()...)
	}
	if err := food.RandomizePosition(gs.Field, gs.rng, avoid, gs.Config.PlacementAttempts); err != nil {
		gs.Food = nil
		return err
	}
	gs.Food = food
	return nil
}

func (gs *GameSession) spawnBigFood(now time.Time) error {
	food := NewBigFood(now, gs.Config.BigFoodLifespan)
	avoid := NewCellSet(gs.Snake.Points, gs.Obstacles.Cells())
	if gs.Food != nil {
		avoid.Add(gs.Food.Cells()...)
	}
	if err := food.RandomizePosition(gs.Field, gs.rng, avoid, gs.Config.PlacementAttempts); err != nil {
		return err
	}
	gs.BigFood = food
	return nil
}

func (gs *GameSession) endRound() {
	gs.State = SessionGameOver
	gs.FinalScore = gs.Snake.Score
	gs.FinalLevel = gs.Snake.Level
	gs.recordHighScore()
}

func (gs *GameSession) recordHighScore() {
	if gs.Snake.Score > gs.HighScore {
		gs.HighScore = gs.Snake.Score
	}
}

// TickInterval is the wall-clock period of the next tick at the current speed.
func (gs *GameSession) TickInterval() time.Duration {
	return TickInterval(gs.Snake.Speed)
}

func (gs *GameSession) Snapshot(now time.Time) *Snapshot {
	snap := &Snapshot{
		Tick:             gs.TickCount,
		Width:            gs.Field.Width,
		Height:           gs.Field.Height,
		State:            gs.State,
		Snake:            gs.Snake.Copy().Points,
		Direction:        gs.Snake.Direction,
		PowerUp:          gs.Snake.PoweredUp(),
		PowerUpRemaining: gs.Snake.PowerUpRemaining(now, gs.Config.PowerUpDuration),
		Score:            gs.Snake.Score,
		HighScore:        gs.HighScore,
		Level:            gs.Snake.Level,
		Speed:            gs.Snake.Speed,
		FinalScore:       gs.FinalScore,
		FinalLevel:       gs.FinalLevel,
	}

	if gs.Food != nil {
		snap.Food = newFoodView(gs.Food, now)
	}
	if gs.BigFood != nil {
		snap.BigFood = newFoodView(gs.BigFood, now)
	}

	for _, cl := range gs.Obstacles.Clusters() {
		snap.Obstacles = append(snap.Obstacles, cl.Cells)
	}

	return snap
}
