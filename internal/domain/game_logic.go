package domain

import "time"

type CollisionKind int

const (
	CollisionNone CollisionKind = iota
	CollisionSelf
	CollisionObstacle
)

type TickResult struct {
	Collision CollisionKind
	GameOver  bool

	AteFood    bool
	AteBigFood bool
	LevelUp    bool
	// RegeneratedObstacles is the cluster count requested by a level-up
	// regeneration, zero when none happened.
	RegeneratedObstacles int

	BigFoodSpawned bool
	BigFoodExpired bool
	PowerUpStarted bool
	PowerUpEnded   bool

	// Errors collects placement failures. They never stop the tick.
	Errors []error
}

// Tick advances the session by one step. dir may be zero when no input arrived.
// Once the round is over Tick does nothing until Reset.
func (gs *GameSession) Tick(dir Direction, now time.Time) *TickResult {
	result := &TickResult{}

	if gs.State == SessionGameOver {
		result.GameOver = true
		return result
	}

	gs.TickCount++

	if gs.Food == nil {
		if err := gs.placeFood(now); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}

	if dir != 0 {
		gs.Snake.Turn(dir)
	}

	if gs.Snake.Move(gs.Field) {
		result.Collision = CollisionSelf
	} else if !gs.Snake.PoweredUp() && gs.Obstacles.Contains(gs.Snake.Head()) {
		result.Collision = CollisionObstacle
	}
	if result.Collision != CollisionNone {
		gs.endRound()
		result.GameOver = true
		return result
	}

	head := gs.Snake.Head()

	if gs.Food != nil && head.Equals(gs.Food.Pos) {
		gs.eatFood(now, result)
	}

	if gs.BigFood != nil {
		if head.Equals(gs.BigFood.Pos) {
			gs.Snake.Grow(2)
			gs.Snake.Score += 5
			gs.recordHighScore()
			gs.Snake.EnterPowerUp(now)
			gs.BigFood = nil
			gs.bigFoodTimer = now
			result.AteBigFood = true
			result.PowerUpStarted = true
		} else if gs.BigFood.IsExpired(now) {
			gs.BigFood = nil
			gs.bigFoodTimer = now
			result.BigFoodExpired = true
		}
	} else if now.Sub(gs.bigFoodTimer) > gs.Config.BigFoodInterval {
		if err := gs.spawnBigFood(now); err != nil {
			// Skip this round and wait for the next interval.
			gs.bigFoodTimer = now
			result.Errors = append(result.Errors, err)
		} else {
			result.BigFoodSpawned = true
		}
	}

	if gs.Snake.TickPowerUp(now, gs.Config.PowerUpDuration) {
		result.PowerUpEnded = true
	}

	return result
}

func (gs *GameSession) eatFood(now time.Time, result *TickResult) {
	s := gs.Snake
	s.Grow(1)
	s.Score++
	s.Speed = min(s.Speed+gs.Config.SpeedStep, gs.Config.MaxSpeed)
	gs.recordHighScore()
	result.AteFood = true

	if err := gs.placeFood(now); err != nil {
		result.Errors = append(result.Errors, err)
	}

	if s.Score%gs.Config.LevelEvery == 0 {
		s.Level++
		result.LevelUp = true
		result.RegeneratedObstacles = s.Level
		if err := gs.regenerateObstacles(); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}
}
