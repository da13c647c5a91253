package domain

import (
	"math/rand/v2"
	"time"
)

type SnakeState int

const (
	SnakeStateNormal SnakeState = iota
	SnakeStatePoweredUp
)

type Snake struct {
	// Points holds the body, head first.
	Points    []Coord
	Length    int
	Direction Direction

	Score int
	Speed float64
	Level int

	State        SnakeState
	PowerUpStart time.Time
}

func NewSnake(field *Field, rng *rand.Rand, baseSpeed float64) *Snake {
	s := &Snake{}
	s.Reset(field, rng, baseSpeed)
	return s
}

func (s *Snake) Reset(field *Field, rng *rand.Rand, baseSpeed float64) {
	s.Points = []Coord{field.Center()}
	s.Length = 1
	s.Direction = RandomDirection(rng)
	s.Score = 0
	s.Speed = baseSpeed
	s.Level = 1
	s.State = SnakeStateNormal
	s.PowerUpStart = time.Time{}
}

func (s *Snake) Head() Coord {
	if len(s.Points) == 0 {
		return Coord{}
	}
	return s.Points[0]
}

func (s *Snake) PoweredUp() bool {
	return s.State == SnakeStatePoweredUp
}

// Turn changes direction unless the snake is longer than one cell and the
// request is an exact reversal, in which case it is ignored.
func (s *Snake) Turn(dir Direction) bool {
	if !dir.Valid() {
		return false
	}
	if s.Length > 1 && dir.IsOpposite(s.Direction) {
		return false
	}
	s.Direction = dir
	return true
}

// Move advances the head one cell. The cell right behind the head is skipped by
// the collision check since it is about to be vacated. On collision the body is
// left untouched.
func (s *Snake) Move(field *Field) bool {
	newHead := field.Move(s.Head(), s.Direction)

	if len(s.Points) > 2 {
		for _, p := range s.Points[2:] {
			if p.Equals(newHead) {
				return true
			}
		}
	}

	points := make([]Coord, 0, len(s.Points)+1)
	points = append(points, newHead)
	points = append(points, s.Points...)
	for len(points) > s.Length {
		points = points[:len(points)-1]
	}
	s.Points = points

	return false
}

func (s *Snake) Grow(amount int) {
	s.Length += amount
}

func (s *Snake) Occupies(c Coord) bool {
	for _, p := range s.Points {
		if p.Equals(c) {
			return true
		}
	}
	return false
}

func (s *Snake) EnterPowerUp(now time.Time) {
	s.State = SnakeStatePoweredUp
	s.PowerUpStart = now
}

// TickPowerUp drops the power-up once more than duration has elapsed. It
// reports whether the power-up ended on this call.
func (s *Snake) TickPowerUp(now time.Time, duration time.Duration) bool {
	if s.State != SnakeStatePoweredUp {
		return false
	}
	if now.Sub(s.PowerUpStart) > duration {
		s.State = SnakeStateNormal
		return true
	}
	return false
}

func (s *Snake) PowerUpRemaining(now time.Time, duration time.Duration) time.Duration {
	if s.State != SnakeStatePoweredUp {
		return 0
	}
	remaining := duration - now.Sub(s.PowerUpStart)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *Snake) Copy() *Snake {
	cp := *s
	cp.Points = make([]Coord, len(s.Points))
	copy(cp.Points, s.Points)
	return &cp
}
