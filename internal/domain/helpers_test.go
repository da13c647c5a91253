package domain

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

// newOpenSession returns a session with no obstacles so that a test can steer
// the snake freely.
func newOpenSession(t *testing.T) *GameSession {
	t.Helper()

	gs, err := NewGameSession(DefaultGameConfig(), newTestRand(), epoch)
	require.NoError(t, err)
	gs.Obstacles = NewObstacleField()
	return gs
}

// aimFoodAhead puts the regular food on the cell the snake enters next tick.
func aimFoodAhead(gs *GameSession) {
	gs.Food = NewFood(epoch)
	gs.Food.Pos = gs.Field.Move(gs.Snake.Head(), gs.Snake.Direction)
}

// straightSnake builds a snake of n cells heading right with the head at head.
func straightSnake(field *Field, head Coord, n int) *Snake {
	s := &Snake{Length: n, Direction: DirectionRight, Level: 1, Speed: 10}
	for i := 0; i < n; i++ {
		s.Points = append(s.Points, field.Normalize(Coord{X: head.X - int32(i), Y: head.Y}))
	}
	return s
}
