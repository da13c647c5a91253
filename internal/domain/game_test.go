package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameSessionInitialLayout(t *testing.T) {
	gs, err := NewGameSession(DefaultGameConfig(), newTestRand(), epoch)
	require.NoError(t, err)

	assert.Equal(t, SessionPlaying, gs.State)
	assert.Equal(t, []Coord{gs.Field.Center()}, gs.Snake.Points)
	require.NotNil(t, gs.Food)
	assert.Nil(t, gs.BigFood)
	assert.Equal(t, 1, gs.Obstacles.Len())

	assert.False(t, gs.Snake.Occupies(gs.Food.Pos))
	for _, c := range gs.Obstacles.Cells() {
		assert.False(t, gs.Snake.Occupies(c))
		assert.NotEqual(t, gs.Food.Pos, c)
	}
}

func TestNewGameSessionRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Width = 3

	_, err := NewGameSession(cfg, newTestRand(), epoch)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestTickToleratesMissingInput(t *testing.T) {
	gs := newOpenSession(t)
	dir := gs.Snake.Direction
	expected := gs.Field.Move(gs.Snake.Head(), dir)

	result := gs.Tick(0, epoch)

	assert.False(t, result.GameOver)
	assert.Equal(t, dir, gs.Snake.Direction)
	assert.Equal(t, expected, gs.Snake.Head())
	assert.Equal(t, int64(1), gs.TickCount)
}

func TestTickAppliesDirection(t *testing.T) {
	gs := newOpenSession(t)
	gs.Snake.Direction = DirectionRight
	start := gs.Snake.Head()

	gs.Tick(DirectionDown, epoch)

	assert.Equal(t, DirectionDown, gs.Snake.Direction)
	assert.Equal(t, Coord{start.X, start.Y + 1}, gs.Snake.Head())
}

func TestScoreAndLevelProgression(t *testing.T) {
	gs := newOpenSession(t)
	gs.Snake.Direction = DirectionRight

	regenerations := 0
	regeneratedWith := 0
	for i := 1; i <= 5; i++ {
		aimFoodAhead(gs)
		result := gs.Tick(0, epoch)

		require.False(t, result.GameOver, "tick %d", i)
		require.True(t, result.AteFood, "tick %d", i)
		if result.RegeneratedObstacles > 0 {
			regenerations++
			regeneratedWith = result.RegeneratedObstacles
		}
	}

	assert.Equal(t, 5, gs.Snake.Score)
	assert.Equal(t, 2, gs.Snake.Level)
	assert.Equal(t, 6, gs.Snake.Length)
	assert.Equal(t, 12.5, gs.Snake.Speed)
	assert.Equal(t, 5, gs.HighScore)
	assert.Equal(t, 1, regenerations)
	assert.Equal(t, 2, regeneratedWith)
	assert.Equal(t, 2, gs.Obstacles.Len())
}

func TestSpeedIsCapped(t *testing.T) {
	gs := newOpenSession(t)
	gs.Snake.Direction = DirectionRight
	gs.Snake.Speed = gs.Config.MaxSpeed - 0.25

	aimFoodAhead(gs)
	gs.Tick(0, epoch)

	assert.Equal(t, gs.Config.MaxSpeed, gs.Snake.Speed)
	assert.Equal(t, TickInterval(gs.Config.MaxSpeed), gs.TickInterval())
}

func TestEatenFoodIsRelocated(t *testing.T) {
	gs := newOpenSession(t)
	require.NoError(t, gs.Obstacles.Generate(gs.Field, gs.rng, 8, NewCellSet(gs.Snake.Points), 1000))
	gs.Snake.State = SnakeStatePoweredUp
	gs.Snake.PowerUpStart = epoch

	aimFoodAhead(gs)
	result := gs.Tick(0, epoch)

	require.True(t, result.AteFood)
	require.NotNil(t, gs.Food)
	assert.False(t, gs.Snake.Occupies(gs.Food.Pos))
	assert.False(t, gs.Obstacles.Contains(gs.Food.Pos))
}

func TestSelfCollisionEndsRound(t *testing.T) {
	gs := newOpenSession(t)
	gs.Snake = &Snake{
		Points:    []Coord{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {4, 6}},
		Length:    5,
		Direction: DirectionDown,
		Score:     7,
		Level:     2,
		Speed:     13.5,
	}
	gs.HighScore = 3

	result := gs.Tick(0, epoch)

	assert.True(t, result.GameOver)
	assert.Equal(t, CollisionSelf, result.Collision)
	assert.Equal(t, SessionGameOver, gs.State)
	assert.Equal(t, 7, gs.FinalScore)
	assert.Equal(t, 2, gs.FinalLevel)
	assert.Equal(t, 7, gs.HighScore)
}

func TestObstacleCollisionEndsRound(t *testing.T) {
	gs := newOpenSession(t)
	gs.Snake.Direction = DirectionRight
	ahead := gs.Field.Move(gs.Snake.Head(), DirectionRight)
	gs.Obstacles.clusters = []Cluster{{Shape: "O", Cells: []Coord{ahead}}}
	gs.Obstacles.cells = NewCellSet([]Coord{ahead})

	result := gs.Tick(0, epoch)

	assert.True(t, result.GameOver)
	assert.Equal(t, CollisionObstacle, result.Collision)
}

func TestPowerUpIgnoresObstacles(t *testing.T) {
	gs := newOpenSession(t)
	gs.Snake.Direction = DirectionRight
	gs.Snake.EnterPowerUp(epoch)
	ahead := gs.Field.Move(gs.Snake.Head(), DirectionRight)
	gs.Obstacles.clusters = []Cluster{{Shape: "O", Cells: []Coord{ahead}}}
	gs.Obstacles.cells = NewCellSet([]Coord{ahead})

	result := gs.Tick(0, epoch.Add(time.Second))

	assert.False(t, result.GameOver)
	assert.Equal(t, ahead, gs.Snake.Head())
}

func TestGameOverFreezesSession(t *testing.T) {
	gs := newOpenSession(t)
	gs.State = SessionGameOver
	before := gs.Snake.Copy()

	for i := 0; i < 3; i++ {
		result := gs.Tick(DirectionUp, epoch)
		assert.True(t, result.GameOver)
	}

	assert.Equal(t, before.Points, gs.Snake.Points)
	assert.Zero(t, gs.TickCount)
}

func TestResetKeepsHighScore(t *testing.T) {
	gs := newOpenSession(t)
	gs.Snake.Score = 12
	gs.Snake.Level = 3
	gs.endRound()

	require.NoError(t, gs.Reset(epoch.Add(time.Minute)))

	assert.Equal(t, SessionPlaying, gs.State)
	assert.Equal(t, 12, gs.HighScore)
	assert.Equal(t, 0, gs.Snake.Score)
	assert.Equal(t, 1, gs.Snake.Level)
	assert.Equal(t, gs.Config.BaseSpeed, gs.Snake.Speed)
	assert.Equal(t, 1, gs.Obstacles.Len())
	assert.Nil(t, gs.BigFood)
}

func TestBigFoodPowerUpScenario(t *testing.T) {
	gs := newOpenSession(t)
	gs.Snake.Direction = DirectionRight
	gs.Food.Pos = Coord{0, 0}

	bonusAt := epoch.Add(40 * time.Second)
	gs.BigFood = NewBigFood(bonusAt, gs.Config.BigFoodLifespan)
	gs.BigFood.Pos = gs.Field.Move(gs.Snake.Head(), DirectionRight)

	result := gs.Tick(0, bonusAt)

	require.True(t, result.AteBigFood)
	assert.True(t, result.PowerUpStarted)
	assert.True(t, gs.Snake.PoweredUp())
	assert.Equal(t, 5, gs.Snake.Score)
	assert.Equal(t, 3, gs.Snake.Length)
	assert.Nil(t, gs.BigFood)

	duration := gs.Config.PowerUpDuration
	result = gs.Tick(0, bonusAt.Add(duration-time.Millisecond))
	assert.False(t, result.PowerUpEnded)
	assert.True(t, gs.Snake.PoweredUp())

	result = gs.Tick(0, bonusAt.Add(duration+time.Millisecond))
	assert.True(t, result.PowerUpEnded)
	assert.False(t, gs.Snake.PoweredUp())
}

func TestBigFoodSpawnsAfterInterval(t *testing.T) {
	gs := newOpenSession(t)
	interval := gs.Config.BigFoodInterval

	result := gs.Tick(0, epoch.Add(interval))
	assert.False(t, result.BigFoodSpawned)
	assert.Nil(t, gs.BigFood)

	spawnAt := epoch.Add(interval + time.Millisecond)
	result = gs.Tick(0, spawnAt)
	require.True(t, result.BigFoodSpawned)
	require.NotNil(t, gs.BigFood)
	assert.True(t, gs.BigFood.IsBig)
	assert.Equal(t, spawnAt, gs.BigFood.SpawnTime)
	for _, c := range gs.BigFood.Cells() {
		assert.False(t, gs.Snake.Occupies(c))
		assert.NotEqual(t, gs.Food.Pos, c)
	}
}

func TestBigFoodExpiresAndRestartsTimer(t *testing.T) {
	gs := newOpenSession(t)
	gs.BigFood = NewBigFood(epoch, gs.Config.BigFoodLifespan)
	gs.BigFood.Pos = Coord{0, 0}

	expireAt := epoch.Add(gs.Config.BigFoodLifespan + time.Millisecond)
	result := gs.Tick(0, expireAt)

	require.True(t, result.BigFoodExpired)
	assert.Nil(t, gs.BigFood)

	result = gs.Tick(0, expireAt.Add(gs.Config.BigFoodInterval))
	assert.False(t, result.BigFoodSpawned, "timer restarts from the expiry")
}

func TestMissingFoodIsRetried(t *testing.T) {
	gs := newOpenSession(t)
	gs.Food = nil

	result := gs.Tick(0, epoch)

	assert.Empty(t, result.Errors)
	require.NotNil(t, gs.Food)
	assert.False(t, gs.Snake.Occupies(gs.Food.Pos))
}

func TestSnapshotIsDetached(t *testing.T) {
	gs := newOpenSession(t)
	gs.Snake.EnterPowerUp(epoch)

	snap := gs.Snapshot(epoch.Add(1200 * time.Millisecond))
	snap.Snake[0] = Coord{-1, -1}

	assert.NotEqual(t, Coord{-1, -1}, gs.Snake.Head())
	assert.True(t, snap.PowerUp)
	assert.Equal(t, 3, snap.PowerUpSeconds())
	require.NotNil(t, snap.Food)
	assert.Equal(t, 1.0, snap.Food.Remaining)
	assert.Equal(t, gs.Snake.Level, snap.Level)
}
