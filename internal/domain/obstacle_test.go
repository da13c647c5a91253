package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapesMatchBoundingBoxes(t *testing.T) {
	sizes := map[string]int{"L": 5, "I": 4, "T": 4, "O": 4}

	for _, shape := range Shapes {
		t.Run(shape.Name, func(t *testing.T) {
			assert.Len(t, shape.Blocks, sizes[shape.Name])
			seen := make(CellSet)
			for _, b := range shape.Blocks {
				assert.False(t, seen.Has(b), "duplicate block %v", b)
				seen.Add(b)
				assert.True(t, b.X >= 0 && b.X < shape.Width)
				assert.True(t, b.Y >= 0 && b.Y < shape.Height)
			}
		})
	}
}

func TestObstacleGenerateNoOverlap(t *testing.T) {
	field := NewField(40, 30)
	rng := newTestRand()

	avoid := NewCellSet([]Coord{{20, 15}, {21, 15}, {22, 15}, {5, 5}})

	for count := 1; count <= 12; count++ {
		obstacles := NewObstacleField()
		require.NoError(t, obstacles.Generate(field, rng, count, avoid, 1000))
		assert.Equal(t, count, obstacles.Len())

		seen := make(CellSet)
		for _, c := range obstacles.Cells() {
			assert.False(t, seen.Has(c), "cell %v placed twice", c)
			assert.False(t, avoid.Has(c), "cell %v is in the avoid set", c)
			assert.True(t, field.Contains(c))
			seen.Add(c)
		}
	}
}

func TestObstacleGenerateClearsPreviousLayout(t *testing.T) {
	field := NewField(40, 30)
	rng := newTestRand()
	obstacles := NewObstacleField()

	require.NoError(t, obstacles.Generate(field, rng, 6, make(CellSet), 1000))
	require.NoError(t, obstacles.Generate(field, rng, 2, make(CellSet), 1000))

	assert.Equal(t, 2, obstacles.Len())
	for _, c := range obstacles.Cells() {
		assert.True(t, obstacles.Contains(c))
	}
}

func TestObstacleGenerateExhausted(t *testing.T) {
	field := NewField(10, 10)
	avoid := make(CellSet)
	for x := int32(0); x < 10; x++ {
		for y := int32(0); y < 10; y++ {
			avoid.Add(Coord{x, y})
		}
	}

	obstacles := NewObstacleField()
	err := obstacles.Generate(field, newTestRand(), 3, avoid, 20)

	require.ErrorIs(t, err, ErrNoFreeCell)
	assert.Zero(t, obstacles.Len())
}
