package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldMoveWrapsWithinBounds(t *testing.T) {
	field := NewField(12, 10)

	for x := int32(0); x < field.Width; x++ {
		for y := int32(0); y < field.Height; y++ {
			for _, d := range Directions {
				next := field.Move(Coord{x, y}, d)
				assert.True(t, field.Contains(next), "move %v from (%d,%d) left the field: %v", d, x, y, next)
			}
		}
	}
}

func TestFieldMoveEdges(t *testing.T) {
	field := NewField(40, 30)

	tests := []struct {
		from Coord
		dir  Direction
		want Coord
	}{
		{Coord{0, 5}, DirectionLeft, Coord{39, 5}},
		{Coord{39, 5}, DirectionRight, Coord{0, 5}},
		{Coord{7, 0}, DirectionUp, Coord{7, 29}},
		{Coord{7, 29}, DirectionDown, Coord{7, 0}},
		{Coord{3, 3}, DirectionRight, Coord{4, 3}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v_%v", tt.from, tt.dir), func(t *testing.T) {
			assert.Equal(t, tt.want, field.Move(tt.from, tt.dir))
		})
	}
}

func TestFieldNormalizeNegative(t *testing.T) {
	field := NewField(10, 10)
	assert.Equal(t, Coord{8, 9}, field.Normalize(Coord{-12, -1}))
}

func TestFieldRandomCoordFitsBox(t *testing.T) {
	field := NewField(10, 10)
	rng := newTestRand()

	for i := 0; i < 500; i++ {
		c := field.RandomCoord(rng, 3, 2)
		assert.True(t, c.X >= 0 && c.X <= 7, "x out of range: %d", c.X)
		assert.True(t, c.Y >= 0 && c.Y <= 8, "y out of range: %d", c.Y)
	}
}

func TestDirectionOpposites(t *testing.T) {
	for _, d := range Directions {
		assert.True(t, d.IsOpposite(d.Opposite()))
		assert.Equal(t, Coord{}, d.Delta().Add(d.Opposite().Delta()))
	}
	assert.False(t, Direction(0).Valid())
}
