package components

import (
	"testing"
	"time"

	"powersnake/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestStatusLines(t *testing.T) {
	snap := &domain.Snapshot{Score: 7, HighScore: 12, Level: 2}

	assert.Equal(t, "Score: 7  High Score: 12  Level: 2", StatusLine(snap))
	assert.Empty(t, PowerUpLine(snap))

	snap.PowerUp = true
	snap.PowerUpRemaining = 3900 * time.Millisecond
	assert.Equal(t, "Power-up: 3s", PowerUpLine(snap))
}

func TestCellAt(t *testing.T) {
	fr := &FieldRenderer{CellSize: 10, OffsetX: 20, OffsetY: 60}
	field := domain.NewField(40, 30)

	c, ok := fr.CellAt(45, 75, field)
	assert.True(t, ok)
	assert.Equal(t, domain.Coord{X: 2, Y: 1}, c)

	_, ok = fr.CellAt(5, 75, field)
	assert.False(t, ok)

	_, ok = fr.CellAt(20+400, 75, field)
	assert.False(t, ok)
}

func TestCalculateLayoutClampsCellSize(t *testing.T) {
	fr := NewFieldRenderer()

	fr.CalculateLayout(4000, 3000, domain.NewField(10, 10))
	assert.Equal(t, 30, fr.CellSize)

	fr.CalculateLayout(200, 200, domain.NewField(100, 100))
	assert.Equal(t, 5, fr.CellSize)
}
