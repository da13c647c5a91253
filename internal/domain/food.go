package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

type Food struct {
	Pos       Coord
	IsBig     bool
	SpawnTime time.Time
	// Lifespan of zero means the food never expires.
	Lifespan time.Duration
}

func NewFood(now time.Time) *Food {
	return &Food{SpawnTime: now}
}

func NewBigFood(now time.Time, lifespan time.Duration) *Food {
	return &Food{
		IsBig:     true,
		SpawnTime: now,
		Lifespan:  lifespan,
	}
}

// Size is the edge length of the square footprint.
func (f *Food) Size() int32 {
	if f.IsBig {
		return 2
	}
	return 1
}

func (f *Food) Cells() []Coord {
	size := f.Size()
	cells := make([]Coord, 0, size*size)
	for dx := int32(0); dx < size; dx++ {
		for dy := int32(0); dy < size; dy++ {
			cells = append(cells, Coord{X: f.Pos.X + dx, Y: f.Pos.Y + dy})
		}
	}
	return cells
}

// RandomizePosition samples anchors until the footprint misses every cell in
// avoid. The position is left unchanged when all attempts fail.
func (f *Food) RandomizePosition(field *Field, rng *rand.Rand, avoid CellSet, attempts int) error {
	size := f.Size()
	for i := 0; i < attempts; i++ {
		candidate := &Food{Pos: field.RandomCoord(rng, size, size), IsBig: f.IsBig}
		if !avoid.HasAny(candidate.Cells()) {
			f.Pos = candidate.Pos
			return nil
		}
	}
	return fmt.Errorf("place food (big=%t) after %d attempts: %w", f.IsBig, attempts, ErrNoFreeCell)
}

func (f *Food) IsExpired(now time.Time) bool {
	if !f.IsBig || f.Lifespan <= 0 {
		return false
	}
	return now.Sub(f.SpawnTime) > f.Lifespan
}

// RemainingFraction is 1 right after spawning and falls to 0 at expiry.
func (f *Food) RemainingFraction(now time.Time) float64 {
	if !f.IsBig || f.Lifespan <= 0 {
		return 1
	}
	elapsed := now.Sub(f.SpawnTime)
	frac := 1 - float64(elapsed)/float64(f.Lifespan)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

func (f *Food) Copy() *Food {
	if f == nil {
		return nil
	}
	cp := *f
	return &cp
}
