package domain

import "math/rand/v2"

// Field is the wrap-around grid the snake lives on.
type Field struct {
	Width  int32
	Height int32
}

func NewField(width, height int32) *Field {
	return &Field{
		Width:  width,
		Height: height,
	}
}

func (f *Field) Normalize(c Coord) Coord {
	x := c.X % f.Width
	if x < 0 {
		x += f.Width
	}
	y := c.Y % f.Height
	if y < 0 {
		y += f.Height
	}
	return Coord{X: x, Y: y}
}

func (f *Field) Move(c Coord, d Direction) Coord {
	return f.Normalize(c.Add(d.Delta()))
}

func (f *Field) Contains(c Coord) bool {
	return c.X >= 0 && c.X < f.Width && c.Y >= 0 && c.Y < f.Height
}

func (f *Field) Center() Coord {
	return Coord{X: f.Width / 2, Y: f.Height / 2}
}

// RandomCoord returns a uniformly random top-left anchor such that a w x h box
// anchored there stays inside the field.
func (f *Field) RandomCoord(rng *rand.Rand, w, h int32) Coord {
	return Coord{
		X: rng.Int32N(f.Width - w + 1),
		Y: rng.Int32N(f.Height - h + 1),
	}
}
