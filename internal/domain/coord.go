package domain

import "fmt"

type Coord struct {
	X int32
	Y int32
}

func (c Coord) Add(other Coord) Coord {
	return Coord{
		X: c.X + other.X,
		Y: c.Y + other.Y,
	}
}

func (c Coord) Equals(other Coord) bool {
	return c.X == other.X && c.Y == other.Y
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// CellSet is a set of occupied grid cells.
type CellSet map[Coord]struct{}

func NewCellSet(groups ...[]Coord) CellSet {
	set := make(CellSet)
	for _, cells := range groups {
		set.Add(cells...)
	}
	return set
}

func (s CellSet) Add(cells ...Coord) {
	for _, c := range cells {
		s[c] = struct{}{}
	}
}

func (s CellSet) Has(c Coord) bool {
	_, ok := s[c]
	return ok
}

func (s CellSet) HasAny(cells []Coord) bool {
	for _, c := range cells {
		if s.Has(c) {
			return true
		}
	}
	return false
}
