package domain

import (
	"fmt"
	"math/rand/v2"
)

// Shape is a fixed polyomino described by offsets from its top-left anchor.
type Shape struct {
	Name   string
	Width  int32
	Height int32
	Blocks []Coord
}

var (
	ShapeL = Shape{Name: "L", Width: 3, Height: 3, Blocks: []Coord{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}}}
	ShapeI = Shape{Name: "I", Width: 1, Height: 4, Blocks: []Coord{{0, 0}, {0, 1}, {0, 2}, {0, 3}}}
	ShapeT = Shape{Name: "T", Width: 3, Height: 2, Blocks: []Coord{{0, 0}, {1, 0}, {2, 0}, {1, 1}}}
	ShapeO = Shape{Name: "O", Width: 2, Height: 2, Blocks: []Coord{{0, 0}, {0, 1}, {1, 0}, {1, 1}}}
)

var Shapes = []Shape{ShapeL, ShapeI, ShapeT, ShapeO}

func (s Shape) At(anchor Coord) []Coord {
	cells := make([]Coord, len(s.Blocks))
	for i, b := range s.Blocks {
		cells[i] = anchor.Add(b)
	}
	return cells
}

type Cluster struct {
	Shape string
	Cells []Coord
}

type ObstacleField struct {
	clusters []Cluster
	cells    CellSet
}

func NewObstacleField() *ObstacleField {
	return &ObstacleField{cells: make(CellSet)}
}

// Generate clears the field and places count clusters that avoid each other and
// every cell in avoid. If a cluster cannot be placed within attempts tries,
// generation stops; clusters placed so far are kept.
func (o *ObstacleField) Generate(field *Field, rng *rand.Rand, count int, avoid CellSet, attempts int) error {
	o.clusters = make([]Cluster, 0, count)
	o.cells = make(CellSet)

	for n := 0; n < count; n++ {
		shape := Shapes[rng.IntN(len(Shapes))]
		if shape.Width > field.Width || shape.Height > field.Height {
			return fmt.Errorf("place obstacle %d/%d: shape %s larger than field: %w", n+1, count, shape.Name, ErrNoFreeCell)
		}

		placed := false
		for i := 0; i < attempts; i++ {
			cells := shape.At(field.RandomCoord(rng, shape.Width, shape.Height))
			if avoid.HasAny(cells) || o.cells.HasAny(cells) {
				continue
			}
			o.clusters = append(o.clusters, Cluster{Shape: shape.Name, Cells: cells})
			o.cells.Add(cells...)
			placed = true
			break
		}
		if !placed {
			return fmt.Errorf("place obstacle %d/%d after %d attempts: %w", n+1, count, attempts, ErrNoFreeCell)
		}
	}
	return nil
}

func (o *ObstacleField) Contains(c Coord) bool {
	return o.cells.Has(c)
}

func (o *ObstacleField) Cells() []Coord {
	cells := make([]Coord, 0, len(o.cells))
	for _, cl := range o.clusters {
		cells = append(cells, cl.Cells...)
	}
	return cells
}

func (o *ObstacleField) Clusters() []Cluster {
	result := make([]Cluster, len(o.clusters))
	for i, cl := range o.clusters {
		cells := make([]Coord, len(cl.Cells))
		copy(cells, cl.Cells)
		result[i] = Cluster{Shape: cl.Shape, Cells: cells}
	}
	return result
}

func (o *ObstacleField) Len() int {
	return len(o.clusters)
}
