package domain

import "time"

type FoodView struct {
	Pos   Coord
	IsBig bool
	Size  int32
	// Remaining is the fraction of lifetime left, always 1 for regular food.
	Remaining float64
}

func newFoodView(f *Food, now time.Time) *FoodView {
	return &FoodView{
		Pos:       f.Pos,
		IsBig:     f.IsBig,
		Size:      f.Size(),
		Remaining: f.RemainingFraction(now),
	}
}

// Snapshot is a read-only copy of a session for renderers and spectators.
type Snapshot struct {
	Tick   int64
	Width  int32
	Height int32
	State  SessionState

	Snake            []Coord
	Direction        Direction
	PowerUp          bool
	PowerUpRemaining time.Duration

	Food      *FoodView
	BigFood   *FoodView
	Obstacles [][]Coord

	Score     int
	HighScore int
	Level     int
	Speed     float64

	FinalScore int
	FinalLevel int
}

func (s *Snapshot) Head() Coord {
	if len(s.Snake) == 0 {
		return Coord{}
	}
	return s.Snake[0]
}

// PowerUpSeconds is the whole seconds left on the power-up, as shown on the HUD.
func (s *Snapshot) PowerUpSeconds() int {
	return int(s.PowerUpRemaining / time.Second)
}

func (s *Snapshot) Field() *Field {
	return NewField(s.Width, s.Height)
}
