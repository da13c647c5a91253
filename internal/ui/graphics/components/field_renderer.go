package components

import (
	"image/color"

	"powersnake/internal/domain"
	"powersnake/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type FieldRenderer struct {
	CellSize int
	OffsetX  int
	OffsetY  int
}

func NewFieldRenderer() *FieldRenderer {
	return &FieldRenderer{
		CellSize: 15,
		OffsetX:  20,
		OffsetY:  60,
	}
}

func (fr *FieldRenderer) CalculateLayout(screenWidth, screenHeight int, field *domain.Field) {
	if field == nil {
		return
	}

	availableWidth := screenWidth - 40
	availableHeight := screenHeight - 100

	cellW := availableWidth / int(field.Width)
	cellH := availableHeight / int(field.Height)

	fr.CellSize = max(5, min(cellW, cellH, 30))

	fieldWidth := fr.CellSize * int(field.Width)
	fieldHeight := fr.CellSize * int(field.Height)
	fr.OffsetX = (availableWidth-fieldWidth)/2 + 20
	fr.OffsetY = (availableHeight-fieldHeight)/2 + 60
}

// CellAt maps a screen position to a grid cell.
func (fr *FieldRenderer) CellAt(x, y int, field *domain.Field) (domain.Coord, bool) {
	if field == nil || fr.CellSize == 0 || x < fr.OffsetX || y < fr.OffsetY {
		return domain.Coord{}, false
	}
	c := domain.Coord{
		X: int32((x - fr.OffsetX) / fr.CellSize),
		Y: int32((y - fr.OffsetY) / fr.CellSize),
	}
	return c, field.Contains(c)
}

func (fr *FieldRenderer) cellOrigin(c domain.Coord) (float32, float32) {
	return float32(fr.OffsetX + int(c.X)*fr.CellSize), float32(fr.OffsetY + int(c.Y)*fr.CellSize)
}

func (fr *FieldRenderer) DrawField(screen *ebiten.Image, field *domain.Field) {
	if field == nil {
		return
	}

	w := float32(int(field.Width) * fr.CellSize)
	h := float32(int(field.Height) * fr.CellSize)

	vector.DrawFilledRect(screen,
		float32(fr.OffsetX), float32(fr.OffsetY),
		w, h,
		types.ColorFieldBg, false)

	for x := int32(0); x <= field.Width; x++ {
		x1 := float32(fr.OffsetX + int(x)*fr.CellSize)
		vector.StrokeLine(screen,
			x1, float32(fr.OffsetY),
			x1, float32(fr.OffsetY)+h,
			1, types.ColorGrid, false)
	}
	for y := int32(0); y <= field.Height; y++ {
		y1 := float32(fr.OffsetY + int(y)*fr.CellSize)
		vector.StrokeLine(screen,
			float32(fr.OffsetX), y1,
			float32(fr.OffsetX)+w, y1,
			1, types.ColorGrid, false)
	}
}

// DrawFood draws a round fruit with a shine. Bonus food shrinks as its
// lifetime runs out.
func (fr *FieldRenderer) DrawFood(screen *ebiten.Image, food *domain.FoodView) {
	if food == nil {
		return
	}

	fill, edge := types.ColorFood, types.ColorFoodBorder
	if food.IsBig {
		fill, edge = types.ColorBigFood, types.ColorBigFoodEdge
	}

	span := float32(food.Size) * float32(fr.CellSize)
	diameter := span
	if food.IsBig {
		diameter = max(1, span*float32(food.Remaining))
	}

	x, y := fr.cellOrigin(food.Pos)
	cx, cy := x+span/2, y+span/2
	r := diameter / 2

	vector.DrawFilledCircle(screen, cx, cy, r, fill, true)
	vector.StrokeCircle(screen, cx, cy, r, 1, edge, true)
	vector.DrawFilledCircle(screen, cx-diameter/4, cy-diameter/4, diameter/8, types.ColorEyeWhite, true)
}

func (fr *FieldRenderer) DrawSnake(screen *ebiten.Image, snap *domain.Snapshot) {
	if snap == nil || len(snap.Snake) == 0 {
		return
	}

	size := float32(fr.CellSize)

	for i := len(snap.Snake) - 1; i >= 0; i-- {
		x, y := fr.cellOrigin(snap.Snake[i])
		vector.DrawFilledRect(screen, x, y, size, size, types.SegmentColor(i, snap.PowerUp), false)
		vector.StrokeRect(screen, x, y, size, size, 1, types.ColorSnakeBorder, false)
	}

	x, y := fr.cellOrigin(snap.Snake[0])
	fr.drawEyes(screen, x, y, snap.Direction)
}

func (fr *FieldRenderer) drawEyes(screen *ebiten.Image, x, y float32, dir domain.Direction) {
	size := float32(fr.CellSize)
	radius := size / 5
	offset := size / 4
	cx, cy := x+size/2, y+size/2

	var ex1, ey1, ex2, ey2 float32
	switch dir {
	case domain.DirectionLeft:
		ex1, ey1 = x+offset, cy-offset
		ex2, ey2 = x+offset, cy+offset
	case domain.DirectionRight:
		ex1, ey1 = x+size-offset, cy-offset
		ex2, ey2 = x+size-offset, cy+offset
	case domain.DirectionUp:
		ex1, ey1 = cx-offset, y+offset
		ex2, ey2 = cx+offset, y+offset
	default:
		ex1, ey1 = cx-offset, y+size-offset
		ex2, ey2 = cx+offset, y+size-offset
	}

	for _, eye := range [][2]float32{{ex1, ey1}, {ex2, ey2}} {
		vector.DrawFilledCircle(screen, eye[0], eye[1], radius, types.ColorEyeWhite, true)
		vector.DrawFilledCircle(screen, eye[0], eye[1], radius/2, types.ColorEyePupil, true)
	}
}

// DrawObstacles draws each block with a light top-left and a dark
// bottom-right edge.
func (fr *FieldRenderer) DrawObstacles(screen *ebiten.Image, clusters [][]domain.Coord) {
	size := float32(fr.CellSize)
	light := types.Lighten(types.ColorObstacle, 1.4)
	dark := types.Darken(types.ColorObstacle, 0.6)

	for _, cluster := range clusters {
		for _, c := range cluster {
			x, y := fr.cellOrigin(c)
			vector.DrawFilledRect(screen, x, y, size, size, types.ColorObstacle, false)
			bevel(screen, x, y, size, light, dark)
			vector.StrokeRect(screen, x, y, size, size, 1, types.ColorObstacleEdge, false)
		}
	}
}

func bevel(screen *ebiten.Image, x, y, size float32, light, dark color.Color) {
	w := max(1, size/8)
	vector.StrokeLine(screen, x, y+w/2, x+size, y+w/2, w, light, false)
	vector.StrokeLine(screen, x+w/2, y, x+w/2, y+size, w, light, false)
	vector.StrokeLine(screen, x, y+size-w/2, x+size, y+size-w/2, w, dark, false)
	vector.StrokeLine(screen, x+size-w/2, y, x+size-w/2, y+size, w, dark, false)
}
