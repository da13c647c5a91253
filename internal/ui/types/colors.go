package types

import "image/color"

var (
	ColorBackground    = color.RGBA{10, 20, 30, 255}
	ColorFieldBg       = color.RGBA{14, 26, 38, 255}
	ColorGrid          = color.RGBA{30, 40, 50, 255}
	ColorText          = color.RGBA{220, 220, 220, 255}
	ColorTextDim       = color.RGBA{150, 150, 150, 255}
	ColorTextHighlight = color.RGBA{255, 255, 100, 255}
	ColorButton        = color.RGBA{40, 55, 70, 255}
	ColorButtonHover   = color.RGBA{60, 80, 100, 255}
	ColorButtonText    = color.RGBA{220, 220, 220, 255}
	ColorInputBg       = color.RGBA{25, 35, 45, 255}
	ColorInputBorder   = color.RGBA{70, 90, 110, 255}
	ColorInputFocused  = color.RGBA{100, 150, 200, 255}
	ColorError         = color.RGBA{255, 100, 100, 255}
	ColorSuccess       = color.RGBA{100, 255, 100, 255}

	ColorSnake        = color.RGBA{0, 255, 100, 255}
	ColorSnakeBorder  = color.RGBA{0, 200, 80, 255}
	ColorFood         = color.RGBA{255, 50, 50, 255}
	ColorFoodBorder   = color.RGBA{200, 0, 0, 255}
	ColorBigFood      = color.RGBA{255, 215, 0, 255}
	ColorBigFoodEdge  = color.RGBA{218, 165, 32, 255}
	ColorObstacle     = color.RGBA{100, 100, 100, 255}
	ColorObstacleEdge = color.RGBA{80, 80, 80, 255}
	ColorPowerUp      = color.RGBA{0, 191, 255, 255}
	ColorEyeWhite     = color.RGBA{255, 255, 255, 255}
	ColorEyePupil     = color.RGBA{0, 0, 0, 255}
)

// SegmentColor is the fill of the i-th body cell counting from the head.
// The body darkens towards the tail; a powered-up snake is drawn in a bright
// solid tint instead.
func SegmentColor(i int, poweredUp bool) color.RGBA {
	if poweredUp {
		return Shift(ColorPowerUp, 50)
	}
	return Shift(ColorSnake, -3*i)
}

// Shift adds delta to every channel, clamped to 0-255.
func Shift(c color.RGBA, delta int) color.RGBA {
	return color.RGBA{
		R: clampChannel(int(c.R) + delta),
		G: clampChannel(int(c.G) + delta),
		B: clampChannel(int(c.B) + delta),
		A: c.A,
	}
}

func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: clampChannel(int(float64(c.R) * factor)),
		G: clampChannel(int(float64(c.G) * factor)),
		B: clampChannel(int(float64(c.B) * factor)),
		A: c.A,
	}
}

func clampChannel(v int) uint8 {
	return uint8(max(0, min(255, v)))
}
