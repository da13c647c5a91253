package types

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentColor(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		powered bool
		want    color.RGBA
	}{
		{"head", 0, false, ColorSnake},
		{"tenth segment", 10, false, color.RGBA{0, 225, 70, 255}},
		{"long tail clamps", 200, false, color.RGBA{0, 0, 0, 255}},
		{"powered head", 0, true, color.RGBA{50, 241, 255, 255}},
		{"powered tail matches head", 30, true, color.RGBA{50, 241, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentColor(tt.index, tt.powered))
		})
	}
}

func TestLightenClamps(t *testing.T) {
	got := Lighten(color.RGBA{200, 100, 0, 255}, 2)
	assert.Equal(t, color.RGBA{255, 200, 0, 255}, got)
}
