package components

import (
	"fmt"

	"powersnake/internal/domain"
	"powersnake/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUD is the status strip above the field.
type HUD struct {
	X, Y  int
	Width int
}

func NewHUD(x, y, width int) *HUD {
	return &HUD{
		X:     x,
		Y:     y,
		Width: width,
	}
}

func StatusLine(snap *domain.Snapshot) string {
	return fmt.Sprintf("Score: %d  High Score: %d  Level: %d", snap.Score, snap.HighScore, snap.Level)
}

// PowerUpLine is empty while the snake is not powered up.
func PowerUpLine(snap *domain.Snapshot) string {
	if !snap.PowerUp {
		return ""
	}
	return fmt.Sprintf("Power-up: %ds", snap.PowerUpSeconds())
}

func (h *HUD) Draw(screen *ebiten.Image, snap *domain.Snapshot) {
	if snap == nil {
		return
	}

	vector.DrawFilledRect(screen,
		float32(h.X), float32(h.Y),
		float32(h.Width), 44,
		types.Darken(types.ColorFieldBg, 0.8), false)

	fonts := types.GetFonts()

	text.Draw(screen, StatusLine(snap), fonts.Label, h.X+10, h.Y+18, types.ColorText)

	speed := fmt.Sprintf("Speed: %.1f", snap.Speed)
	text.Draw(screen, speed, fonts.HUD, h.X+h.Width-types.TextWidth(fonts.HUD, speed)-10, h.Y+18, types.ColorTextDim)

	if line := PowerUpLine(snap); line != "" {
		text.Draw(screen, line, fonts.HUD, h.X+10, h.Y+36, types.ColorPowerUp)
	}
}
