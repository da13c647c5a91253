package screens

import (
	"fmt"
	"image/color"

	"powersnake/internal/domain"
	"powersnake/internal/ui/graphics/input"
	"powersnake/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

type GameOverScreen struct {
	ctx   types.ScreenContext
	state *domain.Snapshot
}

func NewGameOverScreen(ctx types.ScreenContext) *GameOverScreen {
	return &GameOverScreen{ctx: ctx}
}

func (s *GameOverScreen) SetState(state *domain.Snapshot) {
	s.state = state
}

func (s *GameOverScreen) Update() types.UIEvent {
	if input.IsEscapePressed() {
		return types.UIEvent{Type: types.UIEventExitGame}
	}
	if input.IsSpaceReleased() {
		return types.UIEvent{Type: types.UIEventAcknowledge}
	}
	return types.UIEvent{Type: types.UIEventNone}
}

func (s *GameOverScreen) Draw(screen *ebiten.Image) {
	screen.Fill(types.ColorBackground)

	w, h := s.ctx.Size()
	fonts := types.GetFonts()

	drawCentered(screen, fonts.Title, "GAME OVER", w, h/4, types.ColorError)

	if s.state != nil {
		drawCentered(screen, fonts.Banner, fmt.Sprintf("Score %d", s.state.FinalScore), w, h/2-30, types.ColorText)
		drawCentered(screen, fonts.Label, fmt.Sprintf("Level %d", s.state.FinalLevel), w, h/2+5, types.ColorTextDim)

		best := fmt.Sprintf("High score %d", s.state.HighScore)
		if s.state.FinalScore > 0 && s.state.FinalScore >= s.state.HighScore {
			best = "New high score!"
		}
		drawCentered(screen, fonts.Banner, best, w, h/2+50, types.ColorTextHighlight)
	}

	drawCentered(screen, fonts.HUD, "SPACE to play again, ESC for menu", w, h*3/4, types.ColorTextDim)
}

func drawCentered(screen *ebiten.Image, face font.Face, msg string, w, y int, clr color.Color) {
	text.Draw(screen, msg, face, types.CenteredX(face, msg, w), y, clr)
}

func (s *GameOverScreen) OnEnter() {}

func (s *GameOverScreen) OnExit() {}
