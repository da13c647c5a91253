package screens

import (
	"powersnake/internal/ui/graphics/components"
	"powersnake/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

const (
	menuPlay = iota
	menuSettings
	menuQuit
)

type MenuScreen struct {
	ctx  types.ScreenContext
	menu *components.ButtonColumn
}

func NewMenuScreen(ctx types.ScreenContext) *MenuScreen {
	return &MenuScreen{
		ctx: ctx,
		menu: components.NewButtonColumn(12,
			components.NewButton("Play", 250, 50).Bind("SPACE", ebiten.KeySpace),
			components.NewButton("Settings", 250, 50),
			components.NewButton("Quit", 250, 50).Bind("ESC", ebiten.KeyEscape),
		),
	}
}

func (s *MenuScreen) Update() types.UIEvent {
	w, h := s.ctx.Size()
	s.menu.Layout(w/2, h/2-80)

	switch s.menu.Update() {
	case menuPlay:
		return types.UIEvent{Type: types.UIEventStartGame}
	case menuSettings:
		return types.UIEvent{Type: types.UIEventShowConfig}
	case menuQuit:
		return types.UIEvent{Type: types.UIEventQuit}
	}
	return types.UIEvent{Type: types.UIEventNone}
}

func (s *MenuScreen) Draw(screen *ebiten.Image) {
	screen.Fill(types.ColorBackground)

	fonts := types.GetFonts()
	w, h := s.ctx.Size()

	title := "POWER SNAKE"
	x := types.CenteredX(fonts.Title, title, w)
	text.Draw(screen, title, fonts.Title, x+3, 113, types.Darken(types.ColorSnake, 0.4))
	text.Draw(screen, title, fonts.Title, x, 110, types.ColorSnake)

	subtitle := "Arcade snake with power-ups"
	text.Draw(screen, subtitle, fonts.Label, types.CenteredX(fonts.Label, subtitle, w), 145, types.ColorTextDim)

	s.menu.Draw(screen)

	hint := "UP/DOWN to choose, ENTER to confirm"
	text.Draw(screen, hint, fonts.HUD, types.CenteredX(fonts.HUD, hint, w), h-30, types.ColorTextDim)
}

func (s *MenuScreen) OnEnter() {
	s.menu.Select(menuPlay)
}

func (s *MenuScreen) OnExit() {}
