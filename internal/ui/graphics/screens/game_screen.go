package screens

import (
	"powersnake/internal/domain"
	"powersnake/internal/ui/graphics/components"
	"powersnake/internal/ui/graphics/input"
	"powersnake/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

type GameScreen struct {
	ctx types.ScreenContext

	fieldRenderer *components.FieldRenderer
	hud           *components.HUD
	keyboard      *input.KeyboardHandler
	pointer       *input.PointerHandler

	state *domain.Snapshot
	// spectate disables steering for a screen that follows a broadcast.
	spectate bool

	message  string
	errorMsg string
}

func NewGameScreen(ctx types.ScreenContext, spectate bool) *GameScreen {
	return &GameScreen{
		ctx:           ctx,
		fieldRenderer: components.NewFieldRenderer(),
		hud:           components.NewHUD(0, 0, 0),
		keyboard:      input.NewKeyboardHandler(),
		pointer:       input.NewPointerHandler(),
		spectate:      spectate,
	}
}

func (s *GameScreen) SetState(state *domain.Snapshot) {
	s.state = state
}

func (s *GameScreen) Update() types.UIEvent {
	if input.IsEscapePressed() {
		return types.UIEvent{Type: types.UIEventExitGame}
	}

	if s.spectate || s.state == nil {
		return types.UIEvent{Type: types.UIEventNone}
	}

	dir := s.keyboard.Update()
	cx, cy := ebiten.CursorPosition()
	pointerSteers := s.pointer.Update(cx, cy, dir != 0)

	if pointerSteers {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		dir = s.pointerDirection(cx, cy)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	if dir != 0 && dir != s.state.Direction {
		return types.UIEvent{
			Type:    types.UIEventSteer,
			Payload: types.SteerData{Direction: dir},
		}
	}

	return types.UIEvent{Type: types.UIEventNone}
}

func (s *GameScreen) pointerDirection(cx, cy int) domain.Direction {
	w, h := s.ctx.Size()
	field := s.state.Field()
	s.fieldRenderer.CalculateLayout(w, h, field)
	target, ok := s.fieldRenderer.CellAt(cx, cy, field)
	if !ok {
		return 0
	}
	dir, _ := input.HeadingToward(s.state.Head(), target)
	return dir
}

func (s *GameScreen) Draw(screen *ebiten.Image) {
	screen.Fill(types.ColorBackground)

	w, h := s.ctx.Size()
	fonts := types.GetFonts()

	if s.state == nil {
		drawCentered(screen, fonts.Label, "Waiting for game state...", w, h/2, types.ColorTextDim)
		return
	}

	field := s.state.Field()
	s.fieldRenderer.CalculateLayout(w, h, field)

	s.fieldRenderer.DrawField(screen, field)
	s.fieldRenderer.DrawSnake(screen, s.state)
	s.fieldRenderer.DrawFood(screen, s.state.Food)
	s.fieldRenderer.DrawFood(screen, s.state.BigFood)
	s.fieldRenderer.DrawObstacles(screen, s.state.Obstacles)

	s.hud.X = 20
	s.hud.Y = 8
	s.hud.Width = w - 40
	s.hud.Draw(screen, s.state)

	s.drawFooter(screen, w, h)
}

func (s *GameScreen) drawFooter(screen *ebiten.Image, w, h int) {
	fonts := types.GetFonts()

	hint := "W/A/S/D, arrows or mouse to steer  |  ESC for menu"
	if s.spectate {
		hint = "Spectating (no control)  |  ESC to quit"
	}
	text.Draw(screen, hint, fonts.HUD, 20, h-15, types.ColorTextDim)

	if s.errorMsg != "" {
		text.Draw(screen, s.errorMsg, fonts.Label, w-types.TextWidth(fonts.Label, s.errorMsg)-20, h-15, types.ColorError)
	} else if s.message != "" {
		text.Draw(screen, s.message, fonts.Banner, w-types.TextWidth(fonts.Banner, s.message)-20, h-15, types.ColorSuccess)
	}
}

func (s *GameScreen) OnEnter() {
	s.errorMsg = ""
	s.message = ""
	s.pointer.Reset()
}

func (s *GameScreen) OnExit() {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}

func (s *GameScreen) SetError(err string) {
	s.errorMsg = err
}

func (s *GameScreen) SetMessage(msg string) {
	s.message = msg
}
