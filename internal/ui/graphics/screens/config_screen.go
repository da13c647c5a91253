package screens

import (
	"errors"
	"strconv"
	"strings"

	"powersnake/internal/domain"
	"powersnake/internal/ui/graphics/components"
	"powersnake/internal/ui/graphics/input"
	"powersnake/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// SettingsForm holds the raw text of the settings inputs.
type SettingsForm struct {
	Width     string
	Height    string
	BaseSpeed string
	MaxSpeed  string
}

func FormFromConfig(cfg *domain.GameConfig) SettingsForm {
	return SettingsForm{
		Width:     strconv.Itoa(int(cfg.Width)),
		Height:    strconv.Itoa(int(cfg.Height)),
		BaseSpeed: strconv.FormatFloat(cfg.BaseSpeed, 'f', -1, 64),
		MaxSpeed:  strconv.FormatFloat(cfg.MaxSpeed, 'f', -1, 64),
	}
}

// Apply parses the form on top of base and validates the result. base is not
// modified.
func (f SettingsForm) Apply(base *domain.GameConfig) (*domain.GameConfig, error) {
	cfg := base.Copy()

	width, err := strconv.ParseInt(strings.TrimSpace(f.Width), 10, 32)
	if err != nil {
		return nil, errors.New("width: not a whole number")
	}
	height, err := strconv.ParseInt(strings.TrimSpace(f.Height), 10, 32)
	if err != nil {
		return nil, errors.New("height: not a whole number")
	}
	baseSpeed, err := strconv.ParseFloat(strings.TrimSpace(f.BaseSpeed), 64)
	if err != nil {
		return nil, errors.New("start speed: not a number")
	}
	maxSpeed, err := strconv.ParseFloat(strings.TrimSpace(f.MaxSpeed), 64)
	if err != nil {
		return nil, errors.New("max speed: not a number")
	}

	cfg.Width = int32(width)
	cfg.Height = int32(height)
	cfg.BaseSpeed = baseSpeed
	cfg.MaxSpeed = maxSpeed

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type ConfigScreen struct {
	ctx types.ScreenContext

	config *domain.GameConfig

	width     *components.NumberField
	height    *components.NumberField
	baseSpeed *components.NumberField
	maxSpeed  *components.NumberField

	btnSave *components.Button
	btnBack *components.Button

	errorMsg string
}

func NewConfigScreen(ctx types.ScreenContext) *ConfigScreen {
	return &ConfigScreen{
		ctx:       ctx,
		config:    domain.DefaultGameConfig(),
		width:     components.NewIntField("Width", 10, 100),
		height:    components.NewIntField("Height", 10, 100),
		baseSpeed: components.NewDecimalField("Start speed", 1, 60, 0.5),
		maxSpeed:  components.NewDecimalField("Max speed", 1, 60, 0.5),
		btnSave:   components.NewButton("Save", 140, 45).Bind("ENTER", ebiten.KeyEnter),
		btnBack:   components.NewButton("Back", 140, 45).Bind("ESC", ebiten.KeyEscape),
	}
}

func (s *ConfigScreen) SetConfig(config *domain.GameConfig) {
	s.config = config
}

func (s *ConfigScreen) fields() []*components.NumberField {
	return []*components.NumberField{s.width, s.height, s.baseSpeed, s.maxSpeed}
}

func (s *ConfigScreen) form() SettingsForm {
	return SettingsForm{
		Width:     s.width.Text,
		Height:    s.height.Text,
		BaseSpeed: s.baseSpeed.Text,
		MaxSpeed:  s.maxSpeed.Text,
	}
}

func (s *ConfigScreen) Update() types.UIEvent {
	w, _ := s.ctx.Size()
	centerX := w / 2
	startY := 120

	s.width.SetPosition(centerX-150, startY)
	s.height.SetPosition(centerX+10, startY)
	s.baseSpeed.SetPosition(centerX-150, startY+70)
	s.maxSpeed.SetPosition(centerX+10, startY+70)
	s.btnBack.SetPosition(centerX-150, startY+140)
	s.btnSave.SetPosition(centerX+10, startY+140)

	for _, f := range s.fields() {
		f.Update()
	}

	if input.IsTabPressed() {
		s.cycleFocus()
	}

	if s.btnBack.Update() {
		return types.UIEvent{Type: types.UIEventShowMenu}
	}

	if s.btnSave.Update() {
		cfg, err := s.form().Apply(s.config)
		if err != nil {
			s.errorMsg = err.Error()
			return types.UIEvent{Type: types.UIEventNone}
		}
		return types.UIEvent{Type: types.UIEventApplyConfig, Payload: cfg}
	}

	return types.UIEvent{Type: types.UIEventNone}
}

func (s *ConfigScreen) cycleFocus() {
	fields := s.fields()

	current := -1
	for i, f := range fields {
		if f.Focused {
			current = i
			f.Focused = false
			break
		}
	}
	fields[(current+1)%len(fields)].Focused = true
}

func (s *ConfigScreen) Draw(screen *ebiten.Image) {
	screen.Fill(types.ColorBackground)

	fonts := types.GetFonts()
	w, h := s.ctx.Size()

	title := "SETTINGS"
	text.Draw(screen, title, fonts.Title, types.CenteredX(fonts.Title, title, w), 70, types.ColorTextHighlight)

	for _, f := range s.fields() {
		f.Draw(screen)
	}
	s.btnBack.Draw(screen)
	s.btnSave.Draw(screen)

	if s.errorMsg != "" {
		text.Draw(screen, s.errorMsg, fonts.Label, types.CenteredX(fonts.Label, s.errorMsg, w), 350, types.ColorError)
	}

	hint := "TAB next field, UP/DOWN adjust, ENTER save"
	text.Draw(screen, hint, fonts.HUD, types.CenteredX(fonts.HUD, hint, w), h-30, types.ColorTextDim)
}

func (s *ConfigScreen) OnEnter() {
	s.errorMsg = ""

	form := FormFromConfig(s.config)
	s.width.Text = form.Width
	s.height.Text = form.Height
	s.baseSpeed.Text = form.BaseSpeed
	s.maxSpeed.Text = form.MaxSpeed

	for _, f := range s.fields() {
		f.Focused = false
	}
	s.width.Focused = true
}

func (s *ConfigScreen) OnExit() {}
