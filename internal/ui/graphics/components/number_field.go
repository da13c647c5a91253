package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"powersnake/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const maxFieldDigits = 6

// NumberField edits one numeric setting. Integer fields take digits only and
// decimal fields one point as well. Up and Down step the value within
// [Min, Max].
type NumberField struct {
	X, Y          int
	Width, Height int

	Label   string
	Decimal bool
	Min     float64
	Max     float64
	Step    float64

	Text    string
	Focused bool

	frame int
}

func NewIntField(label string, min, max int) *NumberField {
	return &NumberField{
		Label:  label,
		Width:  140,
		Height: 35,
		Min:    float64(min),
		Max:    float64(max),
		Step:   1,
	}
}

func NewDecimalField(label string, min, max, step float64) *NumberField {
	return &NumberField{
		Label:   label,
		Width:   140,
		Height:  35,
		Decimal: true,
		Min:     min,
		Max:     max,
		Step:    step,
	}
}

func (f *NumberField) SetPosition(x, y int) {
	f.X = x
	f.Y = y
}

func (f *NumberField) Contains(x, y int) bool {
	return x >= f.X && x < f.X+f.Width && y >= f.Y && y < f.Y+f.Height
}

// Type appends r when the field accepts it.
func (f *NumberField) Type(r rune) bool {
	if len(f.Text) >= maxFieldDigits {
		return false
	}
	switch {
	case r >= '0' && r <= '9':
	case r == '.' && f.Decimal && !strings.ContainsRune(f.Text, '.'):
	default:
		return false
	}
	f.Text += string(r)
	return true
}

func (f *NumberField) Erase() {
	if f.Text != "" {
		f.Text = f.Text[:len(f.Text)-1]
	}
}

func (f *NumberField) SetValue(v float64) {
	v = math.Max(f.Min, math.Min(f.Max, v))
	if f.Decimal {
		f.Text = strconv.FormatFloat(v, 'f', -1, 64)
	} else {
		f.Text = strconv.Itoa(int(v))
	}
}

// Nudge moves the value by steps. Unparsable text restarts from Min.
func (f *NumberField) Nudge(steps int) {
	v, err := f.Float()
	if err != nil {
		v = f.Min
	}
	f.SetValue(v + float64(steps)*f.Step)
}

// Int parses the text as an int32.
func (f *NumberField) Int() (int32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(f.Text), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: not a whole number", strings.ToLower(f.Label))
	}
	return int32(n), nil
}

func (f *NumberField) Float() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(f.Text), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number", strings.ToLower(f.Label))
	}
	return v, nil
}

func (f *NumberField) InRange() bool {
	v, err := f.Float()
	return err == nil && v >= f.Min && v <= f.Max
}

func (f *NumberField) Update() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		f.Focused = f.Contains(ebiten.CursorPosition())
	}
	if !f.Focused {
		return
	}
	f.frame++

	for _, r := range ebiten.AppendInputChars(nil) {
		f.Type(r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		f.Erase()
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		f.Nudge(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		f.Nudge(-1)
	}
}

func (f *NumberField) caption() string {
	if f.Decimal {
		return fmt.Sprintf("%s (%g-%g)", f.Label, f.Min, f.Max)
	}
	return fmt.Sprintf("%s (%d-%d)", f.Label, int(f.Min), int(f.Max))
}

func (f *NumberField) Draw(screen *ebiten.Image) {
	fonts := types.GetFonts()
	x, y := float32(f.X), float32(f.Y)
	w, h := float32(f.Width), float32(f.Height)

	text.Draw(screen, f.caption(), fonts.HUD, f.X, f.Y-8, types.ColorText)

	vector.DrawFilledRect(screen, x, y, w, h, types.ColorInputBg, false)

	border := types.ColorInputBorder
	switch {
	case f.Text != "" && !f.InRange():
		border = types.ColorError
	case f.Focused:
		border = types.ColorInputFocused
	}
	vector.StrokeRect(screen, x, y, w, h, 2, border, false)

	baseline := f.Y + (f.Height+fonts.Label.Metrics().CapHeight.Ceil())/2
	text.Draw(screen, f.Text, fonts.Label, f.X+8, baseline, types.ColorText)

	if f.Focused && (f.frame/30)%2 == 0 {
		cx := x + 8 + float32(types.TextWidth(fonts.Label, f.Text)) + 2
		vector.StrokeLine(screen, cx, y+6, cx, y+h-6, 2, types.ColorText, false)
	}
}
