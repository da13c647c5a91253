package components

import (
	"image/color"

	"powersnake/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button is a menu entry fired by a mouse click, one of its hotkeys, or Enter
// while it is the selected entry of a ButtonColumn.
type Button struct {
	X, Y          int
	Width, Height int

	Label   string
	Hint    string // hotkey names drawn on the right edge
	Hotkeys []ebiten.Key

	Selected bool

	hovered bool
	held    bool
}

func NewButton(label string, width, height int) *Button {
	return &Button{Label: label, Width: width, Height: height}
}

func (b *Button) Bind(hint string, keys ...ebiten.Key) *Button {
	b.Hint = hint
	b.Hotkeys = keys
	return b
}

func (b *Button) SetPosition(x, y int) {
	b.X = x
	b.Y = y
}

func (b *Button) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Update reports whether the button fired this frame. A click fires on
// release inside the button.
func (b *Button) Update() bool {
	b.hovered = b.Contains(ebiten.CursorPosition())

	wasHeld := b.held
	b.held = b.hovered && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if wasHeld && !b.held && b.hovered {
		return true
	}

	for _, key := range b.Hotkeys {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

func (b *Button) fill() color.RGBA {
	switch {
	case b.held:
		return types.Darken(types.ColorButtonHover, 0.8)
	case b.hovered || b.Selected:
		return types.ColorButtonHover
	default:
		return types.ColorButton
	}
}

func (b *Button) Draw(screen *ebiten.Image) {
	x, y := float32(b.X), float32(b.Y)
	w, h := float32(b.Width), float32(b.Height)

	vector.DrawFilledRect(screen, x, y, w, h, b.fill(), false)

	border := types.ColorInputBorder
	if b.Selected {
		border = types.ColorSnake
		vector.DrawFilledRect(screen, x, y, 4, h, types.ColorSnake, false)
	}
	vector.StrokeRect(screen, x, y, w, h, 1, border, false)

	fonts := types.GetFonts()
	baseline := b.Y + (b.Height+fonts.Label.Metrics().CapHeight.Ceil())/2

	labelColor := types.ColorButtonText
	if b.Selected {
		labelColor = types.ColorTextHighlight
	}
	text.Draw(screen, b.Label, fonts.Label, b.X+types.CenteredX(fonts.Label, b.Label, b.Width), baseline, labelColor)

	if b.Hint != "" {
		hx := b.X + b.Width - types.TextWidth(fonts.HUD, b.Hint) - 8
		text.Draw(screen, b.Hint, fonts.HUD, hx, baseline, types.ColorTextDim)
	}
}

// ButtonColumn stacks buttons vertically and keeps one of them selected.
// Up and Down move the selection, Enter fires it.
type ButtonColumn struct {
	Buttons []*Button
	Gap     int

	selected     int
	lastX, lastY int
}

func NewButtonColumn(gap int, buttons ...*Button) *ButtonColumn {
	c := &ButtonColumn{Buttons: buttons, Gap: gap}
	c.Select(0)
	return c
}

func (c *ButtonColumn) Selected() int {
	return c.selected
}

func (c *ButtonColumn) Select(i int) {
	if len(c.Buttons) == 0 {
		return
	}
	c.selected = ((i % len(c.Buttons)) + len(c.Buttons)) % len(c.Buttons)
	for j, b := range c.Buttons {
		b.Selected = j == c.selected
	}
}

// Move shifts the selection by delta, wrapping at both ends.
func (c *ButtonColumn) Move(delta int) {
	c.Select(c.selected + delta)
}

// Layout centers the column on centerX starting at top.
func (c *ButtonColumn) Layout(centerX, top int) {
	y := top
	for _, b := range c.Buttons {
		b.SetPosition(centerX-b.Width/2, y)
		y += b.Height + c.Gap
	}
}

// Update returns the index of the button fired this frame, or -1.
func (c *ButtonColumn) Update() int {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		c.Move(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		c.Move(1)
	}

	// Hover only takes the selection when the pointer moves.
	mx, my := ebiten.CursorPosition()
	moved := mx != c.lastX || my != c.lastY
	c.lastX, c.lastY = mx, my

	fired := -1
	for i, b := range c.Buttons {
		if b.Update() && fired < 0 {
			fired = i
		}
		if moved && b.hovered && i != c.selected {
			c.Select(i)
		}
	}
	if fired < 0 && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		fired = c.selected
	}
	return fired
}

func (c *ButtonColumn) Draw(screen *ebiten.Image) {
	for _, b := range c.Buttons {
		b.Draw(screen)
	}
}
