package input

import (
	"powersnake/internal/domain"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var directionKeys = map[domain.Direction][]ebiten.Key{
	domain.DirectionUp:    {ebiten.KeyW, ebiten.KeyUp},
	domain.DirectionDown:  {ebiten.KeyS, ebiten.KeyDown},
	domain.DirectionLeft:  {ebiten.KeyA, ebiten.KeyLeft},
	domain.DirectionRight: {ebiten.KeyD, ebiten.KeyRight},
}

type KeyboardHandler struct{}

func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{}
}

// Update returns the direction of a key pressed this frame, or 0.
func (kh *KeyboardHandler) Update() domain.Direction {
	for _, dir := range domain.Directions {
		for _, key := range directionKeys[dir] {
			if inpututil.IsKeyJustPressed(key) {
				return dir
			}
		}
	}
	return 0
}

func IsEscapePressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func IsTabPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyTab)
}

// IsSpaceReleased fires on key up so that a held SPACE does not skip the
// game-over screen.
func IsSpaceReleased() bool {
	return inpututil.IsKeyJustReleased(ebiten.KeySpace)
}
