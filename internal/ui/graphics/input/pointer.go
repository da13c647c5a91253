package input

import (
	"powersnake/internal/domain"
)

// PointerHandler decides whether the pointer or the keyboard steers. The
// pointer takes over whenever it moves and hands back on a key press.
type PointerHandler struct {
	lastX, lastY int
	seen         bool
	active       bool
}

func NewPointerHandler() *PointerHandler {
	return &PointerHandler{active: true}
}

// Update records the cursor position and reports whether the pointer steers.
func (ph *PointerHandler) Update(x, y int, keyPressed bool) bool {
	if keyPressed {
		ph.active = false
	}
	if ph.seen && (x != ph.lastX || y != ph.lastY) {
		ph.active = true
	}
	ph.lastX, ph.lastY = x, y
	ph.seen = true
	return ph.active
}

// Reset hands control back to the pointer, as at the start of a round.
func (ph *PointerHandler) Reset() {
	ph.active = true
}

func (ph *PointerHandler) Active() bool {
	return ph.active
}

// HeadingToward picks the direction from head to target along the dominant
// axis. Ties go to the vertical axis. ok is false when target is the head cell.
func HeadingToward(head, target domain.Coord) (domain.Direction, bool) {
	dx := target.X - head.X
	dy := target.Y - head.Y

	switch {
	case abs(dx) > abs(dy):
		if dx > 0 {
			return domain.DirectionRight, true
		}
		return domain.DirectionLeft, true
	case dy != 0:
		if dy > 0 {
			return domain.DirectionDown, true
		}
		return domain.DirectionUp, true
	}
	return 0, false
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
