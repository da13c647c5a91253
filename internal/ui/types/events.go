package types

import (
	"powersnake/internal/domain"
)

type UIEvent struct {
	Type    UIEventType
	Payload interface{}
}

type UIEventType int

const (
	UIEventNone UIEventType = iota
	UIEventStartGame
	UIEventApplyConfig
	UIEventExitGame
	UIEventSteer
	UIEventAcknowledge
	UIEventQuit
	UIEventShowConfig
	UIEventShowMenu
)

type SteerData struct {
	Direction domain.Direction
}
