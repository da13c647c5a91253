package graphics

import (
	"log"
	"sync"

	"powersnake/internal/domain"
	"powersnake/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 768
)

type Engine struct {
	width  int
	height int

	currentScreen types.ScreenType
	screenMap     map[types.ScreenType]types.Screen

	state  *domain.Snapshot
	config *domain.GameConfig
	title  string

	dataMu sync.RWMutex

	eventCh chan types.UIEvent
}

func NewEngine(title string) *Engine {
	types.InitFonts()

	return &Engine{
		width:         DefaultWidth,
		height:        DefaultHeight,
		currentScreen: types.ScreenMenu,
		screenMap:     make(map[types.ScreenType]types.Screen),
		title:         title,
		eventCh:       make(chan types.UIEvent, 100),
	}
}

func (e *Engine) RegisterScreens(
	menu types.Screen,
	config types.Screen,
	game types.Screen,
	gameOver types.Screen,
) {
	e.screenMap[types.ScreenMenu] = menu
	e.screenMap[types.ScreenConfig] = config
	e.screenMap[types.ScreenGame] = game
	e.screenMap[types.ScreenGameOver] = gameOver
}

func (e *Engine) Run() error {
	ebiten.SetWindowSize(e.width, e.height)
	ebiten.SetWindowTitle(e.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(e)
}

func (e *Engine) Update() error {
	e.width, e.height = ebiten.WindowSize()

	e.followSessionState()

	screen := e.screenMap[e.currentScreen]
	if screen == nil {
		return nil
	}
	e.pushData(screen)

	e.handleEvent(screen.Update())

	return nil
}

// followSessionState moves between the game and game-over screens as the
// session changes state.
func (e *Engine) followSessionState() {
	e.dataMu.RLock()
	state := e.state
	e.dataMu.RUnlock()

	if state == nil {
		return
	}

	switch {
	case e.currentScreen == types.ScreenGame && state.State == domain.SessionGameOver:
		e.SetScreen(types.ScreenGameOver)
	case e.currentScreen == types.ScreenGameOver && state.State == domain.SessionPlaying:
		e.SetScreen(types.ScreenGame)
	}
}

func (e *Engine) pushData(screen types.Screen) {
	e.dataMu.RLock()
	defer e.dataMu.RUnlock()

	if updater, ok := screen.(GameStateUpdater); ok {
		updater.SetState(e.state)
	}
	if updater, ok := screen.(ConfigUpdater); ok && e.config != nil {
		updater.SetConfig(e.config)
	}
}

func (e *Engine) Draw(screen *ebiten.Image) {
	currentScreen := e.screenMap[e.currentScreen]
	if currentScreen == nil {
		return
	}

	e.pushData(currentScreen)
	currentScreen.Draw(screen)
}

func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (e *Engine) Size() (int, int) {
	return e.width, e.height
}

func (e *Engine) Events() <-chan types.UIEvent {
	return e.eventCh
}

func (e *Engine) SetScreen(screen types.ScreenType) {
	if e.currentScreen != screen {
		if s := e.screenMap[e.currentScreen]; s != nil {
			s.OnExit()
		}
		e.currentScreen = screen
		if s := e.screenMap[e.currentScreen]; s != nil {
			s.OnEnter()
		}
	}
}

func (e *Engine) SetState(state *domain.Snapshot) {
	e.dataMu.Lock()
	e.state = state
	e.dataMu.Unlock()
}

func (e *Engine) SetConfig(config *domain.GameConfig) {
	e.dataMu.Lock()
	e.config = config
	e.dataMu.Unlock()
}

func (e *Engine) SetError(err string) {
	if s, ok := e.screenMap[e.currentScreen].(ErrorSetter); ok {
		s.SetError(err)
	}
}

func (e *Engine) SetMessage(msg string) {
	if s, ok := e.screenMap[e.currentScreen].(MessageSetter); ok {
		s.SetMessage(msg)
	}
}

func (e *Engine) handleEvent(event types.UIEvent) {
	switch event.Type {
	case types.UIEventNone:
		return

	case types.UIEventShowMenu:
		e.SetScreen(types.ScreenMenu)
		return

	case types.UIEventShowConfig:
		e.SetScreen(types.ScreenConfig)
		return

	case types.UIEventStartGame:
		// The previous round's snapshot would bounce straight to game over.
		e.SetState(nil)
		e.SetScreen(types.ScreenGame)

	case types.UIEventApplyConfig:
		if cfg, ok := event.Payload.(*domain.GameConfig); ok {
			e.SetConfig(cfg)
		}
		e.SetScreen(types.ScreenMenu)

	case types.UIEventExitGame:
		e.SetScreen(types.ScreenMenu)
	}

	select {
	case e.eventCh <- event:
	default:
		log.Println("Event channel full, dropping event")
	}
}

func (e *Engine) GetCurrentScreen() types.ScreenType {
	return e.currentScreen
}

type GameStateUpdater interface {
	SetState(state *domain.Snapshot)
}

type ConfigUpdater interface {
	SetConfig(config *domain.GameConfig)
}

type ErrorSetter interface {
	SetError(err string)
}

type MessageSetter interface {
	SetMessage(msg string)
}
