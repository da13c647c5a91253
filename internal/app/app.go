package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"powersnake/internal/domain"
)

// SnapshotPublisher receives a snapshot after every state change.
type SnapshotPublisher interface {
	Publish(snap *domain.Snapshot) error
}

// App drives one GameSession on a timer and fans its results out to the
// front end and an optional publisher.
type App struct {
	mu      sync.Mutex
	session *domain.GameSession
	rng     *rand.Rand
	clock   func() time.Time
	steer   domain.Direction
	paused  bool

	publisher SnapshotPublisher

	eventCh chan AppEvent
	inputCh chan InputEvent

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type AppEvent struct {
	Type    AppEventType
	Payload interface{}
}

type AppEventType int

const (
	AppEventStateUpdated AppEventType = iota
	AppEventFoodEaten
	AppEventBigFoodEaten
	AppEventLevelUp
	AppEventPowerUpStarted
	AppEventPowerUpEnded
	AppEventBigFoodSpawned
	AppEventBigFoodExpired
	AppEventGameOver
	AppEventError
)

func (t AppEventType) String() string {
	switch t {
	case AppEventStateUpdated:
		return "state updated"
	case AppEventFoodEaten:
		return "food eaten"
	case AppEventBigFoodEaten:
		return "bonus eaten"
	case AppEventLevelUp:
		return "level up"
	case AppEventPowerUpStarted:
		return "power-up started"
	case AppEventPowerUpEnded:
		return "power-up ended"
	case AppEventBigFoodSpawned:
		return "bonus spawned"
	case AppEventBigFoodExpired:
		return "bonus expired"
	case AppEventGameOver:
		return "game over"
	case AppEventError:
		return "error"
	}
	return "unknown"
}

type InputEvent struct {
	Type    InputEventType
	Payload interface{}
}

type InputEventType int

// Payloads: InputSteer takes a domain.Direction, InputRestart a
// *domain.GameConfig, InputStart an optional *domain.GameConfig and InputPause
// a bool. Inputs are applied in the order they were sent.
const (
	InputSteer InputEventType = iota
	InputAcknowledge
	InputRestart
	InputStart
	InputPause
	InputQuit
)

// GameOverPayload carries the result of a finished round.
type GameOverPayload struct {
	Score     int
	Level     int
	HighScore int
	Collision domain.CollisionKind
}

type Option func(*App)

func WithClock(clock func() time.Time) Option {
	return func(a *App) {
		a.clock = clock
	}
}

func WithSeed(seed uint64) Option {
	return func(a *App) {
		a.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

func WithPublisher(p SnapshotPublisher) Option {
	return func(a *App) {
		a.publisher = p
	}
}

func New(cfg *domain.GameConfig, opts ...Option) (*App, error) {
	a := &App{
		clock:   time.Now,
		eventCh: make(chan AppEvent, 100),
		inputCh: make(chan InputEvent, 100),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if cfg == nil {
		cfg = domain.DefaultGameConfig()
	}

	session, err := domain.NewGameSession(cfg, a.rng, a.clock())
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	a.session = session

	return a, nil
}

func (a *App) Start(ctx context.Context) error {
	if a.cancel != nil {
		return errors.New("app already started")
	}
	a.ctx, a.cancel = context.WithCancel(ctx)

	a.wg.Add(1)
	go a.tickLoop()

	a.wg.Add(1)
	go a.inputLoop()

	a.emit(AppEvent{Type: AppEventStateUpdated})
	log.Printf("App started, tick interval %s", a.tickInterval())

	return nil
}

func (a *App) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
}

func (a *App) Events() <-chan AppEvent {
	return a.eventCh
}

func (a *App) Input() chan<- InputEvent {
	return a.inputCh
}

// Done is closed when the app stops, including after InputQuit. It is nil
// before Start.
func (a *App) Done() <-chan struct{} {
	if a.ctx == nil {
		return nil
	}
	return a.ctx.Done()
}

func (a *App) GetState() *domain.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Snapshot(a.clock())
}

func (a *App) Config() *domain.GameConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Config.Copy()
}

// SendSteer latches dir for the next tick. A later call before that tick
// replaces it.
func (a *App) SendSteer(dir domain.Direction) {
	if !dir.Valid() {
		return
	}
	a.mu.Lock()
	a.steer = dir
	a.mu.Unlock()
}

// SetPaused stops or resumes the tick loop. Step still works while paused.
func (a *App) SetPaused(paused bool) {
	a.mu.Lock()
	a.paused = paused
	a.steer = 0
	a.mu.Unlock()
}

func (a *App) Paused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

// Acknowledge starts a new round after game over and reports whether it did.
func (a *App) Acknowledge() bool {
	a.mu.Lock()
	if a.session.State != domain.SessionGameOver {
		a.mu.Unlock()
		return false
	}
	now := a.clock()
	err := a.session.Reset(now)
	a.steer = 0
	snap := a.session.Snapshot(now)
	a.mu.Unlock()

	if err != nil {
		a.reportError(fmt.Errorf("reset: %w", err))
	}
	log.Println("App: new round")
	a.publish(snap)
	a.emit(AppEvent{Type: AppEventStateUpdated})
	return true
}

// Restart replaces the session with one built from cfg. The high score is
// carried over; an invalid cfg leaves the current session untouched.
func (a *App) Restart(cfg *domain.GameConfig) error {
	if cfg == nil {
		return errors.New("restart: nil config")
	}

	a.mu.Lock()
	now := a.clock()
	session, err := domain.NewGameSession(cfg, a.rng, now)
	if err != nil {
		a.mu.Unlock()
		return fmt.Errorf("restart: %w", err)
	}
	session.HighScore = a.session.HighScore
	a.session = session
	a.steer = 0
	snap := session.Snapshot(now)
	a.mu.Unlock()

	log.Printf("App: restarted on %dx%d grid", cfg.Width, cfg.Height)
	a.publish(snap)
	a.emit(AppEvent{Type: AppEventStateUpdated})
	return nil
}

// Step runs one tick and dispatches its events. Ticks after game over are
// no-ops until Acknowledge.
func (a *App) Step() *domain.TickResult {
	a.mu.Lock()
	if a.session.State == domain.SessionGameOver {
		a.mu.Unlock()
		return &domain.TickResult{GameOver: true}
	}

	dir := a.steer
	a.steer = 0
	now := a.clock()
	result := a.session.Tick(dir, now)
	snap := a.session.Snapshot(now)
	a.mu.Unlock()

	a.dispatch(result, snap)
	a.publish(snap)
	return result
}

func (a *App) tickInterval() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.TickInterval()
}

func (a *App) tickLoop() {
	defer a.wg.Done()

	timer := time.NewTimer(a.tickInterval())
	defer timer.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-timer.C:
			if !a.Paused() {
				a.Step()
			}
			timer.Reset(a.tickInterval())
		}
	}
}

func (a *App) dispatch(result *domain.TickResult, snap *domain.Snapshot) {
	for _, err := range result.Errors {
		a.reportError(err)
	}

	if result.AteFood {
		a.emit(AppEvent{Type: AppEventFoodEaten, Payload: snap.Score})
	}
	if result.LevelUp {
		log.Printf("App: level %d, %d obstacle clusters", snap.Level, result.RegeneratedObstacles)
		a.emit(AppEvent{Type: AppEventLevelUp, Payload: snap.Level})
	}
	if result.BigFoodSpawned {
		a.emit(AppEvent{Type: AppEventBigFoodSpawned})
	}
	if result.BigFoodExpired {
		a.emit(AppEvent{Type: AppEventBigFoodExpired})
	}
	if result.AteBigFood {
		a.emit(AppEvent{Type: AppEventBigFoodEaten, Payload: snap.Score})
	}
	if result.PowerUpStarted {
		a.emit(AppEvent{Type: AppEventPowerUpStarted})
	}
	if result.PowerUpEnded {
		a.emit(AppEvent{Type: AppEventPowerUpEnded})
	}

	if result.GameOver {
		log.Printf("App: game over, score %d, level %d", snap.FinalScore, snap.FinalLevel)
		a.emit(AppEvent{
			Type: AppEventGameOver,
			Payload: GameOverPayload{
				Score:     snap.FinalScore,
				Level:     snap.FinalLevel,
				HighScore: snap.HighScore,
				Collision: result.Collision,
			},
		})
	}

	a.emit(AppEvent{Type: AppEventStateUpdated})
}

func (a *App) reportError(err error) {
	log.Printf("App: %v", err)
	a.emit(AppEvent{Type: AppEventError, Payload: err})
}

func (a *App) publish(snap *domain.Snapshot) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.Publish(snap); err != nil {
		log.Printf("App: publish failed: %v", err)
	}
}

// emit drops the event when the consumer lags behind.
func (a *App) emit(event AppEvent) {
	select {
	case a.eventCh <- event:
	default:
	}
}

func (a *App) inputLoop() {
	defer a.wg.Done()

	for {
		select {
		case <-a.ctx.Done():
			return

		case input := <-a.inputCh:
			a.handleInput(input)
		}
	}
}

func (a *App) handleInput(input InputEvent) {
	switch input.Type {
	case InputSteer:
		dir, ok := input.Payload.(domain.Direction)
		if !ok {
			a.rejectInput(input)
			return
		}
		a.SendSteer(dir)

	case InputAcknowledge:
		a.Acknowledge()

	case InputRestart:
		cfg, ok := input.Payload.(*domain.GameConfig)
		if !ok {
			a.rejectInput(input)
			return
		}
		if err := a.Restart(cfg); err != nil {
			a.reportError(err)
		}

	case InputStart:
		cfg, ok := input.Payload.(*domain.GameConfig)
		if !ok && input.Payload != nil {
			a.rejectInput(input)
			return
		}
		if cfg == nil {
			cfg = a.Config()
		}
		if err := a.Restart(cfg); err != nil {
			a.reportError(err)
			return
		}
		a.SetPaused(false)

	case InputPause:
		paused, ok := input.Payload.(bool)
		if !ok {
			a.rejectInput(input)
			return
		}
		a.SetPaused(paused)

	case InputQuit:
		log.Println("App: quit requested")
		a.cancel()
	}
}

func (a *App) rejectInput(input InputEvent) {
	a.reportError(fmt.Errorf("input %d: unexpected payload %T", input.Type, input.Payload))
}
