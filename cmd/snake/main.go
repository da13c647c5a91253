package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"powersnake/internal/app"
	"powersnake/internal/domain"
	"powersnake/internal/network"
	"powersnake/internal/ui/graphics"
	"powersnake/internal/ui/graphics/screens"
	"powersnake/internal/ui/types"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	defaults := domain.DefaultGameConfig()

	width := flag.Int("width", int(defaults.Width), "grid width in cells (10-100)")
	height := flag.Int("height", int(defaults.Height), "grid height in cells (10-100)")
	speed := flag.Float64("speed", defaults.BaseSpeed, "starting speed in ticks per second")
	seed := flag.Uint64("seed", 0, "random seed, 0 picks one")
	broadcast := flag.Bool("broadcast", false, "publish snapshots to the spectator group")
	spectate := flag.Bool("spectate", false, "watch a broadcasting session instead of playing")
	group := flag.String("group", network.MulticastAddress, "spectator multicast group")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		cancel()
		os.Exit(0)
	}()

	if *spectate {
		runSpectator(ctx, *group)
		return
	}

	cfg := defaults.Copy()
	var err error
	if cfg.Width, err = domain.GridSide(*width); err != nil {
		log.Fatalf("Invalid -width: %v", err)
	}
	if cfg.Height, err = domain.GridSide(*height); err != nil {
		log.Fatalf("Invalid -height: %v", err)
	}
	cfg.BaseSpeed = *speed
	cfg.MaxSpeed = max(cfg.MaxSpeed, cfg.BaseSpeed)

	var opts []app.Option
	if *seed != 0 {
		opts = append(opts, app.WithSeed(*seed))
	}

	if *broadcast {
		debugNetwork()

		publisher, err := network.NewPublisher(*group)
		if err != nil {
			log.Fatalf("Failed to create publisher: %v", err)
		}
		defer publisher.Close()
		opts = append(opts, app.WithPublisher(publisher))
	}

	application, err := app.New(cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	application.SetPaused(true)

	if err := application.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}
	defer application.Stop()

	engine := graphics.NewEngine("Power Snake")
	engine.SetConfig(application.Config())

	engine.RegisterScreens(
		screens.NewMenuScreen(engine),
		screens.NewConfigScreen(engine),
		screens.NewGameScreen(engine, false),
		screens.NewGameOverScreen(engine),
	)

	go handleAppEvents(application, engine)
	go handleUIEvents(ctx, application, engine)

	go func() {
		<-application.Done()
		cancel()
		os.Exit(0)
	}()

	if err := engine.Run(); err != nil {
		log.Fatalf("UI error: %v", err)
	}
}

func runSpectator(ctx context.Context, group string) {
	debugNetwork()

	listener, err := network.NewListener(group)
	if err != nil {
		log.Fatalf("Failed to join spectator group: %v", err)
	}
	defer listener.Close()

	spectator := app.NewSpectatorService(listener)
	spectator.Start(ctx)
	defer spectator.Stop()

	engine := graphics.NewEngine("Power Snake (spectator)")
	engine.RegisterScreens(
		screens.NewMenuScreen(engine),
		screens.NewConfigScreen(engine),
		screens.NewGameScreen(engine, true),
		screens.NewGameOverScreen(engine),
	)
	engine.SetScreen(types.ScreenGame)

	go func() {
		for event := range spectator.Events() {
			switch event.Type {
			case app.SpectatorSnapshot:
				engine.SetState(event.Payload.(*domain.Snapshot))
			case app.SpectatorFeedsUpdated:
				log.Printf("Spectator: %d session(s) broadcasting", len(spectator.GetFeeds()))
				engine.SetState(spectator.Latest())
			}
		}
	}()

	go func() {
		for event := range engine.Events() {
			if event.Type == types.UIEventExitGame || event.Type == types.UIEventQuit {
				os.Exit(0)
			}
		}
	}()

	if err := engine.Run(); err != nil {
		log.Fatalf("UI error: %v", err)
	}
}

func handleAppEvents(application *app.App, engine *graphics.Engine) {
	for event := range application.Events() {
		switch event.Type {
		case app.AppEventStateUpdated:
			engine.SetState(application.GetState())

		case app.AppEventLevelUp:
			engine.SetMessage("Level up!")

		case app.AppEventPowerUpStarted:
			engine.SetMessage("Power-up! Walls can't hurt you")

		case app.AppEventPowerUpEnded, app.AppEventFoodEaten:
			engine.SetMessage("")

		case app.AppEventError:
			if err, ok := event.Payload.(error); ok {
				engine.SetError(err.Error())
			}
		}
	}
}

func handleUIEvents(ctx context.Context, application *app.App, engine *graphics.Engine) {
	send := func(input app.InputEvent) {
		select {
		case application.Input() <- input:
		case <-ctx.Done():
		}
	}

	for event := range engine.Events() {
		switch event.Type {
		case types.UIEventStartGame:
			send(app.InputEvent{Type: app.InputStart})

		case types.UIEventApplyConfig:
			cfg, ok := event.Payload.(*domain.GameConfig)
			if !ok {
				continue
			}
			log.Printf("Applying settings: %dx%d, speed %.1f-%.1f", cfg.Width, cfg.Height, cfg.BaseSpeed, cfg.MaxSpeed)
			send(app.InputEvent{Type: app.InputRestart, Payload: cfg})
			send(app.InputEvent{Type: app.InputPause, Payload: true})

		case types.UIEventSteer:
			if data, ok := event.Payload.(types.SteerData); ok {
				send(app.InputEvent{Type: app.InputSteer, Payload: data.Direction})
			}

		case types.UIEventAcknowledge:
			send(app.InputEvent{Type: app.InputAcknowledge})

		case types.UIEventExitGame:
			send(app.InputEvent{Type: app.InputPause, Payload: true})

		case types.UIEventQuit:
			send(app.InputEvent{Type: app.InputQuit})
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func debugNetwork() {
	log.Println("=== Network Debug ===")

	interfaces, err := net.Interfaces()
	if err != nil {
		log.Printf("Failed to get interfaces: %v", err)
		return
	}

	for _, ifi := range interfaces {
		if ifi.Flags&net.FlagUp == 0 {
			continue
		}

		flags := []string{}
		if ifi.Flags&net.FlagLoopback != 0 {
			flags = append(flags, "loopback")
		}
		if ifi.Flags&net.FlagMulticast != 0 {
			flags = append(flags, "multicast")
		}

		addrs, _ := ifi.Addrs()
		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				log.Printf("Interface %s: %s %v", ifi.Name, ipnet.IP, flags)
			}
		}
	}
	log.Println("=== End Debug ===")
}
