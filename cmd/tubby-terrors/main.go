package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/tubby-terrors/audio"
	"github.com/lixenwraith/tubby-terrors/config"
	"github.com/lixenwraith/tubby-terrors/engine"
	"github.com/lixenwraith/tubby-terrors/input"
	"github.com/lixenwraith/tubby-terrors/narrative"
	"github.com/lixenwraith/tubby-terrors/network"
	"github.com/lixenwraith/tubby-terrors/service"
	"github.com/lixenwraith/tubby-terrors/status"
	"github.com/lixenwraith/tubby-terrors/system"
	"github.com/lixenwraith/tubby-terrors/telemetry"
	"github.com/lixenwraith/tubby-terrors/terminal"
)

const serviceName = "tubby-terrors"

var (
	frontendFlag = flag.String("frontend", "", "Frontend: terminal, web (overrides TUBBY_FRONTEND)")
	addrFlag     = flag.String("addr", "", "Web bridge listen address (overrides TUBBY_ADDR)")
	seedFlag     = flag.Uint64("seed", 0, "Simulation seed, 0 for time based (overrides TUBBY_SEED)")
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/tubby-terrors.log")
	muteFlag     = flag.Bool("mute", false, "Disable audio output")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

// applyFlags overrides environment settings with explicitly set flags
func applyFlags(cfg *config.Config) error {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frontend":
			cfg.Frontend = config.Frontend(*frontendFlag)
		case "addr":
			cfg.Addr = *addrFlag
		case "seed":
			cfg.Seed = *seedFlag
		case "debug":
			cfg.Debug = *debugFlag
		case "mute":
			cfg.Audio.Enabled = !*muteFlag
		}
	})
	return cfg.Validate()
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg); err != nil {
		return err
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTELEndpoint)
	if err != nil {
		log.Printf("tracing disabled: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	// Services
	statusSvc := status.NewService()
	reg := statusSvc.Registry()

	var output audio.Output
	if cfg.Audio.Enabled {
		output = audio.NewSpeakerOutput()
	}
	audioSvc := audio.NewService(output, reg)
	narrativeSvc := narrative.NewService(reg)
	networkSvc := network.NewService(reg)
	terminalSvc := terminal.NewService(nil)

	hub := service.NewHub()
	for _, svc := range []service.Service{statusSvc, audioSvc, narrativeSvc, networkSvc, terminalSvc} {
		if err := hub.Register(svc); err != nil {
			return err
		}
	}

	netCfg := network.ListenConfig(cfg.Addr)
	if cfg.Frontend != config.FrontendWeb {
		netCfg.Address = ""
	}

	if err := hub.InitAll(map[string][]any{
		"audio":     {cfg.Audio},
		"narrative": {cfg.Narrative},
		"network":   {netCfg},
		"terminal":  {cfg.Frontend == config.FrontendTerminal},
	}); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer hub.StopAll()

	// Simulation
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	sim, err := engine.NewSimulation(seed, reg)
	if err != nil {
		return err
	}
	system.Install(sim)
	sim.Dispatch(input.Intent{Type: input.IntentMusicVolume, Value: cfg.Audio.MusicVolume})
	sim.Dispatch(input.Intent{Type: input.IntentEffectsVolume, Value: cfg.Audio.EffectsVolume})
	log.Printf("simulation seed %d, narrative online=%v", seed, narrativeSvc.Online())

	game := engine.NewGame(sim, engine.GameConfig{
		Audio:         audioSvc.Engine(),
		Narrator:      narrativeSvc,
		FrameInterval: cfg.FrameInterval(),
		MaxInflight:   narrativeSvc.MaxInflight(),
	})
	networkSvc.Attach(game)

	// Frontends
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return game.Run(gctx)
	})

	if screen := terminalSvc.Screen(); screen != nil {
		frontend := terminal.NewFrontend(screen, game)
		g.Go(func() error {
			// Quitting the terminal ends the process
			defer cancel()
			return frontend.Run(gctx)
		})
	} else {
		log.Printf("web frontend on %s", cfg.Addr)
		fmt.Fprintf(os.Stderr, "%s: serving on %s, press Ctrl-C to stop\n", serviceName, cfg.Addr)
	}

	return g.Wait()
}
