// Starwatch runs a headless star field with its lifecycle mirrored into a
// Donburi world, and logs each star's mirrored state as regenerations land.
//
// Usage:
//
//	starwatch -listen 127.0.0.1:8080
//	client 1 42   # from examples/client, in another terminal
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phanxgames/starfield"
	"github.com/phanxgames/starfield/ecs"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func main() {
	configPath := flag.String("config", "", "path to planetarium.yaml")
	listen := flag.String("listen", "", "override the endpoint address")
	flag.Parse()

	cfg := starfield.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = starfield.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "starwatch:", err)
			os.Exit(1)
		}
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	starfield.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("starwatch: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg starfield.Config, logger *slog.Logger) error {
	field, err := starfield.NewField(cfg, nil)
	if err != nil {
		return err
	}
	world := donburi.NewWorld()
	field.SetEventSink(ecs.NewDonburiSink(world))
	mirror := ecs.NewMirror(world, field)
	ecs.StarEventType.Subscribe(world, func(w donburi.World, ev starfield.StarEvent) {
		if d, ok := mirror.Data(w, ev.Star); ok {
			logger.Info("star mirrored",
				"star", d.Index, "event", ev.Type.String(), "state", d.State.String(),
				"seed", d.Seed, "hue", d.Hue, "applied", d.Applied, "failed", d.Failed)
		}
	})

	srv := starfield.NewServer(cfg.Listen, starfield.NewHandler(field.Dispatcher()))
	if err := srv.Start(); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", "error", err)
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(field.TPS()))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			field.Update()
			events.ProcessAllEvents(world)
		}
	}
}
