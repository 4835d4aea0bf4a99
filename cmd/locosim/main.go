package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/milk9111/platformer/event"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/logger"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/scene"
	"github.com/urfave/cli"
)

type options struct {
	Level   string
	Script  string
	Ticks   int
	DT      float64
	Probe   string
	Workers int
}

func main() {
	if err := makeapp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "locosim"
	app.Usage = "run a level headless with scripted input"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "level", Value: levels.DefaultLevel, Usage: "level file"},
		cli.StringFlag{Name: "script", Value: "demo", Usage: "tengo input script: a file path or an embedded script name"},
		cli.IntFlag{Name: "ticks", Value: 600, Usage: "number of fixed steps to run"},
		cli.Float64Flag{Name: "dt", Value: scene.DefaultDT, Usage: "fixed step in seconds"},
		cli.StringFlag{Name: "probe", Value: scene.ProbeBoxes, Usage: "probe geometry: boxes or physics"},
		cli.IntFlag{Name: "workers", Value: 0, Usage: "effect workers; 0 uses every CPU"},
		cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
		cli.StringFlag{Name: "log-format", Value: "console", Usage: "console, text or json"},
	}
	app.Action = func(c *cli.Context) error {
		logger.Init(logger.Config{Level: c.String("log-level"), Format: c.String("log-format")})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		_, err := run(ctx, options{
			Level:   c.String("level"),
			Script:  c.String("script"),
			Ticks:   c.Int("ticks"),
			DT:      c.Float64("dt"),
			Probe:   c.String("probe"),
			Workers: c.Int("workers"),
		}, os.Stdout, logger.L())
		return err
	}
	return app
}

func loadScript(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	data, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("locosim: script %s: %w", name, err)
	}
	return data, nil
}

func run(ctx context.Context, opts options, out io.Writer, log *slog.Logger) (scene.Snapshot, error) {
	src, err := loadScript(opts.Script)
	if err != nil {
		return scene.Snapshot{}, err
	}
	script, err := input.NewScriptSource(opts.Script, src)
	if err != nil {
		return scene.Snapshot{}, err
	}

	bus := event.NewBus(log)
	bus.Subscribe(event.EventStateChanged, func(raw any) {
		if e, ok := raw.(event.StateChanged); ok {
			log.Info("transition", "tick", e.Tick, "from", e.From, "to", e.To)
		}
	})
	bus.Subscribe(event.EventDestinationReached, func(raw any) {
		if e, ok := raw.(event.DestinationReached); ok {
			log.Debug("platform turned", "tick", e.Tick, "platform", e.Name)
		}
	})

	s, err := scene.New(ctx, scene.Config{
		Level:   opts.Level,
		Input:   script,
		DT:      opts.DT,
		Probe:   opts.Probe,
		Workers: opts.Workers,
		Bus:     bus,
		Log:     log,
	})
	if err != nil {
		return scene.Snapshot{}, err
	}
	defer s.Close()

	runErr := s.Run(ctx, opts.Ticks)
	snap := s.Snapshot()
	fmt.Fprintf(out, "level=%s ticks=%d state=%s facing=%s position=(%.3f, %.3f, %.3f) transitions=%d rejected_jumps=%d\n",
		s.Level.Name, snap.Tick, snap.State, snap.Facing,
		snap.Position.X(), snap.Position.Y(), snap.Position.Z(),
		snap.Transitions, snap.Rejections)
	return snap, runErr
}
