package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zeusync/steering/internal/core/observability/log"
	"github.com/zeusync/steering/internal/core/sim"
	"github.com/zeusync/steering/internal/core/steering"
	"github.com/zeusync/steering/internal/injector"
	"github.com/zeusync/steering/internal/server"
)

type options struct {
	scenario   string
	params     string
	ticks      int
	dt         float64
	seed       uint64
	logLevel   string
	listen     string
	tickRate   time.Duration
	token      string
	printFrame bool
}

func main() {
	var opts options
	flag.StringVar(&opts.scenario, "scenario", "", "scenario file (.yaml, .yml or .json); built-in demo when empty")
	flag.StringVar(&opts.params, "params", "", "behavior parameter file (.yaml) overriding the scenario's params")
	flag.IntVar(&opts.ticks, "ticks", 600, "ticks to simulate in headless mode")
	flag.Float64Var(&opts.dt, "dt", 1.0/60, "simulated seconds per tick")
	flag.Uint64Var(&opts.seed, "seed", 0, "wander seed; 0 keeps the scenario's seed")
	flag.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.StringVar(&opts.listen, "listen", "", "serve the live websocket stream on this address instead of running headless")
	flag.DurationVar(&opts.tickRate, "tick-rate", time.Second/60, "wall-clock interval between ticks when serving")
	flag.StringVar(&opts.token, "token", "", "bearer token required by the control endpoints")
	flag.BoolVar(&opts.printFrame, "print", true, "print the final frame as JSON in headless mode")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	level, err := log.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}

	scenario, err := loadScenario(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.listen != "" {
		return serve(ctx, level, scenario, opts)
	}
	return headless(ctx, level, scenario, opts)
}

func loadScenario(opts options) (*sim.Scenario, error) {
	scenario := sim.DemoScenario()
	if opts.scenario != "" {
		var err error
		if scenario, err = sim.LoadScenarioFile(opts.scenario); err != nil {
			return nil, err
		}
	}

	if opts.params != "" {
		f, err := os.Open(opts.params)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if scenario.Params, err = steering.OverlayParamsYAML(f, scenario.Params); err != nil {
			return nil, fmt.Errorf("%s: %w", opts.params, err)
		}
	}

	if opts.seed != 0 {
		scenario.Seed = opts.seed
	}
	return scenario, nil
}

func headless(ctx context.Context, level log.Level, scenario *sim.Scenario, opts options) error {
	world, err := injector.InitializeWorld(level, scenario)
	if err != nil {
		return err
	}
	logger := log.Provide()
	defer func() { _ = logger.Sync() }()

	started := time.Now()
	if err = world.Run(ctx, opts.ticks, opts.dt); err != nil {
		return err
	}
	logger.Info("simulation finished",
		log.String("scenario", scenario.Name),
		log.Int("ticks", opts.ticks),
		log.Duration("took", time.Since(started)),
	)

	if !opts.printFrame {
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(world.Snapshot())
}

func serve(ctx context.Context, level log.Level, scenario *sim.Scenario, opts options) error {
	cfg := server.DefaultServerConfig()
	cfg.ListenAddr = opts.listen
	cfg.TickRate = opts.tickRate
	cfg.DeltaTime = opts.dt
	cfg.ControlToken = opts.token

	srv, err := injector.InitializeServer(level, scenario, cfg)
	if err != nil {
		return err
	}
	logger := log.Provide()
	defer func() { _ = logger.Sync() }()

	if err = srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("shutting down")
	return srv.Stop()
}
