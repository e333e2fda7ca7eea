package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"lifeboard/src/board"
	"lifeboard/src/config"
	"lifeboard/src/game"
	"lifeboard/src/logging"
	"lifeboard/src/seed"
	"lifeboard/src/view"
)

const (
	viewConsole  = "console"
	viewWindow   = "window"
	viewHeadless = "headless"

	defLogFile = "lifeboard.log" //the console view owns the terminal, logs go to the file
	defScale   = 20
)

var views = map[string]func(env *envOptions, s *game.Session, logger zerolog.Logger) error{
	viewConsole:  runConsole,
	viewWindow:   runWindow,
	viewHeadless: runHeadless,
}

//envOptions are the command line options which are not part of the config file
type envOptions struct {
	configPath string
	view       string
	random     bool
	scale      int
	noColor    bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lifeboard:", err)
		os.Exit(1)
	}
}

func run() error {
	eo, cfg, err := initOptions(os.Args[1:])
	if err != nil {
		return err
	}

	logFile := cfg.LogFile
	if logFile == "" && eo.view == viewConsole {
		logFile = defLogFile
	}
	logger, closer, err := logging.New("lifeboard", cfg.LogLevel, logFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	b, err := board.New(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	randomizer := seed.OneIn(seed.NewRNG(cfg.Seed), cfg.Chance)
	template, err := settle(b, cfg, eo.random, randomizer, logger)
	if err != nil {
		return err
	}

	var stateCh chan game.Status
	if eo.view == viewHeadless {
		stateCh = make(chan game.Status, 10) //the buffered channel to getting the session status
	}
	s := game.NewSession(b, game.Options{
		Interval:   cfg.Interval,
		MaxSteps:   cfg.MaxSteps,
		Randomizer: randomizer,
		Template:   template,
	}, stateCh, logger)

	return views[eo.view](eo, s, logger)
}

//settle fills the initial state from the template or the randomizer
//the configured template is returned to be offered by the views
func settle(b *board.Board, cfg config.Config, random bool, randomizer seed.Decider, logger zerolog.Logger) (seed.Template, error) {
	switch {
	case cfg.Template != "":
		t, err := seed.Lookup(cfg.Template)
		if err != nil {
			return seed.Template{}, errors.Wrapf(err, "known templates: %s", strings.Join(seed.Names(), ", "))
		}
		offset := t.Centered(b.Width(), b.Height())
		skipped := t.Settle(b, offset)
		logger.Info().Str("template", t.Name).Stringer("offset", offset).Int("skipped", skipped).Msg("template settled")
		return t, nil
	case random:
		n := seed.Populate(b, randomizer)
		logger.Info().Int("cells", n).Int("chance", cfg.Chance).Msg("board randomized")
	}
	return seed.Template{}, nil
}

//serve runs the session loop next to the view, the view runs on the calling goroutine
//returning from the view stops the session
func serve(ctx context.Context, s *game.Session, runView func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Serve(gctx)
	})

	err := runView(gctx)
	cancel()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	return err
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runConsole(_ *envOptions, s *game.Session, _ zerolog.Logger) error {
	ui, err := view.NewConsoleUI(s)
	if err != nil {
		return err
	}
	s.Register(ui)

	ctx, stop := signalContext()
	defer stop()
	return serve(ctx, s, ui.Run)
}

func runWindow(eo *envOptions, s *game.Session, _ zerolog.Logger) error {
	w := view.NewWindow(s, eo.scale)
	s.Register(w)

	ctx, stop := signalContext()
	defer stop()
	return serve(ctx, s, w.Run)
}

func runHeadless(eo *envOptions, s *game.Session, logger zerolog.Logger) error {
	if s.Options().MaxSteps == 0 {
		logger.Warn().Msg("no max steps, the simulation runs until interrupted")
	}
	out := view.NewConsoleOut(os.Stdout, 10, !eo.noColor)
	s.Register(out)

	ctx, stop := signalContext()
	defer stop()

	return serve(ctx, s, func(ctx context.Context) error {
		f, err := s.Snapshot(ctx)
		if err != nil {
			return err
		}
		out.Start(s, f.LiveCells)
		s.Start()
		for {
			select {
			case <-ctx.Done():
				out.Finish(f.Status)
				return nil
			case st := <-s.StateCh():
				f.Status = st
				if st.Mode == game.ModePaused || (st.Mode == game.ModeRunning && st.LiveCells == 0) {
					out.Finish(st)
					return nil
				}
			}
		}
	})
}

//initOptions parses args over the config file over the defaults
func initOptions(args []string) (*envOptions, config.Config, error) {
	cli := config.Default()
	eo := &envOptions{view: viewConsole, scale: defScale}

	viewNames := make([]string, 0, len(views))
	for k := range views {
		viewNames = append(viewNames, k)
	}
	sort.Strings(viewNames)

	p := flaggy.NewParser("lifeboard")
	p.Description = "Conway's Game of Life on a bounded board"
	p.ShowHelpOnUnexpected = true
	p.String(&eo.configPath, "c", "config", "TOML configuration file")
	p.Int(&cli.Width, "x", "width", "Width of the board")
	p.Int(&cli.Height, "y", "height", "Height of the board")
	p.Duration(&cli.Interval, "i", "interval", "Simulation speed (interval between the generations), for example 150ms")
	p.Int(&cli.MaxSteps, "s", "maxSteps", "Pause the simulation at this generation, 0 means no limit")
	p.String(&eo.view, "v", "view", "View to use ["+strings.Join(viewNames, "|")+"]")
	p.Bool(&eo.random, "r", "random", "Settle with random data")
	p.String(&cli.Template, "t", "template", "Settle with the template ["+strings.Join(seed.Names(), "|")+"]")
	p.Int(&cli.Chance, "", "chance", "A random cell is seeded with the 1 in N chance")
	p.Int64(&cli.Seed, "", "seed", "Randomizer seed, 0 picks a time based one")
	p.Int(&eo.scale, "", "scale", "Pixels per cell in the window view")
	p.Bool(&eo.noColor, "", "noColor", "Disable colors in the headless view")
	p.String(&cli.LogFile, "", "log", "Log file, the console view logs to "+defLogFile+" by default")
	p.String(&cli.LogLevel, "", "logLevel", "Log level [trace|debug|info|warn|error|disabled]")

	if err := p.ParseArgs(args); err != nil {
		return nil, cli, errors.Wrap(err, "[initOptions] failed to parse arguments")
	}
	if _, ok := views[eo.view]; !ok {
		return nil, cli, errors.Errorf("unknown view %q, expected one of %s", eo.view, strings.Join(viewNames, ", "))
	}

	cfg := config.Default()
	if eo.configPath != "" {
		var err error
		if cfg, err = config.Load(eo.configPath); err != nil {
			return nil, cfg, err
		}
	}
	cfg = overlay(cfg, cli, givenFlags(p))
	if err := cfg.Validate(); err != nil {
		return nil, cfg, errors.Wrap(err, "invalid options")
	}
	return eo, cfg, nil
}

//givenFlags returns the long names of the flags present in the parsed arguments
func givenFlags(p *flaggy.Parser) map[string]bool {
	given := make(map[string]bool)
	for _, v := range p.ParsedValues {
		if v.IsPositional {
			continue
		}
		//the key keeps the value of the --name=value form
		name, _, _ := strings.Cut(v.Key, "=")
		for _, f := range p.Flags {
			if f.HasName(name) {
				given[f.LongName] = true
			}
		}
	}
	return given
}

//overlay applies the options given on the command line, the others keep the cfg values
func overlay(cfg config.Config, cli config.Config, given map[string]bool) config.Config {
	if given["width"] {
		cfg.Width = cli.Width
	}
	if given["height"] {
		cfg.Height = cli.Height
	}
	if given["interval"] {
		cfg.Interval = cli.Interval
	}
	if given["maxSteps"] {
		cfg.MaxSteps = cli.MaxSteps
	}
	if given["chance"] {
		cfg.Chance = cli.Chance
	}
	if given["seed"] {
		cfg.Seed = cli.Seed
	}
	if given["template"] {
		cfg.Template = cli.Template
	}
	if given["log"] {
		cfg.LogFile = cli.LogFile
	}
	if given["logLevel"] {
		cfg.LogLevel = cli.LogLevel
	}
	return cfg
}
