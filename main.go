package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/game/manager"
	"snake-arcade/ui"
	"snake-arcade/ui/terminal"
)

const (
	windowTitle   = "Snake"
	terminalFrame = 16 * time.Millisecond
)

var (
	colorAlert = color.New(color.FgRed)
	colorInfo  = color.New(color.FgGreen)
)

type launch struct {
	cfg        *config.Config
	configPath string
	initConfig bool
}

func newFlagSet(out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.String("config", "snake.ini", "path to the ini config file")
	fs.String("ui", config.UIWindow, "frontend: window or terminal")
	fs.Int("speed", 100, "tick period in milliseconds")
	fs.Uint64("seed", 0, "random seed, 0 seeds from the clock")
	fs.Bool("debug", false, "write debug logs to the log directory")
	fs.Bool("init-config", false, "write the effective config to -config and exit")
	return fs
}

// parseLaunch loads the config file named by -config and applies the flags
// that were set explicitly on top of it.
func parseLaunch(args []string, out io.Writer) (*launch, error) {
	fs := newFlagSet(out)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	get := func(name string) any {
		return fs.Lookup(name).Value.(flag.Getter).Get()
	}

	l := &launch{
		configPath: get("config").(string),
		initConfig: get("init-config").(bool),
	}
	cfg, err := config.Load(l.configPath)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ui":
			cfg.UI.Mode = get("ui").(string)
		case "speed":
			cfg.Game.TickMS = get("speed").(int)
		case "seed":
			cfg.Game.Seed = get("seed").(uint64)
		case "debug":
			cfg.Log.Debug = get("debug").(bool)
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	l.cfg = cfg
	return l, nil
}

func gameOptions(cfg *config.Config, store *manager.StateManager) game.Options {
	return game.Options{
		TileCount:        cfg.Game.TileCount,
		TickPeriod:       cfg.TickPeriod(),
		BackgroundSnakes: cfg.Game.BackgroundSnakes,
		TurnChance:       cfg.Game.TurnChance,
		RestartDebounce:  cfg.RestartDebounce(),
		Seed:             cfg.Game.Seed,
		Store:            store,
		Recorder:         store,
	}
}

func main() {
	l, err := parseLaunch(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		colorAlert.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if l.initConfig {
		if err := config.Save(l.configPath, l.cfg); err != nil {
			colorAlert.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		colorInfo.Printf("Wrote %s\n", l.configPath)
		return
	}

	if err := run(l.cfg); err != nil {
		colorAlert.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logDir = cfg.Log.Dir
	if logFile := setupLogging(cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}

	store, err := manager.NewStateManager(cfg.Storage.StatsFile)
	if err != nil {
		return err
	}
	opts := gameOptions(cfg, store)

	log.Printf("starting %s frontend, grid %d, tick %v", cfg.UI.Mode, cfg.Game.TileCount, cfg.TickPeriod())
	switch cfg.UI.Mode {
	case config.UITerminal:
		err = runTerminal(opts)
	default:
		runWindow(cfg, opts)
	}
	if err != nil {
		return err
	}

	history := store.GetHistory()
	if n := len(history); n > 0 {
		last := history[n-1]
		fmt.Printf("Last game: %d (%s)\n", last.Score, last.Cause)
	}
	colorInfo.Printf("High score: %d\n", store.HighScore())
	return nil
}

func runWindow(cfg *config.Config, opts game.Options) {
	width, height := ui.WindowSize(cfg.Game.TileCount, cfg.UI.CellSize)
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(width, height, windowTitle)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	renderer := ui.NewRenderer(cfg.UI.CellSize)
	opts.Presenter = renderer
	g := game.NewGame(opts)
	g.Render()

	for !rl.WindowShouldClose() {
		ui.HandleInput(g)
		g.Update()
		renderer.Draw()
	}
}

func runTerminal(opts game.Options) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer s.Fini()
	s.EnableMouse()
	s.HideCursor()

	opts.Presenter = terminal.NewRenderer(s)
	g := game.NewGame(opts)
	terminal.Run(g, s, terminalFrame)
	return nil
}
