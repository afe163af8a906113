package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/ini.v1"
)

const (
	UIWindow   = "window"
	UITerminal = "terminal"
)

type GameConfig struct {
	TileCount         int     `ini:"tile_count"`
	TickMS            int     `ini:"tick_ms"`
	BackgroundSnakes  int     `ini:"background_snakes"`
	TurnChance        float64 `ini:"turn_chance"`
	RestartDebounceMS int     `ini:"restart_debounce_ms"`
	Seed              uint64  `ini:"seed"`
}

type StorageConfig struct {
	StatsFile string `ini:"stats_file"`
}

type UIConfig struct {
	Mode     string `ini:"mode"`
	CellSize int    `ini:"cell_size"`
}

type LogConfig struct {
	Debug bool   `ini:"debug"`
	Dir   string `ini:"dir"`
}

// Config mirrors the sections of snake.ini.
type Config struct {
	Game    GameConfig    `ini:"game"`
	Storage StorageConfig `ini:"storage"`
	UI      UIConfig      `ini:"ui"`
	Log     LogConfig     `ini:"log"`
}

func Default() *Config {
	return &Config{
		Game: GameConfig{
			TileCount:         20,
			TickMS:            100,
			BackgroundSnakes:  8,
			TurnChance:        0.02,
			RestartDebounceMS: 150,
		},
		Storage: StorageConfig{
			StatsFile: filepath.Join("data", "gamestats.json"),
		},
		UI: UIConfig{
			Mode:     UIWindow,
			CellSize: 20,
		},
		Log: LogConfig{
			Dir: "logs",
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default, and a missing file yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := iniFile.MapTo(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as an ini file.
func Save(path string, cfg *Config) error {
	iniFile := ini.Empty()
	if err := iniFile.ReflectFrom(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	return iniFile.SaveTo(path)
}

func (c *Config) Validate() error {
	if c.Game.TileCount < 2 {
		return fmt.Errorf("game.tile_count must be at least 2, got %d", c.Game.TileCount)
	}
	if c.Game.TickMS <= 0 {
		return fmt.Errorf("game.tick_ms must be positive, got %d", c.Game.TickMS)
	}
	if c.Game.BackgroundSnakes < 0 {
		return fmt.Errorf("game.background_snakes must not be negative, got %d", c.Game.BackgroundSnakes)
	}
	if c.Game.TurnChance < 0 || c.Game.TurnChance > 1 {
		return fmt.Errorf("game.turn_chance must be within [0,1], got %v", c.Game.TurnChance)
	}
	if c.Game.RestartDebounceMS < 0 {
		return fmt.Errorf("game.restart_debounce_ms must not be negative, got %d", c.Game.RestartDebounceMS)
	}
	if c.UI.Mode != UIWindow && c.UI.Mode != UITerminal {
		return fmt.Errorf("ui.mode must be %q or %q, got %q", UIWindow, UITerminal, c.UI.Mode)
	}
	if c.UI.CellSize <= 0 {
		return fmt.Errorf("ui.cell_size must be positive, got %d", c.UI.CellSize)
	}
	if c.Storage.StatsFile == "" {
		return fmt.Errorf("storage.stats_file must be set")
	}
	return nil
}

func (c *Config) TickPeriod() time.Duration {
	return time.Duration(c.Game.TickMS) * time.Millisecond
}

func (c *Config) RestartDebounce() time.Duration {
	return time.Duration(c.Game.RestartDebounceMS) * time.Millisecond
}
