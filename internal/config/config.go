// Package config loads the service configuration from YAML, layered over
// built-in defaults, and validates it.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/internal/logging"
)

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = "pathviz.yaml"

// ErrUnknownSpeed is returned by Speed for an unconfigured preset name.
var ErrUnknownSpeed = errors.New("config: unknown speed")

var validate = newValidator()

// newValidator adds "loglevel", which accepts exactly the names
// logging.ParseLevel does.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := logging.ParseLevel(fl.Field().String())
		return err == nil
	})

	return v
}

// Config is the root of pathviz.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Board  BoardConfig  `yaml:"board"`
	// Speeds maps preset names to the pause after each expansion.
	Speeds       map[string]time.Duration `yaml:"speeds" validate:"required,min=1,dive,gte=0"`
	DefaultSpeed string                   `yaml:"default_speed" validate:"required"`
	Store        StoreConfig              `yaml:"store"`
	Log          logging.Config           `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
	// MaxCells bounds rows*cols of boards accepted over the API.
	MaxCells int `yaml:"max_cells" validate:"gte=1"`
}

// BoardConfig is the default board offered to clients.
type BoardConfig struct {
	Rows        int    `yaml:"rows" validate:"gte=1"`
	Cols        int    `yaml:"cols" validate:"gte=1"`
	Source      [2]int `yaml:"source,flow"`
	Destination [2]int `yaml:"destination,flow"`
	WaterCost   int    `yaml:"water_cost" validate:"gte=0,lte=1000000"`
}

// StoreConfig configures layout persistence.
type StoreConfig struct {
	Path     string `yaml:"path" validate:"required_without=InMemory"`
	InMemory bool   `yaml:"in_memory"`
}

// Default returns the built-in configuration: a 20×50 board from (9,9) to
// (9,40), water cost 10, and the Fast/Average/Slow presets.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxCells:        250_000,
		},
		Board: BoardConfig{
			Rows:        20,
			Cols:        50,
			Source:      [2]int{9, 9},
			Destination: [2]int{9, 40},
			WaterCost:   gridgraph.DefaultWaterCost,
		},
		Speeds: map[string]time.Duration{
			"Fast":    10 * time.Millisecond,
			"Average": 50 * time.Millisecond,
			"Slow":    100 * time.Millisecond,
		},
		DefaultSpeed: "Fast",
		Store:        StoreConfig{InMemory: true},
		Log:          logging.Config{Level: "info"},
	}
}

// Load reads the YAML file at path over Default and validates the result.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve returns path if set, otherwise DefaultFile when it exists in the
// working directory, otherwise "".
func Resolve(path string) string {
	if path != "" {
		return path
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile
	}

	return ""
}

// Validate checks field constraints, the default board, and that
// DefaultSpeed names a preset.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := c.Board.Layout().Build(); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if _, err := c.Speed(c.DefaultSpeed); err != nil {
		return err
	}

	return nil
}

// Layout returns the default board as an empty layout (no walls or water).
func (b BoardConfig) Layout() gridgraph.Layout {
	return gridgraph.Layout{
		Rows:        b.Rows,
		Cols:        b.Cols,
		Source:      gridgraph.Cell{Row: b.Source[0], Col: b.Source[1]},
		Destination: gridgraph.Cell{Row: b.Destination[0], Col: b.Destination[1]},
		WaterCost:   b.WaterCost,
	}
}

// Speed returns the pacing interval of a preset, matching names
// case-insensitively. An empty name selects DefaultSpeed.
func (c Config) Speed(name string) (time.Duration, error) {
	if name == "" {
		name = c.DefaultSpeed
	}
	for k, v := range c.Speeds {
		if strings.EqualFold(k, name) {
			return v, nil
		}
	}

	return 0, fmt.Errorf("%w: %q (have %s)", ErrUnknownSpeed, name, strings.Join(c.SpeedNames(), ", "))
}

// SpeedNames lists presets ordered from fastest to slowest.
func (c Config) SpeedNames() []string {
	names := make([]string, 0, len(c.Speeds))
	for k := range c.Speeds {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if c.Speeds[names[i]] != c.Speeds[names[j]] {
			return c.Speeds[names[i]] < c.Speeds[names[j]]
		}
		return names[i] < names[j]
	})

	return names
}
