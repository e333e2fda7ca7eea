package config

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

//default options
const (
	DefWidth    = 35
	DefHeight   = 35
	DefInterval = time.Millisecond * 100
	DefMaxSteps = 1000
	DefChance   = 6 //1 in 6 cells is seeded by the randomizer
	DefLogLevel = "info"
)

//ErrInvalid is the cause of every Validate error
var ErrInvalid = errors.New("invalid configuration")

//Config is the configuration shared by the board, the session and the views
type Config struct {
	Width    int
	Height   int
	Interval time.Duration //delay between the generations
	MaxSteps int           //the running session pauses when the generation reaches MaxSteps, 0 means no limit
	Chance   int           //"1 in Chance" probability of a cell to be seeded
	Seed     int64         //randomizer seed, 0 picks a time based one
	Template string        //template to settle on start, empty means random or empty board
	LogFile  string        //empty logs to stderr
	LogLevel string
}

//Default returns the configuration with default values
func Default() Config {
	return Config{
		Width:    DefWidth,
		Height:   DefHeight,
		Interval: DefInterval,
		MaxSteps: DefMaxSteps,
		Chance:   DefChance,
		LogLevel: DefLogLevel,
	}
}

//fileConfig is the TOML representation, durations are strings ("150ms")
type fileConfig struct {
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Interval string `toml:"interval"`
	MaxSteps int    `toml:"max_steps"`
	Chance   int    `toml:"chance"`
	Seed     int64  `toml:"seed"`
	Template string `toml:"template"`
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

//Load reads the TOML file over the defaults, only the keys present in the file are applied
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cfg, errors.Wrapf(err, "[config.Load] failed to decode file: %s", path)
	}
	if err := cfg.apply(raw, meta); err != nil {
		return cfg, errors.Wrapf(err, "[config.Load] file: %s", path)
	}
	return cfg, cfg.Validate()
}

//Decode parses the TOML document over the defaults
func Decode(data string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return cfg, errors.Wrap(err, "[config.Decode] failed to decode")
	}
	if err := cfg.apply(raw, meta); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) apply(raw fileConfig, meta toml.MetaData) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if meta.IsDefined("width") {
		c.Width = raw.Width
	}
	if meta.IsDefined("height") {
		c.Height = raw.Height
	}
	if meta.IsDefined("interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Interval))
		if err != nil {
			return errors.Wrap(err, "parse interval")
		}
		c.Interval = d
	}
	if meta.IsDefined("max_steps") {
		c.MaxSteps = raw.MaxSteps
	}
	if meta.IsDefined("chance") {
		c.Chance = raw.Chance
	}
	if meta.IsDefined("seed") {
		c.Seed = raw.Seed
	}
	if meta.IsDefined("template") {
		c.Template = strings.TrimSpace(raw.Template)
	}
	if meta.IsDefined("log_file") {
		c.LogFile = strings.TrimSpace(raw.LogFile)
	}
	if meta.IsDefined("log_level") {
		c.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	return nil
}

//Validate checks the values the board and the session can not work with
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalid, "board dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Interval < 0 {
		return errors.Wrapf(ErrInvalid, "interval must not be negative, got %v", c.Interval)
	}
	if c.MaxSteps < 0 {
		return errors.Wrapf(ErrInvalid, "max steps must not be negative, got %d", c.MaxSteps)
	}
	if c.Chance < 1 {
		return errors.Wrapf(ErrInvalid, "chance must be at least 1, got %d", c.Chance)
	}
	return nil
}
