package meta

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SearchConfig tunes the searcher of one side.
type SearchConfig struct {
	Depth   int    `yaml:"depth"`
	Nodes   int    `yaml:"nodes"`
	Disturb int    `yaml:"disturb"`
	Seed    uint64 `yaml:"seed"`
}

type Config struct {
	Black    SearchConfig `yaml:"black"`
	White    SearchConfig `yaml:"white"`
	MaxTurns int          `yaml:"max_turns"`
	LogLevel string       `yaml:"log_level"`
}

func DefaultSearch() SearchConfig {
	return SearchConfig{Depth: DEPTH, Nodes: NODES, Disturb: DISTURB}
}

func Defaults() Config {
	return Config{
		Black:    DefaultSearch(),
		White:    DefaultSearch(),
		MaxTurns: MAX_TURNS,
		LogLevel: "info",
	}
}

// Load reads a YAML config over the defaults. Fields missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	config := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := config.Validate(); err != nil {
		return config, errors.Wrapf(err, "invalid config %s", path)
	}
	return config, nil
}

func (c Config) Validate() error {
	if err := c.Black.validate(); err != nil {
		return errors.Wrap(err, "black")
	}
	if err := c.White.validate(); err != nil {
		return errors.Wrap(err, "white")
	}
	if c.MaxTurns <= 0 {
		return errors.Errorf("max_turns must be positive, got %d", c.MaxTurns)
	}
	return nil
}

func (s SearchConfig) validate() error {
	if s.Depth <= 0 {
		return errors.Errorf("depth must be positive, got %d", s.Depth)
	}
	if s.Nodes <= 0 {
		return errors.Errorf("nodes must be positive, got %d", s.Nodes)
	}
	if s.Disturb < 0 {
		return errors.Errorf("disturb must not be negative, got %d", s.Disturb)
	}
	return nil
}
