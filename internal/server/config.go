package server

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matkrin/colord/internal/grammar"
)

type Config struct {
	// Documents larger than this are not scanned; the request succeeds
	// with an empty result.
	MaxDocumentSize int `yaml:"maxDocumentSize"`
	// Color keyword matching ("red", "rebeccapurple", ...).
	NamedColors bool `yaml:"namedColors"`
	// Matcher names switched off per language id; "*" disables everywhere.
	DisabledMatchers map[string][]string `yaml:"disabledMatchers"`
	// Idle lifetime of cached scan results.
	CacheTTL Duration `yaml:"cacheTTL"`
}

// Duration decodes YAML strings like "30m" or "1h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func DefaultConfig() Config {
	return Config{
		MaxDocumentSize: 4 << 20,
		NamedColors:     true,
		CacheTTL:        Duration(30 * time.Minute),
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing %s: %w", path, err)
	}
	return config, nil
}

func (c Config) grammarOptions() grammar.Options {
	return grammar.Options{
		NamedColors: c.NamedColors,
		Disabled:    c.DisabledMatchers,
	}
}
