package pump

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Transports accepted by Config.Transport.
const (
	TransportRing    = "ring"
	TransportChannel = "channel"
)

// Config describes one pump run.
type Config struct {
	Name      string        `yaml:"name"`
	Transport string        `yaml:"transport"`
	Items     int           `yaml:"items"`
	Capacity  int           `yaml:"capacity"`
	Batch     int           `yaml:"batch"`
	Rate      float64       `yaml:"rate"` // items per second, 0 is unlimited
	Burst     int           `yaml:"burst"`
	Progress  time.Duration `yaml:"progress"`
	Timeout   time.Duration `yaml:"timeout"`
	Metrics   string        `yaml:"metrics_addr"`
}

// DefaultConfig returns the settings used when no file or flag overrides them.
func DefaultConfig() Config {
	return Config{
		Name:      "pump",
		Transport: TransportRing,
		Items:     10_000_000,
		Capacity:  1024,
		Batch:     64,
		Burst:     1024,
		Progress:  time.Second,
	}
}

// LoadConfig reads YAML from path over the defaults. Unknown keys are errors.
// An empty file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("pump: open config: %w", err)
	}
	defer f.Close()

	if err := decodeConfig(f, &cfg); err != nil {
		return cfg, fmt.Errorf("pump: parse %s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Transport != TransportRing && c.Transport != TransportChannel:
		return fmt.Errorf("%w: transport %q (want %s or %s)", ErrInvalidConfig, c.Transport, TransportRing, TransportChannel)
	case c.Items < 0:
		return fmt.Errorf("%w: items %d", ErrInvalidConfig, c.Items)
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity %d", ErrInvalidConfig, c.Capacity)
	case c.Batch <= 0:
		return fmt.Errorf("%w: batch %d", ErrInvalidConfig, c.Batch)
	case c.Rate < 0:
		return fmt.Errorf("%w: rate %v", ErrInvalidConfig, c.Rate)
	case c.Rate > 0 && c.Burst <= 0:
		return fmt.Errorf("%w: burst %d with a rate limit", ErrInvalidConfig, c.Burst)
	case c.Progress < 0 || c.Timeout < 0:
		return fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	}
	return nil
}
