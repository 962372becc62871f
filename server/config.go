package server

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Zero values in a config file keep the
// defaults.
type Config struct {
	Addr string `yaml:"addr"`

	// TickInterval is the wall-clock period of every lobby's simulation tick.
	// Clients must run their local prediction at the same rate.
	TickInterval time.Duration `yaml:"tick_interval"`
	// StartDelayTicks is how many ticks an InPlay lobby skips before the
	// first simulated tick, so clients can finish their join handshakes.
	StartDelayTicks uint64 `yaml:"start_delay_ticks"`

	InboxSize int `yaml:"inbox_size"` // per lobby
	SendQueue int `yaml:"send_queue"` // per connection

	LogFile   string `yaml:"log_file"`
	LogStdout bool   `yaml:"log_stdout"`
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		TickInterval:    50 * time.Millisecond,
		StartDelayTicks: 10,
		InboxSize:       256,
		SendQueue:       64,
		LogFile:         "app.log",
	}
}

// LoadConfig reads a YAML file over DefaultConfig. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.InboxSize <= 0 {
		return fmt.Errorf("inbox_size must be positive, got %d", c.InboxSize)
	}
	if c.SendQueue <= 0 {
		return fmt.Errorf("send_queue must be positive, got %d", c.SendQueue)
	}
	return nil
}
