// Package config loads obsqueue settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/obsworks/obsqueue/pkg/schedule"
	"github.com/obsworks/obsqueue/pkg/security"
)

// Duration is a time.Duration that unmarshals from a YAML string such as
// "1s" or "500ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: parse duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the standard library duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// WindowConfig is one activation window, expressed as cron expressions.
type WindowConfig struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// Config holds the file-driven settings of a queue deployment.
type Config struct {
	PollInterval Duration       `yaml:"poll_interval"`
	DestDir      string         `yaml:"dest_dir"`
	HistoryDSN   string         `yaml:"history_dsn"`
	EntryClass   string         `yaml:"entry_class"`
	Windows      []WindowConfig `yaml:"windows"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		PollInterval: Duration(time.Second),
	}
}

// Load reads and validates a YAML config file, applying defaults for
// anything unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = Duration(time.Second)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if c.EntryClass != "" {
		if err := security.ValidateLabel(c.EntryClass); err != nil {
			return fmt.Errorf("config: entry_class: %w", err)
		}
	}
	for i, w := range c.Windows {
		if _, err := schedule.ParseCron(w.Open); err != nil {
			return fmt.Errorf("config: window %d open %q: %w", i, w.Open, err)
		}
		if _, err := schedule.ParseCron(w.Close); err != nil {
			return fmt.Errorf("config: window %d close %q: %w", i, w.Close, err)
		}
	}
	return nil
}

// BuildWindows converts the configured windows into schedule.Window values.
// Call Validate (or Load) first; malformed expressions are skipped here.
func (c *Config) BuildWindows() []schedule.Window {
	var out []schedule.Window
	for _, w := range c.Windows {
		open, err := schedule.ParseCron(w.Open)
		if err != nil {
			continue
		}
		cls, err := schedule.ParseCron(w.Close)
		if err != nil {
			continue
		}
		out = append(out, schedule.Window{Open: open, Close: cls})
	}
	return out
}
