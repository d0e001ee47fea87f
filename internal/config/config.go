// Package config loads server settings from an optional YAML file and lets
// CRITTERKEEP_* environment variables override individual fields.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr    string `yaml:"listen_addr"`
	DatabaseDSN   string `yaml:"database_dsn"`
	MigrationsDir string `yaml:"migrations_dir"`

	Engine EngineConfig `yaml:"engine"`

	// StartupTimeout bounds database connect and migration time at boot.
	StartupTimeout time.Duration `yaml:"startup_timeout"`
}

// EngineConfig holds the tick intervals for the background simulation tasks.
type EngineConfig struct {
	DecayInterval    time.Duration `yaml:"decay_interval"`
	EventInterval    time.Duration `yaml:"event_interval"`
	MutationInterval time.Duration `yaml:"mutation_interval"`
	DragonInterval   time.Duration `yaml:"dragon_interval"`
}

func Default() Config {
	return Config{
		ListenAddr:     ":8080",
		MigrationsDir:  "./migrations",
		StartupTimeout: 30 * time.Second,
		Engine: EngineConfig{
			DecayInterval:    30 * time.Second,
			EventInterval:    45 * time.Second,
			MutationInterval: time.Minute,
			DragonInterval:   5 * time.Minute,
		},
	}
}

// Load starts from defaults, merges the YAML file at path if one exists, and
// applies environment overrides last. A missing file is not an error; a
// malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	for name, d := range map[string]time.Duration{
		"decay_interval":    c.Engine.DecayInterval,
		"event_interval":    c.Engine.EventInterval,
		"mutation_interval": c.Engine.MutationInterval,
		"dragon_interval":   c.Engine.DragonInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("engine.%s must be positive", name)
		}
	}
	if c.StartupTimeout <= 0 {
		return fmt.Errorf("startup_timeout must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	stringEnv("CRITTERKEEP_LISTEN_ADDR", &cfg.ListenAddr)
	stringEnv("CRITTERKEEP_DB_DSN", &cfg.DatabaseDSN)
	stringEnv("CRITTERKEEP_MIGRATIONS_DIR", &cfg.MigrationsDir)
	durationEnv("CRITTERKEEP_STARTUP_TIMEOUT", &cfg.StartupTimeout)
	durationEnv("CRITTERKEEP_DECAY_INTERVAL", &cfg.Engine.DecayInterval)
	durationEnv("CRITTERKEEP_EVENT_INTERVAL", &cfg.Engine.EventInterval)
	durationEnv("CRITTERKEEP_MUTATION_INTERVAL", &cfg.Engine.MutationInterval)
	durationEnv("CRITTERKEEP_DRAGON_INTERVAL", &cfg.Engine.DragonInterval)
}

func stringEnv(key string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func durationEnv(key string, dst *time.Duration) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return
	}
	*dst = d
}
