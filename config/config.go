package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/smartbin/core/metrics"
	"github.com/kilianp07/smartbin/core/pickup"
	"github.com/kilianp07/smartbin/infra/mqtt"
)

// EnvPrefix prefixes environment overrides, e.g. SB_PICKUP__ALERT_LIMIT_HOURS.
const EnvPrefix = "SB_"

type Config struct {
	Server   ServerConfig   `json:"server"`
	Models   ModelsConfig   `json:"models"`
	Pickup   pickup.Config  `json:"pickup"`
	Calendar CalendarConfig `json:"calendar"`
	Logging  LoggingConfig  `json:"logging"`
	Metrics  metrics.Config `json:"metrics"`
	MQTT     mqtt.Config    `json:"mqtt"`
}

// Load reads the configuration file at path, applies SB_ environment
// overrides and the PORT variable, then fills defaults. A missing file is
// not an error: the service runs on defaults alone.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if err := cfg.Server.applyPortEnv(os.Getenv("PORT")); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Models.SetDefaults()
	c.Pickup.SetDefaults()
	c.Calendar.SetDefaults()
	c.Logging.SetDefaults()
	c.MQTT.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Models.Validate(); err != nil {
		return fmt.Errorf("models: %w", err)
	}
	if err := c.Pickup.Validate(); err != nil {
		return fmt.Errorf("pickup: %w", err)
	}
	if err := c.Calendar.Validate(); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.MQTT.Validate(); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	return nil
}

func (s *ServerConfig) applyPortEnv(v string) error {
	if v == "" {
		return nil
	}
	p, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid PORT %q: %w", v, err)
	}
	s.Port = p
	return nil
}
