package page

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/footer/footer"
)

// Config is the footerd configuration.
type Config struct {
	Addr      string `yaml:"addr" env:"FOOTERD_ADDR"`
	StaticDir string `yaml:"static_dir" env:"FOOTERD_STATIC_DIR"`
	// PublicURL, when set, makes relative fragment references resolve to
	// HTTP URLs under it instead of files in StaticDir.
	PublicURL string        `yaml:"public_url" env:"FOOTERD_PUBLIC_URL"`
	LogLevel  string        `yaml:"log_level" env:"FOOTERD_LOG_LEVEL"`
	Footer    footer.Config `yaml:"footer"`
}

func (c *Config) defaults() {
	if c.Addr == "" {
		c.Addr = ":8086"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.Footer.ApplyDefaults()
}

// LoadConfig reads path (when non-empty), then applies environment
// overrides and defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("page: parse config: %w", err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("page: parse env: %w", err)
	}
	cfg.defaults()
	return cfg, nil
}
