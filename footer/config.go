// CLAUDE:SUMMARY Loader configuration: YAML file, env overrides, defaults, and the options/source they produce.
package footer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/footer/fragment"
)

// Config holds the loader settings.
type Config struct {
	// Fragment is the fragment reference: an absolute http(s) URL, or a
	// path resolved relative to the page (or static root).
	Fragment string `yaml:"fragment" env:"FOOTER_FRAGMENT"`
	// StrictStatus treats non-2xx fragment responses as failures.
	StrictStatus bool `yaml:"strict_status" env:"FOOTER_STRICT_STATUS"`
	// Timeout bounds one HTTP fetch. Zero leaves it to the transport.
	Timeout   time.Duration `yaml:"timeout" env:"FOOTER_TIMEOUT"`
	UserAgent string        `yaml:"user_agent" env:"FOOTER_USER_AGENT"`
	// Sanitize filters the fetched footer through a UGC policy.
	Sanitize bool           `yaml:"sanitize" env:"FOOTER_SANITIZE"`
	Fallback FallbackConfig `yaml:"fallback"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Fragment == "" {
		c.Fragment = fragment.DefaultRef
	}
	c.Fallback = c.Fallback.withDefaults()
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// LoadConfigFile reads a YAML config file and applies defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("footer: parse config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyEnv overrides fields from FOOTER_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("footer: parse env: %w", err)
	}
	c.ApplyDefaults()
	return nil
}

// Options returns the loader options this config implies.
func (c *Config) Options(logger *slog.Logger) []Option {
	opts := []Option{
		WithStrictStatus(c.StrictStatus),
		WithFallback(c.Fallback),
	}
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}
	if c.Sanitize {
		opts = append(opts, WithSanitizer(SanitizePolicy()))
	}
	return opts
}

// Source returns the fragment source for a page. A remote Fragment is
// fetched over HTTP; a relative one is resolved against pageURL and fetched
// over HTTP when that yields a remote URL, otherwise read from static by
// path, without query or fragment.
func (c *Config) Source(pageURL string, static fs.FS, logger *slog.Logger) (fragment.Source, error) {
	ref, err := fragment.Resolve(pageURL, c.Fragment)
	if err != nil {
		return nil, err
	}
	if fragment.IsRemote(ref) {
		return c.HTTPSource(ref, logger), nil
	}
	if static == nil {
		return nil, fmt.Errorf("footer: no static root for fragment %q", ref)
	}
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("footer: fragment path: %w", err)
	}
	return fragment.File(static, u.Path), nil
}

// HTTPSource builds an HTTP fragment source honouring Timeout and UserAgent.
func (c *Config) HTTPSource(url string, logger *slog.Logger) *fragment.HTTPSource {
	opts := []fragment.Option{fragment.WithClient(&http.Client{Timeout: c.Timeout})}
	if c.UserAgent != "" {
		opts = append(opts, fragment.WithUserAgent(c.UserAgent))
	}
	if logger != nil {
		opts = append(opts, fragment.WithLogger(logger))
	}
	return fragment.HTTP(url, opts...)
}
