// Package config loads kr.yaml. Values are layered: defaults, then the
// file, then KR_* environment variables, then command line flags (applied
// by the cmd package).
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"kr/internal/eval"
	"kr/internal/logger"
)

// DefaultFile is looked up in the working directory when --config is not given.
const DefaultFile = "kr.yaml"

const envPrefix = "KR_"

type Config struct {
	Debug    bool          `yaml:"debug"`
	Color    string        `yaml:"color"`    // auto, always, never
	Overflow string        `yaml:"overflow"` // checked, wrap
	Checks   bool          `yaml:"checks"`
	Log      logger.Config `yaml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Color:    "auto",
		Overflow: eval.OverflowChecked.String(),
		Checks:   true,
		Log:      logger.DefaultConfig(),
	}
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}

// Load reads path. An empty path means DefaultFile, which may be absent;
// a path the user named must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if cfg, err = Parse(data); err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
	case !explicit && os.IsNotExist(err):
	default:
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from KR_DEBUG, KR_COLOR, KR_OVERFLOW, KR_CHECKS,
// KR_LOG_LEVEL, KR_LOG_FORMAT, KR_LOG_OUTPUT and KR_LOG_FILE.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	for name, dst := range map[string]*string{
		"COLOR":      &c.Color,
		"OVERFLOW":   &c.Overflow,
		"LOG_LEVEL":  &c.Log.Level,
		"LOG_FORMAT": &c.Log.Format,
		"LOG_OUTPUT": &c.Log.Output,
		"LOG_FILE":   &c.Log.FilePath,
	} {
		if v := getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}

	for name, dst := range map[string]*bool{
		"DEBUG":  &c.Debug,
		"CHECKS": &c.Checks,
	} {
		v := getenv(envPrefix + name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%s%s", envPrefix, name)
		}
		*dst = b
	}
	return nil
}

// Validate rejects values the rest of the program cannot interpret.
func (c *Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return errors.Errorf("color: unknown mode %q (want auto, always or never)", c.Color)
	}
	if _, err := eval.ParseOverflowMode(c.Overflow); err != nil {
		return errors.Wrap(err, "overflow")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return errors.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	switch c.Log.Output {
	case "", "stderr", "file", "both":
	default:
		return errors.Errorf("log.output: unknown output %q", c.Log.Output)
	}
	return nil
}

// OverflowMode returns the parsed overflow policy. Call Validate first.
func (c *Config) OverflowMode() eval.OverflowMode {
	mode, _ := eval.ParseOverflowMode(c.Overflow)
	return mode
}
