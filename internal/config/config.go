package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pbaille/clubgap/internal/domain"
	"github.com/pbaille/clubgap/internal/gapping"
)

// Config holds the configuration settings
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Server     ServerConfig     `yaml:"server"`
	Display    DisplayConfig    `yaml:"display"`
	Categories CategoriesConfig `yaml:"categories"`
	Log        LogConfig        `yaml:"log"`
}

// DatabaseConfig holds the SQLite location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds the HTTP listen address.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DisplayConfig holds the unit every distance is shown in.
type DisplayConfig struct {
	Unit domain.Unit `yaml:"unit"`
}

// CategoriesConfig names the categories selected when a gap chart is requested without any.
type CategoriesConfig struct {
	Defaults []string `yaml:"defaults"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text|json
}

// Default returns the configuration used when no file is present
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Database:   DatabaseConfig{Path: filepath.Join(home, ".clubgap", "clubgap.db")},
		Server:     ServerConfig{Addr: ":8080"},
		Display:    DisplayConfig{Unit: domain.Yards},
		Categories: CategoriesConfig{Defaults: append([]string(nil), gapping.DefaultCategoryNames...)},
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig loads the configuration from a YAML file. A missing file is not
// an error: defaults are used. Environment variables override both.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CLUBGAP_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("CLUBGAP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CLUBGAP_UNIT"); v != "" {
		u, err := domain.ParseUnit(v)
		if err != nil {
			return fmt.Errorf("CLUBGAP_UNIT: %w", err)
		}
		c.Display.Unit = u
	}
	if v := os.Getenv("CLUBGAP_DEFAULT_CATEGORIES"); v != "" {
		var names []string
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		c.Categories.Defaults = names
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	return nil
}

// Validate checks the values a YAML file cannot constrain by itself.
// The display unit is normalized, so "m" or "yds" become meters and yards.
func (c *Config) Validate() error {
	u, err := domain.ParseUnit(string(c.Display.Unit))
	if err != nil {
		return fmt.Errorf("display.unit: %w", err)
	}
	c.Display.Unit = u
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	return nil
}

// Options converts the display settings into engine options
func (c *Config) Options() gapping.Options {
	return gapping.Options{
		Unit:              c.Display.Unit,
		DefaultCategories: append([]string(nil), c.Categories.Defaults...),
	}
}
