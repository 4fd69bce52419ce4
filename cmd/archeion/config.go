package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/archeion"
	"github.com/fwojciec/archeion/http"
	yaml "gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file.
type Config struct {
	Database   string `yaml:"database"`
	ArchiveDir string `yaml:"archive_dir"`

	Schemas struct {
		// Enable lists the only schemas used when not empty.
		Enable  []string `yaml:"enable"`
		Disable []string `yaml:"disable"`
	} `yaml:"schemas"`

	JSONLD struct {
		RemoteContexts bool `yaml:"remote_contexts"`
	} `yaml:"jsonld"`

	Fetch struct {
		Timeout   time.Duration `yaml:"timeout"`
		Rate      float64       `yaml:"rate"`
		UserAgent string        `yaml:"user_agent"`
		// Browser captures the DOM with headless Chrome instead of HTTP.
		Browser bool `yaml:"browser"`
	} `yaml:"fetch"`

	Markdown struct {
		// Extractor is readability, trafilatura or none.
		Extractor string `yaml:"extractor"`
	} `yaml:"markdown"`
}

// Content extractor names.
const (
	ExtractorReadability = "readability"
	ExtractorTrafilatura = "trafilatura"
	ExtractorNone        = "none"
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	var c Config
	dir := defaultDir()
	c.Database = filepath.Join(dir, "archeion.db")
	c.ArchiveDir = filepath.Join(dir, "archive")
	c.Fetch.Timeout = http.DefaultFetchTimeout
	c.Fetch.Rate = 1
	c.Fetch.UserAgent = http.DefaultUserAgent
	c.Markdown.Extractor = ExtractorReadability
	return c
}

// LoadConfig reads the YAML file at path over the defaults. A missing file
// is not an error unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	c := DefaultConfig()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := c.EnabledSchemas(); err != nil {
		return c, err
	}
	switch c.Markdown.Extractor {
	case ExtractorReadability, ExtractorTrafilatura, ExtractorNone:
	default:
		return c, archeion.Errorf(archeion.EINVALID, "unknown markdown extractor %q", c.Markdown.Extractor)
	}
	return c, nil
}

// ApplyEnv overrides the database and archive paths from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("ARCHEION_DB"); v != "" {
		c.Database = v
	}
	if v := getenv("ARCHEION_ARCHIVE"); v != "" {
		c.ArchiveDir = v
	}
}

// EnabledSchemas returns the schemas contributing to the merge, in
// precedence order. Returns EINVALID for an unknown schema name.
func (c *Config) EnabledSchemas() ([]archeion.Schema, error) {
	enabled := make(map[archeion.Schema]bool)
	for _, name := range c.Schemas.Enable {
		s, err := archeion.ParseSchema(name)
		if err != nil {
			return nil, err
		}
		enabled[s] = true
	}
	disabled := make(map[archeion.Schema]bool)
	for _, name := range c.Schemas.Disable {
		s, err := archeion.ParseSchema(name)
		if err != nil {
			return nil, err
		}
		disabled[s] = true
	}

	var schemas []archeion.Schema
	for _, s := range archeion.Precedence {
		if len(enabled) > 0 && !enabled[s] {
			continue
		}
		if disabled[s] {
			continue
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

// configPath returns the config file location and whether it was named
// explicitly through ARCHEION_CONFIG.
func configPath(getenv func(string) string) (string, bool) {
	if path := getenv("ARCHEION_CONFIG"); path != "" {
		return path, true
	}
	return filepath.Join(defaultDir(), "config.yaml"), false
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".archeion"
	}
	return filepath.Join(home, ".archeion")
}
