// Package config loads the widget configuration for promptfield.
package config

import (
	"github.com/leapstack-labs/promptfield/pkg/core"
	"github.com/leapstack-labs/promptfield/pkg/matcher"
)

// Defaults.
const (
	// DefaultSessionPath is the on-disk session store. Empty means an
	// in-memory store.
	DefaultSessionPath = ".promptfield/sessions.db"
	// DefaultServerPort is the HTTP surface port.
	DefaultServerPort = 8246
)

// Config is the full widget configuration.
type Config struct {
	Prompts    PromptsConfig         `koanf:"prompts"`
	Validation core.ValidationConfig `koanf:"validation"`
	Matcher    MatcherConfig         `koanf:"matcher"`
	Session    SessionConfig         `koanf:"session"`
	Server     ServerConfig          `koanf:"server"`
	Verbose    bool                  `koanf:"verbose"`
}

// PromptsConfig holds the authored prompt templates.
type PromptsConfig struct {
	System string `koanf:"system"`
	User   string `koanf:"user"`
}

// MatcherConfig tunes placeholder matching.
type MatcherConfig struct {
	// AutoMapThreshold is the minimum confidence for automatic mapping.
	AutoMapThreshold int `koanf:"auto_map_threshold"`
}

// SessionConfig configures session-state persistence.
type SessionConfig struct {
	// Path is the SQLite session store; empty selects the in-memory store.
	Path string `koanf:"path"`
}

// ServerConfig configures the HTTP widget surface.
type ServerConfig struct {
	Port int `koanf:"port"`
	// Secret signs the editing-session cookie.
	Secret string `koanf:"secret"`
}

// ApplyDefaults fills zero values with defaults.
func (c *Config) ApplyDefaults() {
	if c.Matcher.AutoMapThreshold == 0 {
		c.Matcher.AutoMapThreshold = matcher.AutoMapThreshold
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
}
