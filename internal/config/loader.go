package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names, checked in order.
const (
	ConfigFileName    = "promptfield.yaml"
	ConfigFileNameAlt = "promptfield.yml"
)

// envPrefix namespaces environment overrides. Nested keys use a double
// underscore: PROMPTFIELD_VALIDATION__EXPRESSION → validation.expression.
const envPrefix = "PROMPTFIELD_"

// flagKeys maps CLI flag names to config keys. Flags outside this map
// carry operational inputs (table paths, prompt text) and never feed
// the config.
var flagKeys = map[string]string{
	"verbose": "verbose",
	"port":    "server.port",
}

// Load reads configuration in priority order: defaults, then the config
// file (explicit path, or promptfield.yaml/.yml in the working
// directory), then PROMPTFIELD_* environment variables.
// A missing config file is not an error.
func Load(explicitPath string) (*Config, error) {
	return LoadWithFlags(explicitPath, nil)
}

// LoadWithFlags loads configuration with CLI flags layered on top.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func LoadWithFlags(explicitPath string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"session.path": DefaultSessionPath,
		"server.port":  DefaultServerPort,
		"verbose":      false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := findConfigFile(explicitPath)
	if explicitPath != "" && path == "" {
		return nil, fmt.Errorf("config file not found: %s", explicitPath)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set.
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// findConfigFile resolves the config file to use.
// Priority: explicit path > promptfield.yaml > promptfield.yml.
func findConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadFromDir loads configuration from a specific directory.
// Returns defaults when the directory has no config file.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
	}
	return Load("")
}
