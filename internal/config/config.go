// Package config loads swagrec settings from an optional YAML file and
// command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/erraggy/swagrec/oaserrors"
)

// DefaultFile is read when --config is not given and the file exists in the
// working directory.
const DefaultFile = "swagrec.yaml"

// Config holds every setting the CLI understands.
type Config struct {
	Spec            string        `koanf:"spec"`
	Output          string        `koanf:"output"`
	Format          string        `koanf:"format"`
	Endpoints       []string      `koanf:"endpoints"`
	Match           []string      `koanf:"match"`
	SortPaths       bool          `koanf:"sort-paths"`
	PathItemFields  bool          `koanf:"path-item-fields"`
	PruneComponents bool          `koanf:"prune-components"`
	StrictInfo      bool          `koanf:"strict-info"`
	StrictRefs      bool          `koanf:"strict-refs"`
	Verify          bool          `koanf:"verify"`
	UserAgent       string        `koanf:"user-agent"`
	Timeout         time.Duration `koanf:"timeout"`
	Serve           ServeConfig   `koanf:"serve"`
}

// ServeConfig configures the HTTP API.
type ServeConfig struct {
	Addr            string        `koanf:"addr"`
	SessionTTL      time.Duration `koanf:"session-ttl"`
	MaxSessions     int           `koanf:"max-sessions"`
	AllowedOrigins  []string      `koanf:"allowed-origins"`
	RequireJSON     bool          `koanf:"require-json"`
	AllowPrivateIPs bool          `koanf:"allow-private-ips"`
}

// flagKeys maps flag names to config keys where they differ.
var flagKeys = map[string]string{
	"endpoint":          "endpoints",
	"addr":              "serve.addr",
	"session-ttl":       "serve.session-ttl",
	"max-sessions":      "serve.max-sessions",
	"allowed-origins":   "serve.allowed-origins",
	"require-json":      "serve.require-json",
	"allow-private-ips": "serve.allow-private-ips",
}

// skipFlags are flags that never map to config keys.
var skipFlags = map[string]bool{
	"config":  true,
	"verbose": true,
	"quiet":   true,
	"help":    true,
}

// BindGlobalFlags registers the flags shared by every command.
func BindGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "Config file path (default: "+DefaultFile+" if present)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
}

// Load reads the config file, then overlays flags the user set explicitly.
// A positional spec argument overrides both.
func Load(cmd *cobra.Command, args []string) (*Config, error) {
	k := koanf.New(".")

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			configFile = DefaultFile
		}
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, &oaserrors.ConfigError{Option: "config", Value: configFile, Message: "reading config file", Cause: err}
		}
	}

	if flagsMap := buildFlagsMap(cmd); len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("config: loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, &oaserrors.ConfigError{Message: "unmarshaling config", Cause: err}
	}
	if len(args) > 0 {
		cfg.Spec = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// buildFlagsMap collects explicitly set flags, keyed by config key.
func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if skipFlags[f.Name] {
			return
		}
		key := f.Name
		if mapped, ok := flagKeys[f.Name]; ok {
			key = mapped
		}
		m[key] = flagValue(f)
	})
	return m
}

func flagValue(f *pflag.Flag) any {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		return sv.GetSlice()
	}
	switch f.Value.Type() {
	case "bool":
		return f.Value.String() == "true"
	default:
		return f.Value.String()
	}
}

// Validate checks values that koanf cannot check by type alone.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case "", "json", "yaml", "yml", "text":
	default:
		return &oaserrors.ConfigError{Option: "format", Value: c.Format, Message: "valid formats: text, json, yaml"}
	}
	if c.Timeout < 0 {
		return &oaserrors.ConfigError{Option: "timeout", Value: c.Timeout, Message: "must not be negative"}
	}
	if c.Serve.SessionTTL < 0 {
		return &oaserrors.ConfigError{Option: "serve.session-ttl", Value: c.Serve.SessionTTL, Message: "must not be negative"}
	}
	if c.Serve.MaxSessions < 0 {
		return &oaserrors.ConfigError{Option: "serve.max-sessions", Value: c.Serve.MaxSessions, Message: "must not be negative"}
	}
	for _, e := range c.Endpoints {
		if strings.TrimSpace(e) == "" {
			return &oaserrors.ConfigError{Option: "endpoints", Message: "empty endpoint"}
		}
	}
	return nil
}

// HasSelection reports whether any endpoint or match pattern is configured.
func (c *Config) HasSelection() bool {
	return len(c.Endpoints) > 0 || len(c.Match) > 0
}
