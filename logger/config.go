package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/titanous/json5"
	yaml "go.yaml.in/yaml/v3"
)

// ErrUnsupportedConfig is returned by LoadConfig for unknown file extensions.
var ErrUnsupportedConfig = errors.New("unsupported config format")

// Environment variables consulted when the matching Config field is unset.
const (
	EnvFormat       = "HELOG_FORMAT"
	EnvIgnoreLevels = "HELOG_IGNORE_LEVELS"
	EnvIgnoreTypes  = "HELOG_IGNORE_TYPES"
)

// Config defines options for New and Apply.
type Config struct {
	// Format is the record template; empty falls back to HELOG_FORMAT, then DefaultFormat.
	// Default: ""
	Format string
	// IgnoreLevels suppresses records at these levels; nil falls back to HELOG_IGNORE_LEVELS.
	// Default: nil (nothing suppressed)
	IgnoreLevels []Level
	// IgnoreTypes suppresses records of these types; nil falls back to HELOG_IGNORE_TYPES.
	// Default: nil (nothing suppressed)
	IgnoreTypes []Type
	// Colorize renders the level label with ANSI colors.
	// Default: false
	Colorize bool
	// HandlerRate limits error handler calls per second; zero means unlimited.
	// Default: 0
	HandlerRate float64
	// HandlerBurst is the limiter burst when HandlerRate is set.
	// Default: 1
	HandlerBurst int
	// Output receives rendered records. New reads it; Apply ignores it.
	// Default: nil (stdout)
	Output io.Writer
	// ErrorHandler receives the raw message of warn and fatal records.
	// Apply keeps the current handler when this is nil.
	// Default: nil
	ErrorHandler func(string)
}

// fileConfig is the on-disk shape shared by every supported format.
type fileConfig struct {
	Format       string   `yaml:"format" toml:"format" json:"format"`
	IgnoreLevels []string `yaml:"ignore_levels" toml:"ignore_levels" json:"ignore_levels"`
	IgnoreTypes  []string `yaml:"ignore_types" toml:"ignore_types" json:"ignore_types"`
	Colorize     bool     `yaml:"colorize" toml:"colorize" json:"colorize"`
	HandlerRate  float64  `yaml:"handler_rate" toml:"handler_rate" json:"handler_rate"`
	HandlerBurst int      `yaml:"handler_burst" toml:"handler_burst" json:"handler_burst"`
}

// LoadConfig reads a config file. The format is chosen by extension:
// .yaml/.yml, .toml, or .json/.json5.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(filepath.Ext(path), data)
}

// ParseConfig decodes config data in the format named by ext (".yaml", ".toml", ".json5", ...).
func ParseConfig(ext string, data []byte) (Config, error) {
	var fc fileConfig
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("yaml unmarshal: %w", err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &fc)
		if err != nil {
			return Config{}, fmt.Errorf("toml unmarshal: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("toml unmarshal: unknown keys %v", undecoded)
		}
	case ".json", ".json5":
		if err := json5.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("json5 unmarshal: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedConfig, ext)
	}
	return fc.config()
}

func (fc fileConfig) config() (Config, error) {
	cfg := Config{
		Format:       fc.Format,
		Colorize:     fc.Colorize,
		HandlerRate:  fc.HandlerRate,
		HandlerBurst: fc.HandlerBurst,
	}
	// An explicit empty list in the file means "ignore nothing", not "ask the env".
	cfg.IgnoreLevels = []Level{}
	for _, name := range fc.IgnoreLevels {
		level, err := ParseLevel(name)
		if err != nil {
			return Config{}, fmt.Errorf("ignore_levels: %w", err)
		}
		cfg.IgnoreLevels = append(cfg.IgnoreLevels, level)
	}
	cfg.IgnoreTypes = []Type{}
	for _, name := range fc.IgnoreTypes {
		typ, err := ParseType(name)
		if err != nil {
			return Config{}, fmt.Errorf("ignore_types: %w", err)
		}
		cfg.IgnoreTypes = append(cfg.IgnoreTypes, typ)
	}
	return cfg, nil
}

func resolveFormat(format string) string {
	if format != "" {
		return format
	}
	if env := os.Getenv(EnvFormat); env != "" {
		return env
	}
	return DefaultFormat
}

// resolveIgnoredLevels builds the ignore-set. Unknown names in the
// environment are skipped.
func resolveIgnoredLevels(levels []Level) map[Level]struct{} {
	if levels == nil {
		levels, _ = parseLevels(os.Getenv(EnvIgnoreLevels))
	}
	m := make(map[Level]struct{}, len(levels))
	for _, level := range levels {
		m[level] = struct{}{}
	}
	return m
}

func resolveIgnoredTypes(types []Type) map[Type]struct{} {
	if types == nil {
		types, _ = parseTypes(os.Getenv(EnvIgnoreTypes))
	}
	m := make(map[Type]struct{}, len(types))
	for _, typ := range types {
		m[typ] = struct{}{}
	}
	return m
}
