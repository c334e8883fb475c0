package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
	"github.com/vango-dev/vtree/pkg/vtree"
)

const (
	// JSONFileName is the name of the JSON configuration file.
	JSONFileName = "vtree.json"

	// YAMLFileName is the name of the YAML configuration file.
	YAMLFileName = "vtree.yaml"

	// EnvFileName is the optional file of VTREE_* overrides.
	EnvFileName = ".env"

	// DefaultPreviewAddr is the default preview server address.
	DefaultPreviewAddr = "localhost:7331"

	// DefaultHash is the default structural hasher.
	DefaultHash = "djb2"
)

// Hash names accepted by the hash key.
const (
	HashDJB2   = "djb2"
	HashXXHash = "xxhash"
)

// Config represents the complete vtree configuration.
type Config struct {
	// FrameInterval is the period of the render loop (default: 16ms).
	FrameInterval Duration `json:"frameInterval,omitempty" yaml:"frameInterval,omitempty"`

	// TardyThreshold is the queue delay that logs a slow render warning
	// (default: 150ms, 0 disables the warning).
	TardyThreshold Duration `json:"tardyThreshold" yaml:"tardyThreshold"`

	// Hash selects the structural hasher: "djb2" or "xxhash".
	Hash string `json:"hash,omitempty" yaml:"hash,omitempty"`

	// ShortCircuit enables skipping unchanged subtrees by hash (default: true).
	ShortCircuit *bool `json:"shortCircuit,omitempty" yaml:"shortCircuit,omitempty"`

	// Log contains logger configuration.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Preview contains preview server configuration.
	Preview PreviewConfig `json:"preview,omitempty" yaml:"preview,omitempty"`

	// Export contains static export configuration.
	Export ExportConfig `json:"export,omitempty" yaml:"export,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error (default: info).
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json (default: text).
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// ExportConfig contains static export settings.
type ExportConfig struct {
	// Target is a local directory or an s3://bucket/prefix URL.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	on := true
	return &Config{
		FrameInterval:  Duration(vtree.DefaultFrameInterval),
		TardyThreshold: Duration(vtree.DefaultTardyThreshold),
		Hash:           DefaultHash,
		ShortCircuit:   &on,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Preview: PreviewConfig{
			Addr: DefaultPreviewAddr,
		},
	}
}

// Load reads configuration from dir. It looks for vtree.json, then
// vtree.yaml and vtree.yml. Without a config file the defaults are used.
// VTREE_* overrides from the environment and dir/.env are applied last.
func Load(dir string) (*Config, error) {
	cfg := New()
	for _, name := range []string{JSONFileName, YAMLFileName, "vtree.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		break
	}

	env, err := ReadEnvFile(filepath.Join(dir, EnvFileName))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(Lookup(env)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension: .yaml and .yml are YAML, anything else JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	}
	if err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithLocationFromError(path, err).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid " + formatName(path))
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// SaveTo writes the configuration to path in the format its extension names.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.FrameInterval == 0 {
		c.FrameInterval = Duration(vtree.DefaultFrameInterval)
	}
	if c.Hash == "" {
		c.Hash = DefaultHash
	}
	if c.ShortCircuit == nil {
		on := true
		c.ShortCircuit = &on
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Preview.Addr == "" {
		c.Preview.Addr = DefaultPreviewAddr
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch {
	case c.FrameInterval <= 0:
		return c.invalid("frameInterval must be positive")
	case c.TardyThreshold < 0:
		return c.invalid("tardyThreshold must not be negative")
	}
	switch strings.ToLower(c.Hash) {
	case HashDJB2, HashXXHash:
	default:
		return c.invalid(fmt.Sprintf("hash must be %q or %q, got %q", HashDJB2, HashXXHash, c.Hash))
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return c.invalid(fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return c.invalid(fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	return nil
}

func (c *Config) invalid(detail string) error {
	err := errors.New("E121").WithDetail(detail)
	if c.configPath != "" {
		err = err.WithSuggestion("Fix the value in " + c.configPath)
	}
	return err
}

// Hasher returns the configured structural hash function.
func (c *Config) Hasher() vdom.Hasher {
	if strings.EqualFold(c.Hash, HashXXHash) {
		return vdom.XXHash
	}
	return vdom.DJB2
}

// Builder returns a node builder using the configured hasher.
func (c *Config) Builder() *vdom.Builder {
	return vdom.NewBuilder(vdom.WithHasher(c.Hasher()))
}

// RuntimeOptions returns the runtime options the configuration describes.
func (c *Config) RuntimeOptions(logger *slog.Logger) []vtree.Option {
	shortCircuit := c.ShortCircuit == nil || *c.ShortCircuit
	return []vtree.Option{
		vtree.WithLogger(logger),
		vtree.WithBuilder(c.Builder()),
		vtree.WithShortCircuit(shortCircuit),
		vtree.WithTardyThreshold(time.Duration(c.TardyThreshold)),
	}
}

// Logger builds a slog logger writing to w at the configured level and format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func formatName(path string) string {
	if isYAML(path) {
		return "YAML"
	}
	return "JSON"
}
