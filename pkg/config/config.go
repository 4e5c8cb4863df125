package config

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sqlcheck/pkg/types"
)

// ErrInvalidOption is wrapped by every validation error.
var ErrInvalidOption = errors.New("invalid configuration option")

// Threshold names a configurable occurrence or length limit.
type Threshold int

const (
	IndexCountThreshold Threshold = iota
	JoinCountThreshold
	DistinctCountThreshold
	NestingThreshold
	SpaghettiLengthThreshold
)

func (t Threshold) String() string {
	switch t {
	case IndexCountThreshold:
		return "indexCount"
	case JoinCountThreshold:
		return "joinCount"
	case DistinctCountThreshold:
		return "distinctCount"
	case NestingThreshold:
		return "nesting"
	case SpaghettiLengthThreshold:
		return "spaghettiLength"
	default:
		return "unknown"
	}
}

// Thresholds holds the limits used by counting and length rules.
type Thresholds struct {
	IndexCount      int `yaml:"indexCount"      json:"indexCount"`
	JoinCount       int `yaml:"joinCount"       json:"joinCount"`
	DistinctCount   int `yaml:"distinctCount"   json:"distinctCount"`
	Nesting         int `yaml:"nesting"         json:"nesting"`
	SpaghettiLength int `yaml:"spaghettiLength" json:"spaghettiLength"`
}

// DefaultThresholds returns the stock limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		IndexCount:      3,
		JoinCount:       5,
		DistinctCount:   5,
		Nesting:         2,
		SpaghettiLength: 500,
	}
}

// Config represents the configuration for a check run.
// A Config is built once and only read afterwards.
type Config struct {
	MinimumSeverity         types.Severity   `yaml:"minimumSeverity"         json:"minimumSeverity"`
	EnabledCategories       []types.Category `yaml:"enabledCategories"       json:"enabledCategories"`
	PrintOffendingStatement bool             `yaml:"printOffendingStatement" json:"printOffendingStatement"`
	Thresholds              Thresholds       `yaml:"thresholds"              json:"thresholds"`
}

// Default returns a configuration that reports everything.
func Default() *Config {
	return &Config{
		MinimumSeverity:         types.SeverityInfo,
		EnabledCategories:       append([]types.Category(nil), types.AllCategories...),
		PrintOffendingStatement: true,
		Thresholds:              DefaultThresholds(),
	}
}

// Option customizes a Config built by New.
type Option func(*Config) error

// New builds a validated configuration from the defaults and opts.
func New(opts ...Option) (*Config, error) {
	cfg := Default()
	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply runs opts against c in order and validates the result.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return c.Validate()
}

// WithMinimumSeverity sets the severity floor by name.
func WithMinimumSeverity(name string) Option {
	return func(c *Config) error {
		s, err := types.ParseSeverity(name)
		if err != nil {
			return errors.Wrapf(ErrInvalidOption, "minimumSeverity: %v", err)
		}
		c.MinimumSeverity = s
		return nil
	}
}

// WithRiskLevel sets the severity floor from a numeric risk level:
// 1 reports everything, 2 warnings and errors, 3 errors only.
func WithRiskLevel(level int) Option {
	return func(c *Config) error {
		if level < 1 || level > len(types.AllSeverities) {
			return errors.Wrapf(ErrInvalidOption, "riskLevel: %d is out of range 1-%d", level, len(types.AllSeverities))
		}
		c.MinimumSeverity = types.AllSeverities[level-1]
		return nil
	}
}

// WithCategories restricts the enabled categories to names.
func WithCategories(names ...string) Option {
	return func(c *Config) error {
		categories := make([]types.Category, 0, len(names))
		for _, name := range names {
			if strings.TrimSpace(name) == "" {
				continue
			}
			cat, err := types.ParseCategory(name)
			if err != nil {
				return errors.Wrapf(ErrInvalidOption, "enabledCategories: %v", err)
			}
			categories = append(categories, cat)
		}
		c.EnabledCategories = categories
		return nil
	}
}

// WithoutCategories disables the named categories.
func WithoutCategories(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			cat, err := types.ParseCategory(name)
			if err != nil {
				return errors.Wrapf(ErrInvalidOption, "disabledCategories: %v", err)
			}
			kept := c.EnabledCategories[:0:0]
			for _, enabled := range c.EnabledCategories {
				if enabled != cat {
					kept = append(kept, enabled)
				}
			}
			c.EnabledCategories = kept
		}
		return nil
	}
}

// WithPrintOffendingStatement toggles the statement header in reports.
func WithPrintOffendingStatement(print bool) Option {
	return func(c *Config) error {
		c.PrintOffendingStatement = print
		return nil
	}
}

// WithThreshold overrides a single threshold.
func WithThreshold(t Threshold, value int) Option {
	return func(c *Config) error {
		switch t {
		case IndexCountThreshold:
			c.Thresholds.IndexCount = value
		case JoinCountThreshold:
			c.Thresholds.JoinCount = value
		case DistinctCountThreshold:
			c.Thresholds.DistinctCount = value
		case NestingThreshold:
			c.Thresholds.Nesting = value
		case SpaghettiLengthThreshold:
			c.Thresholds.SpaghettiLength = value
		default:
			return errors.Wrapf(ErrInvalidOption, "unknown threshold %d", int(t))
		}
		return nil
	}
}

// Validate rejects values no run can use.
func (c *Config) Validate() error {
	switch c.MinimumSeverity {
	case types.SeverityInfo, types.SeverityWarning, types.SeverityError:
	default:
		return errors.Wrapf(ErrInvalidOption, "minimumSeverity: unsupported value %d", int(c.MinimumSeverity))
	}

	if len(c.EnabledCategories) == 0 {
		return errors.Wrap(ErrInvalidOption, "enabledCategories: at least one category must be enabled")
	}
	for _, cat := range c.EnabledCategories {
		if cat == types.CategoryUnspecified || cat > types.CategoryApplication {
			return errors.Wrapf(ErrInvalidOption, "enabledCategories: unsupported value %d", int(cat))
		}
	}

	for _, t := range []Threshold{IndexCountThreshold, JoinCountThreshold, DistinctCountThreshold, NestingThreshold, SpaghettiLengthThreshold} {
		if v := c.Threshold(t); v < 1 {
			return errors.Wrapf(ErrInvalidOption, "thresholds.%s: must be positive, got %d", t, v)
		}
	}
	return nil
}

// CategoryEnabled reports whether rules of category cat should run.
func (c *Config) CategoryEnabled(cat types.Category) bool {
	for _, enabled := range c.EnabledCategories {
		if enabled == cat {
			return true
		}
	}
	return false
}

// SeverityEnabled reports whether findings of severity s are reported.
func (c *Config) SeverityEnabled(s types.Severity) bool {
	return s >= c.MinimumSeverity
}

// Threshold returns the configured value of t.
func (c *Config) Threshold(t Threshold) int {
	switch t {
	case IndexCountThreshold:
		return c.Thresholds.IndexCount
	case JoinCountThreshold:
		return c.Thresholds.JoinCount
	case DistinctCountThreshold:
		return c.Thresholds.DistinctCount
	case NestingThreshold:
		return c.Thresholds.Nesting
	case SpaghettiLengthThreshold:
		return c.Thresholds.SpaghettiLength
	default:
		return 0
	}
}

// LoadFromFile loads configuration from a file. Keys absent from the file
// keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	slog.Debug("Loading config from file", "filename", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", filename)
	}
	return Parse(data)
}

// Parse decodes a YAML or JSON document into a validated Config. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	config := Default()

	// Try YAML first, then JSON
	if yamlErr := decodeYAML(data, config); yamlErr != nil {
		slog.Debug("YAML decode failed", "error", yamlErr)
		config = Default()
		if err := decodeJSON(data, config); err != nil {
			slog.Debug("JSON decode failed", "error", err)
			return nil, errors.Wrapf(ErrInvalidOption, "%v", yamlErr)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("Loaded config", "minimum_severity", config.MinimumSeverity, "categories", len(config.EnabledCategories))
	return config, nil
}

func decodeYAML(data []byte, config *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeJSON(data []byte, config *Config) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(config)
}
