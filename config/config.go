package config

import (
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"github.com/viant/taintflow/analyzer"
	"github.com/viant/taintflow/analyzer/flow"
	"github.com/viant/taintflow/source"
)

// EnvPrefix prefixes environment overrides, e.g. TAINTFLOW_RESOLUTION.
const EnvPrefix = "TAINTFLOW"

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config holds the analysis settings.
type Config struct {
	Resolution    string       `mapstructure:"resolution" yaml:"resolution"`
	Fields        bool         `mapstructure:"fields" yaml:"fields"`
	ReceiverReads bool         `mapstructure:"receiver_reads" yaml:"receiver_reads"`
	Workers       int          `mapstructure:"workers" yaml:"workers"`
	Format        string       `mapstructure:"format" yaml:"format"`
	SkipDirs      []string     `mapstructure:"skip_dirs" yaml:"skip_dirs"`
	Seeds         []SeedRule   `mapstructure:"seeds" yaml:"seeds"`
	Logger        LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

// SeedRule configures taint sources of one language.
type SeedRule struct {
	Language   string   `mapstructure:"language" yaml:"language"`
	Methods    []string `mapstructure:"methods" yaml:"methods"`
	ParamTypes []string `mapstructure:"param_types" yaml:"param_types"`
	FirstOnly  bool     `mapstructure:"first_only" yaml:"first_only"`
}

// LoggerConfig configures the process logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Resolution: string(flow.Isolated),
		Workers:    runtime.NumCPU(),
		Format:     FormatText,
		SkipDirs:   slices.Clone(analyzer.DefaultSkipDirs),
		Logger: LoggerConfig{
			Level:       "warn",
			Format:      "console",
			ServiceName: "taintflow",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      7,
		},
	}
}

// Load decodes v over the defaults. Keys may be overridden from the environment
// with the TAINTFLOW_ prefix, nested keys joined by an underscore.
func Load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("resolution", cfg.Resolution)
	v.SetDefault("fields", cfg.Fields)
	v.SetDefault("receiver_reads", cfg.ReceiverReads)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("format", cfg.Format)
	v.SetDefault("skip_dirs", cfg.SkipDirs)
	v.SetDefault("logger.level", cfg.Logger.Level)
	v.SetDefault("logger.format", cfg.Logger.Format)
	v.SetDefault("logger.service_name", cfg.Logger.ServiceName)
	v.SetDefault("logger.log_file", cfg.Logger.LogFile)
	v.SetDefault("logger.max_size", cfg.Logger.MaxSize)
	v.SetDefault("logger.max_backups", cfg.Logger.MaxBackups)
	v.SetDefault("logger.max_age", cfg.Logger.MaxAge)
	v.SetDefault("logger.compress", cfg.Logger.Compress)
}

// Validate rejects unknown enumerations and negative counts.
func (c *Config) Validate() error {
	if _, err := flow.ParseResolution(c.Resolution); err != nil {
		return err
	}
	switch c.Format {
	case FormatText, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("unsupported format: %q", c.Format)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers: %v", c.Workers)
	}
	for i, seed := range c.Seeds {
		if seed.Language == "" {
			return fmt.Errorf("seeds[%v]: language is required", i)
		}
	}
	return nil
}

// ResolutionPolicy returns the configured name resolution policy.
func (c *Config) ResolutionPolicy() flow.Resolution {
	resolution, err := flow.ParseResolution(c.Resolution)
	if err != nil {
		return flow.Isolated
	}
	return resolution
}

// Rules returns the seed rules configured for language, or its defaults.
func (c *Config) Rules(language string) []source.Rule {
	var result []source.Rule
	for _, seed := range c.Seeds {
		if !strings.EqualFold(seed.Language, language) {
			continue
		}
		result = append(result, source.Rule{Methods: seed.Methods, ParamTypes: seed.ParamTypes, FirstOnly: seed.FirstOnly})
	}
	if len(result) == 0 {
		return source.DefaultRules(language)
	}
	return result
}
