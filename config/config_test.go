package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/taintflow/analyzer/flow"
	"github.com/viant/taintflow/source"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)
	expect := DefaultConfig()
	assert.Equal(t, expect.Resolution, cfg.Resolution)
	assert.Equal(t, expect.Workers, cfg.Workers)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, expect.SkipDirs, cfg.SkipDirs)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, flow.Isolated, cfg.ResolutionPolicy())
}

func TestLoad_File(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
resolution: lexical
fields: true
format: json
seeds:
  - language: java
    methods: [service]
    param_types: [ServletRequest]
    first_only: true
logger:
  level: debug
`)))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, flow.Lexical, cfg.ResolutionPolicy())
	assert.True(t, cfg.Fields)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, []source.Rule{{Methods: []string{"service"}, ParamTypes: []string{"ServletRequest"}, FirstOnly: true}}, cfg.Rules("java"))
	assert.Equal(t, source.DefaultRules("go"), cfg.Rules("go"))
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TAINTFLOW_WORKERS", "3")
	t.Setenv("TAINTFLOW_LOGGER_LEVEL", "error")
	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "error", cfg.Logger.Level)
}

func TestConfig_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		mutate      func(c *Config)
		wantErr     bool
	}{
		{description: "defaults", mutate: func(c *Config) {}},
		{description: "lexical", mutate: func(c *Config) { c.Resolution = "lexical" }},
		{description: "unknown resolution", mutate: func(c *Config) { c.Resolution = "dynamic" }, wantErr: true},
		{description: "unknown format", mutate: func(c *Config) { c.Format = "xml" }, wantErr: true},
		{description: "negative workers", mutate: func(c *Config) { c.Workers = -1 }, wantErr: true},
		{description: "seed without language", mutate: func(c *Config) { c.Seeds = []SeedRule{{Methods: []string{"run"}}} }, wantErr: true},
	}
	for _, testCase := range testCases {
		cfg := DefaultConfig()
		testCase.mutate(cfg)
		err := cfg.Validate()
		if testCase.wantErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
	}
}
