package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "symrel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 32, cfg.Domain)
	assert.True(t, cfg.Graph.ExcludeLast)
	assert.Equal(t, []string{"EVEN", "PRIME"}, cfg.SetNames())
	assert.Equal(t, Namespaces{Source: "x", Target: "y", Temp: "z"}, cfg.Namespaces)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
domain: 16
ordering: blocked
max_iterations: 8
graph:
  rule: "(i + 1) % 16 = j"
  exclude_last: false
sets:
  ODD:
    namespace: y
    rule: "n % 2 = 1"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Domain)
	assert.Equal(t, "blocked", cfg.Ordering)
	assert.Equal(t, 8, cfg.MaxIterations)
	assert.False(t, cfg.Graph.ExcludeLast)
	assert.Equal(t, []string{"ODD"}, cfg.SetNames())
	// Untouched keys keep their defaults.
	assert.Equal(t, "x", cfg.Namespaces.Source)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SYMREL_MAX_ITERATIONS", "3")
	t.Setenv("SYMREL_LOG_LEVEL", "debug")
	t.Setenv("SYMREL_ORDERING", "blocked")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxIterations)
	assert.Equal(t, "blocked", cfg.Ordering)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	t.Setenv("SYMREL_MAX_ITERATIONS", "many")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "domain: [1, 2"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		msg    string
		modify func(c *Config)
	}{
		{msg: "zero domain", modify: func(c *Config) { c.Domain = 0 }},
		{msg: "unknown ordering", modify: func(c *Config) { c.Ordering = "random" }},
		{msg: "unknown log level", modify: func(c *Config) { c.LogLevel = "loud" }},
		{msg: "shared namespace", modify: func(c *Config) { c.Namespaces.Temp = "x" }},
		{msg: "unnamed namespace", modify: func(c *Config) { c.Namespaces.Target = "" }},
		{msg: "empty rule", modify: func(c *Config) { c.Graph.Rule = "" }},
		{msg: "set without members", modify: func(c *Config) { c.Sets["NONE"] = Set{Namespace: "x"} }},
		{msg: "set with members and rule", modify: func(c *Config) {
			c.Sets["BOTH"] = Set{Namespace: "x", Members: []int{1}, Rule: "n = 1"}
		}},
		{msg: "set over unknown namespace", modify: func(c *Config) {
			c.Sets["W"] = Set{Namespace: "w", Members: []int{1}}
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.msg, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
