package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goregression/stats"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Output)
	assert.Equal(t, 0.05, c.Significance)
	assert.Equal(t, stats.RegressionConstant, c.ADFRegression)
	assert.True(t, c.ADFAutoLag)
	assert.Equal(t, 252.0, c.HalfLifeMax)
	assert.Equal(t, 20, c.ZScoreLookback)
	assert.Equal(t, ',', c.Delimiter())

	opts := c.ADFOptions()
	assert.Equal(t, stats.DefaultADFOptions(), opts)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GOREGRESSION_OUTPUT", "yaml")
	t.Setenv("GOREGRESSION_ADF_REGRESSION", "ct")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.Output)
	assert.Equal(t, stats.RegressionConstantTrend, c.ADFOptions().Regression)
}

func TestSaveAndLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := Load("")
	require.NoError(t, err)
	c.Output = "yaml"
	c.Significance = 0.01
	c.CSVDelimiter = ";"
	c.ZScoreLookback = 30
	require.NoError(t, Save(c, ""))

	_, err = os.Stat(filepath.Join(home, ".goregression", "config.yaml"))
	require.NoError(t, err)

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, c, got)
	assert.Equal(t, ';', got.Delimiter())
	assert.Equal(t, 30, got.PairsOptions().ZScoreLookback)
	assert.Equal(t, 0.01, got.PairsOptions().ADF.Significance)
}

func TestLoadExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: yaml\nadf_max_lag: 4\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.Output)
	assert.Equal(t, 4, c.ADFMaxLag)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	base, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"output", func(c *Config) { c.Output = "xml" }},
		{"significance", func(c *Config) { c.Significance = 0.2 }},
		{"regression", func(c *Config) { c.ADFRegression = "ctt" }},
		{"delimiter", func(c *Config) { c.CSVDelimiter = ";;" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
	assert.NoError(t, base.Validate())
}
