package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.Data.Source, "format=GeoJSON")
	assert.Equal(t, "_", cfg.Data.AttributePrefix)
	assert.Equal(t, 1950, cfg.Data.StartYear)
	assert.Equal(t, 2025, cfg.Data.EndYear)
	assert.Equal(t, 5, cfg.Data.Step)
	assert.Equal(t, "urbanagg", cfg.Data.NameKey)
	assert.InDelta(t, 1000, cfg.Data.UnitDivisor, 0.001)
	assert.Equal(t, 2015, cfg.Map.DefaultYear)
	assert.InDelta(t, 0.018, cfg.Map.ScaleFactor, 1e-9)
	assert.InDelta(t, 2, cfg.Map.RadiusMultiplier, 1e-9)
	assert.InDelta(t, 0.7, cfg.Map.FillOpacity, 1e-9)
	assert.True(t, cfg.Map.ShowTrend)
	assert.False(t, cfg.Map.HideTrendOnLeave)
	assert.Equal(t, "rgba(123, 50, 148, 0.8)", cfg.Palette.Decline)
	assert.Equal(t, "rgba(49, 163, 84, 0.8)", cfg.Palette.AboveMedian)
	assert.InDelta(t, 400, cfg.Trend.Width, 1e-9)
	assert.InDelta(t, 60, cfg.Trend.Margin.Left, 1e-9)
	assert.Equal(t, 2050, cfg.Trend.DashEnd)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "json", cfg.Export.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.NoError(t, cfg.Validate("render"))
	assert.NoError(t, cfg.Validate("serve"))
	assert.Len(t, cfg.Data.Years(), 16)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
data:
  source: ./ua.geojson
  end_year: 2050
map:
  default_year: 2030
  show_trend: false
log:
  level: debug
  format: console
trend:
  margin:
    left: 40
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./ua.geojson", cfg.Data.Source)
	assert.Equal(t, 2050, cfg.Data.EndYear)
	assert.Equal(t, 2030, cfg.Map.DefaultYear)
	assert.False(t, cfg.Map.ShowTrend)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.InDelta(t, 40, cfg.Trend.Margin.Left, 1e-9)
	// Defaults still apply for unset values
	assert.InDelta(t, 10, cfg.Trend.Margin.Top, 1e-9)
	assert.Equal(t, 1950, cfg.Data.StartYear)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
map:
  default_year: 2000
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	t.Setenv("URBANGROWTH_MAP_DEFAULT_YEAR", "2010")
	t.Setenv("URBANGROWTH_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, 2010, cfg.Map.DefaultYear)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("URBANGROWTH_SERVER_PORT", "3000")
	t.Setenv("URBANGROWTH_DATA_SOURCE", "https://example.com/ua.geojson")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "https://example.com/ua.geojson", cfg.Data.Source)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("data: [unclosed"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Data.Source = "ua.geojson"
	cfg.Data.StartYear = 1950
	cfg.Data.EndYear = 2025
	cfg.Data.Step = 5
	cfg.Data.UnitDivisor = 1000
	cfg.Map.DefaultYear = 2015
	cfg.Map.ScaleFactor = 0.018
	cfg.Map.RadiusMultiplier = 2
	cfg.Trend.Width = 400
	cfg.Trend.Height = 200
	cfg.Trend.Margin = MarginConfig{Top: 10, Right: 20, Bottom: 20, Left: 60}
	cfg.Trend.DashStart = 2015
	cfg.Trend.DashEnd = 2050
	cfg.Server.Port = 8080
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid render", mode: "render", mutate: func(*Config) {}},
		{name: "valid serve", mode: "serve", mutate: func(*Config) {}},
		{name: "zero step", mode: "render", mutate: func(c *Config) { c.Data.Step = 0 }, wantErr: "data.step must be > 0"},
		{name: "reversed range", mode: "render", mutate: func(c *Config) { c.Data.EndYear = 1900 }, wantErr: "data.end_year"},
		{name: "default year off series", mode: "render", mutate: func(c *Config) { c.Map.DefaultYear = 2013 }, wantErr: "map.default_year must be a year"},
		{name: "default year first", mode: "render", mutate: func(c *Config) { c.Map.DefaultYear = 1950 }, wantErr: "prior year"},
		{name: "no source", mode: "render", mutate: func(c *Config) { c.Data.Source = "" }, wantErr: "data.source is required"},
		{name: "zero divisor", mode: "render", mutate: func(c *Config) { c.Data.UnitDivisor = 0 }, wantErr: "data.unit_divisor"},
		{name: "zero scale factor", mode: "render", mutate: func(c *Config) { c.Map.ScaleFactor = 0 }, wantErr: "map.scale_factor"},
		{name: "negative multiplier", mode: "render", mutate: func(c *Config) { c.Map.RadiusMultiplier = -1 }, wantErr: "map.radius_multiplier"},
		{name: "reversed dash", mode: "render", mutate: func(c *Config) { c.Trend.DashEnd = 2000 }, wantErr: "trend.dash_end"},
		{name: "tiny chart", mode: "render", mutate: func(c *Config) { c.Trend.Width = 50 }, wantErr: "no plotting area"},
		{name: "bad port", mode: "serve", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "port ignored for render", mode: "render", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "unknown mode", mode: "unknown", mutate: func(*Config) {}, wantErr: "unknown mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			tt.mutate(cfg)
			err := cfg.Validate(tt.mode)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := validDefaults()
	cfg.Data.Source = ""
	cfg.Map.ScaleFactor = 0

	err := cfg.Validate("render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.source is required")
	assert.Contains(t, err.Error(), "map.scale_factor must be > 0")
}
