package config

import (
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/urbangrowth/internal/series"
)

// Config holds the full application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
	Map     MapConfig     `yaml:"map" mapstructure:"map"`
	Palette PaletteConfig `yaml:"palette" mapstructure:"palette"`
	Trend   TrendConfig   `yaml:"trend" mapstructure:"trend"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Export  ExportConfig  `yaml:"export" mapstructure:"export"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the feature collection and describes its attributes.
type DataConfig struct {
	Source            string  `yaml:"source" mapstructure:"source"`
	AttributePrefix   string  `yaml:"attribute_prefix" mapstructure:"attribute_prefix"`
	StartYear         int     `yaml:"start_year" mapstructure:"start_year"`
	EndYear           int     `yaml:"end_year" mapstructure:"end_year"`
	Step              int     `yaml:"step" mapstructure:"step"`
	IDKey             string  `yaml:"id_key" mapstructure:"id_key"`
	NameKey           string  `yaml:"name_key" mapstructure:"name_key"`
	CountryKey        string  `yaml:"country_key" mapstructure:"country_key"`
	UnitDivisor       float64 `yaml:"unit_divisor" mapstructure:"unit_divisor"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// Years returns the configured census year series.
func (d DataConfig) Years() series.Years {
	return series.Range(d.StartYear, d.EndYear, d.Step)
}

// MapConfig configures the symbol layer and its interaction.
type MapConfig struct {
	DefaultYear      int     `yaml:"default_year" mapstructure:"default_year"`
	ScaleFactor      float64 `yaml:"scale_factor" mapstructure:"scale_factor"`
	RadiusMultiplier float64 `yaml:"radius_multiplier" mapstructure:"radius_multiplier"`
	LegendMin        float64 `yaml:"legend_min" mapstructure:"legend_min"`
	Stroke           string  `yaml:"stroke" mapstructure:"stroke"`
	Weight           float64 `yaml:"weight" mapstructure:"weight"`
	FillOpacity      float64 `yaml:"fill_opacity" mapstructure:"fill_opacity"`
	HoverOpacity     float64 `yaml:"hover_opacity" mapstructure:"hover_opacity"`
	ShowTrend        bool    `yaml:"show_trend" mapstructure:"show_trend"`
	HideTrendOnLeave bool    `yaml:"hide_trend_on_leave" mapstructure:"hide_trend_on_leave"`
}

// PaletteConfig holds one fill color per growth bucket.
type PaletteConfig struct {
	Decline     string `yaml:"decline" mapstructure:"decline"`
	BelowMedian string `yaml:"below_median" mapstructure:"below_median"`
	AboveMedian string `yaml:"above_median" mapstructure:"above_median"`
}

// MarginConfig is the space around the trend plotting area.
type MarginConfig struct {
	Top    float64 `yaml:"top" mapstructure:"top"`
	Right  float64 `yaml:"right" mapstructure:"right"`
	Bottom float64 `yaml:"bottom" mapstructure:"bottom"`
	Left   float64 `yaml:"left" mapstructure:"left"`
}

// TrendConfig configures the trend chart and its render cache.
type TrendConfig struct {
	Width      float64      `yaml:"width" mapstructure:"width"`
	Height     float64      `yaml:"height" mapstructure:"height"`
	Margin     MarginConfig `yaml:"margin" mapstructure:"margin"`
	DashStart  int          `yaml:"dash_start" mapstructure:"dash_start"`
	DashEnd    int          `yaml:"dash_end" mapstructure:"dash_end"`
	DashLength float64      `yaml:"dash_length" mapstructure:"dash_length"`
	YTicks     int          `yaml:"y_ticks" mapstructure:"y_ticks"`
	CacheSize  int          `yaml:"cache_size" mapstructure:"cache_size"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// ExportConfig configures batch export.
type ExportConfig struct {
	OutDir      string `yaml:"out_dir" mapstructure:"out_dir"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
	Format      string `yaml:"format" mapstructure:"format"`
	Trends      bool   `yaml:"trends" mapstructure:"trends"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("URBANGROWTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.source", "https://jeffs.carto.com/api/v2/sql?format=GeoJSON&q=SELECT+*+FROM+public.un_cities_data")
	v.SetDefault("data.attribute_prefix", "_")
	v.SetDefault("data.start_year", 1950)
	v.SetDefault("data.end_year", 2025)
	v.SetDefault("data.step", 5)
	v.SetDefault("data.id_key", "cartodb_id")
	v.SetDefault("data.name_key", "urbanagg")
	v.SetDefault("data.country_key", "country")
	v.SetDefault("data.unit_divisor", 1000)
	v.SetDefault("data.timeout_secs", 60)
	v.SetDefault("data.requests_per_second", 2)
	v.SetDefault("map.default_year", 2015)
	v.SetDefault("map.scale_factor", 0.018)
	v.SetDefault("map.radius_multiplier", 2)
	v.SetDefault("map.legend_min", 1000)
	v.SetDefault("map.stroke", "white")
	v.SetDefault("map.weight", 1)
	v.SetDefault("map.fill_opacity", 0.7)
	v.SetDefault("map.hover_opacity", 1)
	v.SetDefault("map.show_trend", true)
	v.SetDefault("map.hide_trend_on_leave", false)
	v.SetDefault("palette.decline", "rgba(123, 50, 148, 0.8)")
	v.SetDefault("palette.below_median", "rgba(229, 245, 224, 0.8)")
	v.SetDefault("palette.above_median", "rgba(49, 163, 84, 0.8)")
	v.SetDefault("trend.width", 400)
	v.SetDefault("trend.height", 200)
	v.SetDefault("trend.margin.top", 10)
	v.SetDefault("trend.margin.right", 20)
	v.SetDefault("trend.margin.bottom", 20)
	v.SetDefault("trend.margin.left", 60)
	v.SetDefault("trend.dash_start", 2015)
	v.SetDefault("trend.dash_end", 2050)
	v.SetDefault("trend.dash_length", 2)
	v.SetDefault("trend.y_ticks", 5)
	v.SetDefault("trend.cache_size", 256)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("export.out_dir", "out")
	v.SetDefault("export.concurrency", 4)
	v.SetDefault("export.format", "json")
	v.SetDefault("export.trends", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings every command depends on. Mode "serve" also
// checks the server section.
func (c *Config) Validate(mode string) error {
	var problems []string

	years := c.Data.Years()
	switch {
	case c.Data.Step <= 0:
		problems = append(problems, "data.step must be > 0")
	case c.Data.EndYear < c.Data.StartYear:
		problems = append(problems, "data.end_year must be >= data.start_year")
	case !slices.Contains(years, c.Map.DefaultYear):
		problems = append(problems, "map.default_year must be a year of the series")
	case c.Map.DefaultYear == years.First():
		problems = append(problems, "map.default_year needs a prior year in the series")
	}
	if c.Data.Source == "" {
		problems = append(problems, "data.source is required")
	}
	if c.Data.UnitDivisor <= 0 {
		problems = append(problems, "data.unit_divisor must be > 0")
	}
	if c.Map.ScaleFactor <= 0 {
		problems = append(problems, "map.scale_factor must be > 0")
	}
	if c.Map.RadiusMultiplier <= 0 {
		problems = append(problems, "map.radius_multiplier must be > 0")
	}
	if c.Trend.DashEnd < c.Trend.DashStart {
		problems = append(problems, "trend.dash_end must be >= trend.dash_start")
	}
	if c.Trend.Width-c.Trend.Margin.Left-c.Trend.Margin.Right <= 0 ||
		c.Trend.Height-c.Trend.Margin.Top-c.Trend.Margin.Bottom <= 0 {
		problems = append(problems, "trend chart leaves no plotting area")
	}

	switch mode {
	case "render":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0 and <= 65535")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
