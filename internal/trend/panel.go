// Package trend renders the per-feature population chart, drawing the
// projected part of the series dashed.
package trend

import (
	"math"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/urbangrowth/internal/model"
	"github.com/sells-group/urbangrowth/internal/series"
)

// Margin is the space around the plotting area, in pixels.
type Margin struct {
	Top    float64 `json:"top" yaml:"top" mapstructure:"top"`
	Right  float64 `json:"right" yaml:"right" mapstructure:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom" mapstructure:"bottom"`
	Left   float64 `json:"left" yaml:"left" mapstructure:"left"`
}

// Config controls chart geometry and the projected range.
type Config struct {
	Width      float64 `json:"width" mapstructure:"width"`
	Height     float64 `json:"height" mapstructure:"height"`
	Margin     Margin  `json:"margin" mapstructure:"margin"`
	DashStart  int     `json:"dash_start" mapstructure:"dash_start"`
	DashEnd    int     `json:"dash_end" mapstructure:"dash_end"`
	DashLength float64 `json:"dash_length" mapstructure:"dash_length"`
	YTicks     int     `json:"y_ticks" mapstructure:"y_ticks"`
}

// DefaultConfig is a 400x200 chart whose 2015-2050 projection is dashed.
func DefaultConfig() Config {
	return Config{
		Width:      400,
		Height:     200,
		Margin:     Margin{Top: 10, Right: 20, Bottom: 20, Left: 60},
		DashStart:  2015,
		DashEnd:    2050,
		DashLength: 2,
		YTicks:     5,
	}
}

// axisLabelSpace is the extra height below the chart for rotated year labels.
const axisLabelSpace = 30

// Sample is one (year, magnitude) observation.
type Sample struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Panel is a fully laid out trend chart.
type Panel struct {
	FeatureID   string     `json:"feature_id"`
	Title       string     `json:"title"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	Margin      Margin     `json:"margin"`
	InnerWidth  float64    `json:"inner_width"`
	InnerHeight float64    `json:"inner_height"`
	Samples     []Sample   `json:"samples"`
	X           Linear     `json:"x"`
	Y           Linear     `json:"y"`
	Points      []Point    `json:"points"`
	D           string     `json:"d"`
	TotalLength float64    `json:"total_length"`
	DashYears   [2]int     `json:"dash_years"`
	DashLength  float64    `json:"dash_length"`
	DashBounds  [2]float64 `json:"dash_bounds"`
	// DashExact reports whether each bound was hit exactly by the search.
	DashExact [2]bool   `json:"dash_exact"`
	DashArray []float64 `json:"dash_array"`
	XTicks    []Tick    `json:"x_ticks"`
	YTicks    []Tick    `json:"y_ticks"`
}

// Build lays out the trend chart for f across the year series. No-data
// years are left out of the line; the y domain is the feature's own range.
func Build(f *model.Feature, years series.Years, cfg Config) (Panel, error) {
	if f == nil {
		return Panel{}, eris.New("trend: nil feature")
	}
	if len(years) == 0 {
		return Panel{}, eris.New("trend: empty year series")
	}
	innerW := cfg.Width - cfg.Margin.Left - cfg.Margin.Right
	innerH := cfg.Height - cfg.Margin.Top - cfg.Margin.Bottom
	if innerW <= 0 || innerH <= 0 {
		return Panel{}, eris.Errorf("trend: chart %vx%v leaves no plotting area", cfg.Width, cfg.Height)
	}

	samples := make([]Sample, 0, len(years))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, y := range years {
		v, ok := f.Value(y)
		if !ok {
			continue
		}
		samples = append(samples, Sample{Year: y, Value: v})
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if len(samples) == 0 {
		return Panel{}, eris.Errorf("trend: feature %s has no data", f.ID)
	}

	x := Linear{
		Domain: [2]float64{float64(years.First()), float64(years.Last())},
		Range:  [2]float64{0, innerW},
	}
	y := Linear{
		Domain: [2]float64{lo, hi},
		Range:  [2]float64{innerH, 0},
	}

	pts := make([]Point, len(samples))
	for i, s := range samples {
		pts[i] = Point{X: x.Apply(float64(s.Year)), Y: y.Apply(s.Value)}
	}
	path := NewPath(pts)
	total := path.Length()

	p := Panel{
		FeatureID:   f.ID,
		Title:       f.Label(),
		Width:       cfg.Width,
		Height:      cfg.Height + axisLabelSpace,
		Margin:      cfg.Margin,
		InnerWidth:  innerW,
		InnerHeight: innerH,
		Samples:     samples,
		X:           x,
		Y:           y,
		Points:      pts,
		D:           path.D(),
		TotalLength: total,
		DashYears:   [2]int{cfg.DashStart, cfg.DashEnd},
		DashLength:  cfg.DashLength,
		YTicks:      niceTicks(y, cfg.YTicks),
	}

	for i, year := range p.DashYears {
		p.DashBounds[i], p.DashExact[i] = LengthAtX(path, x.Apply(float64(year)))
	}
	p.DashArray = DashArray(total, p.DashBounds[0], p.DashBounds[1], cfg.DashLength)

	p.XTicks = make([]Tick, len(years))
	for i, yr := range years {
		p.XTicks[i] = Tick{Value: float64(yr), Pos: x.Apply(float64(yr)), Label: strconv.Itoa(yr)}
	}
	return p, nil
}
