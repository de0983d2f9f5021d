// Package timeline owns the current census year and derives every
// year-dependent visual (symbols, growth legend, temporal label) from it.
package timeline

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/urbangrowth/internal/growth"
	"github.com/sells-group/urbangrowth/internal/legend"
	"github.com/sells-group/urbangrowth/internal/model"
	"github.com/sells-group/urbangrowth/internal/series"
	"github.com/sells-group/urbangrowth/internal/symbol"
)

// Style is the fixed stroke and opacity of proportional symbols.
type Style struct {
	Stroke       string  `json:"stroke" yaml:"stroke"`
	Weight       float64 `json:"weight" yaml:"weight"`
	FillOpacity  float64 `json:"fill_opacity" yaml:"fill_opacity"`
	HoverOpacity float64 `json:"hover_opacity" yaml:"hover_opacity"`
}

// DefaultStyle is a thin white outline at 70% fill, opaque on hover.
func DefaultStyle() Style {
	return Style{Stroke: "white", Weight: 1, FillOpacity: 0.7, HoverOpacity: 1}
}

// Settings configures a session snapshot.
type Settings struct {
	Start       int
	End         int
	Step        int
	DefaultYear int
	ScaleFactor float64
	Multiplier  float64
	LegendMin   float64
	// UnitDivisor converts raw magnitudes to millions for popups.
	UnitDivisor float64
	Palette     growth.Palette
	Style       Style
}

// DefaultSettings covers 1950-2025 in five-year steps with values in
// thousands, opening on 2015.
func DefaultSettings() Settings {
	return Settings{
		Start:       1950,
		End:         2025,
		Step:        5,
		DefaultYear: 2015,
		ScaleFactor: symbol.DefaultScaleFactor,
		Multiplier:  symbol.DefaultMultiplier,
		LegendMin:   1000,
		UnitDivisor: 1000,
		Palette:     growth.DefaultPalette(),
		Style:       DefaultStyle(),
	}
}

// Snapshot is everything a frame is computed from. It is built once at load
// and never mutated; the breaks in particular are not recomputed when the
// year changes.
type Snapshot struct {
	Features    *model.Collection
	Info        series.Info
	Breaks      growth.Breaks
	Scaler      symbol.Scaler
	Palette     growth.Palette
	Style       Style
	UnitDivisor float64
	DefaultYear int
	SizeLegend  legend.SizeLegend
}

// Years returns the snapshot's year series.
func (s *Snapshot) Years() series.Years { return s.Info.Years }

// NewSnapshot extracts attributes, computes the classification breaks at the
// default year and sizes the legend.
func NewSnapshot(coll *model.Collection, st Settings) (*Snapshot, error) {
	if coll.Len() == 0 {
		return nil, eris.New("timeline: empty feature collection")
	}
	years := series.Range(st.Start, st.End, st.Step)
	if len(years) == 0 {
		return nil, eris.Errorf("timeline: empty year series %d-%d step %d", st.Start, st.End, st.Step)
	}
	if st.UnitDivisor <= 0 {
		st.UnitDivisor = 1
	}

	info := series.Extract(coll, years)
	if info.Empty() {
		return nil, eris.New("timeline: no feature has data for any year")
	}

	breaks, err := growth.ComputeBreaks(coll, years, st.DefaultYear)
	if err != nil {
		return nil, eris.Wrap(err, "timeline: classification breaks")
	}

	scaler := symbol.NewScaler(st.ScaleFactor, st.Multiplier)
	size, err := legend.Size(info, scaler, st.LegendMin)
	if err != nil {
		return nil, eris.Wrap(err, "timeline: size legend")
	}

	return &Snapshot{
		Features:    coll,
		Info:        info,
		Breaks:      breaks,
		Scaler:      scaler,
		Palette:     st.Palette,
		Style:       st.Style,
		UnitDivisor: st.UnitDivisor,
		DefaultYear: st.DefaultYear,
		SizeLegend:  size,
	}, nil
}
