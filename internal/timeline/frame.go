package timeline

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/urbangrowth/internal/growth"
	"github.com/sells-group/urbangrowth/internal/legend"
	"github.com/sells-group/urbangrowth/internal/model"
)

// ErrUnknownYear is returned for years outside the series.
var ErrUnknownYear = eris.New("timeline: year not in series")

// Popup is the info bubble bound to a symbol.
type Popup struct {
	Title            string  `json:"title" yaml:"title"`
	Magnitude        string  `json:"magnitude" yaml:"magnitude"`
	MagnitudeCaption string  `json:"magnitude_caption" yaml:"magnitude_caption"`
	Growth           string  `json:"growth" yaml:"growth"`
	GrowthCaption    string  `json:"growth_caption" yaml:"growth_caption"`
	OffsetY          float64 `json:"offset_y" yaml:"offset_y"`
}

// Symbol is the visual state of one feature in one year. Hidden symbols
// carry identity only.
type Symbol struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Country     string   `json:"country" yaml:"country"`
	Lon         float64  `json:"lon" yaml:"lon"`
	Lat         float64  `json:"lat" yaml:"lat"`
	Visible     bool     `json:"visible" yaml:"visible"`
	Magnitude   float64  `json:"magnitude,omitempty" yaml:"magnitude,omitempty"`
	Radius      float64  `json:"radius,omitempty" yaml:"radius,omitempty"`
	Growth      *float64 `json:"growth,omitempty" yaml:"growth,omitempty"`
	Bucket      string   `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Color       string   `json:"color,omitempty" yaml:"color,omitempty"`
	Stroke      string   `json:"stroke,omitempty" yaml:"stroke,omitempty"`
	Weight      float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	FillOpacity float64  `json:"fill_opacity,omitempty" yaml:"fill_opacity,omitempty"`
	Popup       *Popup   `json:"popup,omitempty" yaml:"popup,omitempty"`
}

// Frame is the complete year-dependent visual state.
type Frame struct {
	Year         int                 `json:"year" yaml:"year"`
	Label        string              `json:"label" yaml:"label"`
	Visible      int                 `json:"visible" yaml:"visible"`
	Symbols      []Symbol            `json:"symbols" yaml:"symbols"`
	GrowthLegend legend.GrowthLegend `json:"growth_legend" yaml:"growth_legend"`
}

// Compute derives the frame for year t. It is a pure function of the
// snapshot and t. The first series year has no prior year and renders with
// undefined growth in the lowest bucket.
func Compute(s *Snapshot, t int) (Frame, error) {
	years := s.Years()
	if !years.Contains(t) {
		return Frame{}, eris.Wrapf(ErrUnknownYear, "timeline: year %d", t)
	}

	fr := Frame{
		Year:         t,
		Label:        strconv.Itoa(t),
		Symbols:      make([]Symbol, 0, s.Features.Len()),
		GrowthLegend: legend.Growth(s.Breaks, s.Palette),
	}
	for _, f := range s.Features.Features {
		sym := symbolFor(s, f, t)
		if sym.Visible {
			fr.Visible++
		}
		fr.Symbols = append(fr.Symbols, sym)
	}
	return fr, nil
}

func symbolFor(s *Snapshot, f *model.Feature, t int) Symbol {
	sym := Symbol{
		ID:      f.ID,
		Name:    f.Name,
		Country: f.Country,
		Lon:     f.Lon(),
		Lat:     f.Lat(),
	}
	v, ok := f.Value(t)
	if !ok {
		return sym
	}

	years := s.Years()
	sym.Visible = true
	sym.Magnitude = v
	sym.Radius = s.Scaler.Radius(v)
	sym.Stroke = s.Style.Stroke
	sym.Weight = s.Style.Weight
	sym.FillOpacity = s.Style.FillOpacity

	bucket := growth.Decline
	if g, ok := growth.Value(f, t, years); ok {
		sym.Growth = &g
		bucket = s.Breaks.Classify(g)
	}
	sym.Bucket = bucket.String()
	sym.Color = s.Palette.Color(bucket)

	since := "n/a"
	if g, ok := growth.SinceFirst(f, t, years); ok && t != years.First() {
		since = fmt.Sprintf("%.1f%%", g*100)
	}
	sym.Popup = &Popup{
		Title:            f.Name,
		Magnitude:        fmt.Sprintf("%.1f Million", v/s.UnitDivisor),
		MagnitudeCaption: fmt.Sprintf("Population in %d", t),
		Growth:           since,
		GrowthCaption:    fmt.Sprintf("Growth %d - %d", years.First(), t),
		OffsetY:          -sym.Radius,
	}
	return sym
}

// highlight returns fr with the symbol id drawn at the hover opacity.
func highlight(fr Frame, id string, opacity float64) Frame {
	if id == "" {
		return fr
	}
	for i := range fr.Symbols {
		if fr.Symbols[i].ID == id && fr.Symbols[i].Visible {
			fr.Symbols[i].FillOpacity = opacity
		}
	}
	return fr
}
