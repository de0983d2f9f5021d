// Package legend derives the data behind the size and growth legends.
package legend

import (
	"math"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/urbangrowth/internal/series"
	"github.com/sells-group/urbangrowth/internal/symbol"
)

// SizeTitle heads the proportional symbol legend.
const SizeTitle = "Population (in Millions)"

// swatchGap separates nested swatches, in pixels.
const swatchGap = 2

// SizeClass is one nested circle of the size legend.
type SizeClass struct {
	Value    float64 `json:"value" yaml:"value"`
	Label    string  `json:"label" yaml:"label"`
	Radius   float64 `json:"radius" yaml:"radius"`
	Diameter float64 `json:"diameter" yaml:"diameter"`
	// Margin is the left offset that nests this swatch against the previous one.
	Margin float64 `json:"margin" yaml:"margin"`
}

// SizeLegend is the proportional symbol legend.
type SizeLegend struct {
	Title   string      `json:"title" yaml:"title"`
	Classes []SizeClass `json:"classes" yaml:"classes"`
}

// Size picks three representative magnitudes from the global range and sizes
// them with the map's scaler. The minimum is clamped up to legendMin so tiny
// areas don't produce an invisible swatch.
func Size(info series.Info, scaler symbol.Scaler, legendMin float64) (SizeLegend, error) {
	if info.Empty() {
		return SizeLegend{}, eris.New("legend: no magnitudes to size")
	}

	lo, hi := info.Min, info.Max
	if lo < legendMin {
		lo = legendMin
	}
	values := []float64{roundTen(lo), roundTen((hi - lo) / 2), roundTen(hi)}

	out := SizeLegend{Title: SizeTitle, Classes: make([]SizeClass, 0, len(values))}
	var lastRadius float64
	for _, v := range values {
		r := scaler.Radius(v)
		out.Classes = append(out.Classes, SizeClass{
			Value:    v,
			Label:    strconv.FormatFloat(roundHalfUp(v/1000), 'f', 0, 64),
			Radius:   r,
			Diameter: 2 * r,
			Margin:   -r - lastRadius - swatchGap,
		})
		lastRadius = r
	}
	return out, nil
}

func roundTen(v float64) float64 { return roundHalfUp(v/10) * 10 }

func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }
