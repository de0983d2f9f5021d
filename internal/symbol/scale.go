// Package symbol sizes proportional circle symbols so that rendered area,
// not radius, grows linearly with magnitude.
package symbol

import "math"

// Defaults match the map page: 0.018 area units per thousand people, with the
// radius doubled for on-screen pixels.
const (
	DefaultScaleFactor = 0.018
	DefaultMultiplier  = 2
)

// AreaPreservingRadius treats magnitude*scaleFactor as a circle area and
// returns its radius. Non-positive or NaN products yield 0.
func AreaPreservingRadius(magnitude, scaleFactor float64) float64 {
	area := magnitude * scaleFactor
	if !(area > 0) {
		return 0
	}
	return math.Sqrt(area / math.Pi)
}

// Scaler converts magnitudes to rendered radii. The map layer and the size
// legend must share one Scaler so swatches match the symbols they explain.
type Scaler struct {
	ScaleFactor float64 `json:"scale_factor" yaml:"scale_factor"`
	Multiplier  float64 `json:"multiplier" yaml:"multiplier"`
}

// NewScaler returns a Scaler, substituting defaults for non-positive inputs.
func NewScaler(scaleFactor, multiplier float64) Scaler {
	if scaleFactor <= 0 {
		scaleFactor = DefaultScaleFactor
	}
	if multiplier <= 0 {
		multiplier = DefaultMultiplier
	}
	return Scaler{ScaleFactor: scaleFactor, Multiplier: multiplier}
}

// Radius returns the rendered radius for magnitude.
func (s Scaler) Radius(magnitude float64) float64 {
	return AreaPreservingRadius(magnitude, s.ScaleFactor) * s.Multiplier
}

// Area returns the rendered circle area for magnitude. It is linear in
// magnitude: ScaleFactor * Multiplier² * magnitude.
func (s Scaler) Area(magnitude float64) float64 {
	r := s.Radius(magnitude)
	return math.Pi * r * r
}
