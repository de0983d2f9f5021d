package growth

import "math"

// Bucket is a discrete growth class.
type Bucket int

// Growth buckets, lowest first.
const (
	Decline     Bucket = iota // growth <= breaks[0]
	BelowMedian               // breaks[0] < growth <= breaks[1]
	AboveMedian               // growth > breaks[1]
)

// String returns the bucket key.
func (b Bucket) String() string {
	switch b {
	case Decline:
		return "decline"
	case BelowMedian:
		return "below_median"
	case AboveMedian:
		return "above_median"
	default:
		return "unknown"
	}
}

// Classify places g in exactly one bucket. breaks[2] only labels the legend
// and is never compared. NaN (undefined growth) lands in Decline.
func Classify(g float64, breaks [3]float64) Bucket {
	switch {
	case math.IsNaN(g) || g <= breaks[0]:
		return Decline
	case g <= breaks[1]:
		return BelowMedian
	default:
		return AboveMedian
	}
}

// Palette maps buckets to fill colors.
type Palette struct {
	Decline     string `json:"decline" yaml:"decline" mapstructure:"decline"`
	BelowMedian string `json:"below_median" yaml:"below_median" mapstructure:"below_median"`
	AboveMedian string `json:"above_median" yaml:"above_median" mapstructure:"above_median"`
}

// DefaultPalette is purple for decline, pale green below the median and
// saturated green above it.
func DefaultPalette() Palette {
	return Palette{
		Decline:     "rgba(123, 50, 148, 0.8)",
		BelowMedian: "rgba(229, 245, 224, 0.8)",
		AboveMedian: "rgba(49, 163, 84, 0.8)",
	}
}

// Color returns the fill color for b. Unknown buckets get the decline color.
func (p Palette) Color(b Bucket) string {
	switch b {
	case BelowMedian:
		return p.BelowMedian
	case AboveMedian:
		return p.AboveMedian
	default:
		return p.Decline
	}
}
