package legend

import (
	"fmt"

	"github.com/sells-group/urbangrowth/internal/growth"
)

// GrowthTitle heads the growth legend.
const GrowthTitle = "Rate of Growth"

// GrowthRow is one bucket of the growth legend.
type GrowthRow struct {
	Bucket string `json:"bucket" yaml:"bucket"`
	Color  string `json:"color" yaml:"color"`
	Label  string `json:"label" yaml:"label"`
}

// GrowthLegend lists each bucket with its color and percentage range.
type GrowthLegend struct {
	Title         string      `json:"title" yaml:"title"`
	ReferenceYear int         `json:"reference_year" yaml:"reference_year"`
	Rows          []GrowthRow `json:"rows" yaml:"rows"`
}

// Growth builds the legend for a breaks snapshot. Degenerate breaks have a
// single row.
func Growth(b growth.Breaks, p growth.Palette) GrowthLegend {
	out := GrowthLegend{Title: GrowthTitle, ReferenceYear: b.ReferenceYear}
	buckets := b.Buckets()
	for _, bucket := range buckets {
		out.Rows = append(out.Rows, GrowthRow{
			Bucket: bucket.String(),
			Color:  p.Color(bucket),
			Label:  growthLabel(bucket, b),
		})
	}
	return out
}

func growthLabel(bucket growth.Bucket, b growth.Breaks) string {
	if b.Degenerate {
		return "All areas"
	}
	switch bucket {
	case growth.Decline:
		return fmt.Sprintf("< %s%%", pct(b.Values[0]))
	case growth.BelowMedian:
		return fmt.Sprintf("%s – %s%%", pct(b.Values[0]), pct(b.Values[1]))
	default:
		return fmt.Sprintf("> %s%%", pct(b.Values[1]))
	}
}

func pct(v float64) string { return fmt.Sprintf("%.1f", v*100) }
