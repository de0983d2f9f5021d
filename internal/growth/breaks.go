package growth

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/urbangrowth/internal/model"
	"github.com/sells-group/urbangrowth/internal/series"
)

// ErrNoPriorYear is returned when breaks are requested for a year that has
// no prior year to grow from.
var ErrNoPriorYear = eris.New("growth: reference year has no prior year in series")

// breakQuantiles are the probabilities sampled from the positive growth set.
var breakQuantiles = [3]float64{0, 0.5, 1}

// Breaks is the immutable classification snapshot computed once at load.
type Breaks struct {
	Values        [3]float64 `json:"values" yaml:"values"`
	ReferenceYear int        `json:"reference_year" yaml:"reference_year"`
	// Samples is the number of positive growth values the quantiles came from.
	Samples int `json:"samples" yaml:"samples"`
	// Degenerate is set when no feature grew at the reference year. Every
	// value then falls in the lowest bucket.
	Degenerate bool `json:"degenerate" yaml:"degenerate"`
}

// ComputeBreaks derives [0, median, max] of the positive growth values at
// referenceYear. The lower bound is forced to exactly zero whatever the
// 0th quantile came out as.
func ComputeBreaks(coll *model.Collection, years series.Years, referenceYear int) (Breaks, error) {
	if _, ok := years.Prev(referenceYear); !ok {
		return Breaks{}, eris.Wrapf(ErrNoPriorYear, "growth: compute breaks for %d", referenceYear)
	}

	var values []float64
	if coll != nil {
		for _, f := range coll.Features {
			g, ok := Value(f, referenceYear, years)
			if !ok || !(g > 0) || math.IsInf(g, 0) {
				continue
			}
			values = append(values, g)
		}
	}

	b := Breaks{ReferenceYear: referenceYear, Samples: len(values)}
	if len(values) == 0 {
		b.Degenerate = true
		zap.L().Warn("growth: no positive growth at reference year, breaks degenerate",
			zap.Int("year", referenceYear),
		)
		return b, nil
	}

	sort.Float64s(values)
	for i, p := range breakQuantiles {
		b.Values[i] = quantileSorted(values, p)
	}
	b.Values[0] = 0

	zap.L().Debug("growth: computed breaks",
		zap.Int("year", referenceYear),
		zap.Int("samples", len(values)),
		zap.Float64s("breaks", b.Values[:]),
	)
	return b, nil
}

// Classify buckets g against the snapshot.
func (b Breaks) Classify(g float64) Bucket {
	if b.Degenerate {
		return Decline
	}
	return Classify(g, b.Values)
}

// Buckets returns the buckets the snapshot can produce, lowest first.
func (b Breaks) Buckets() []Bucket {
	if b.Degenerate {
		return []Bucket{Decline}
	}
	return []Bucket{Decline, BelowMedian, AboveMedian}
}

// quantileSorted estimates the p-quantile of an ascending sample. Integer
// ranks on even-length samples average the two neighbours, so the median of
// an even sample is the mean of its middle pair.
func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return math.NaN()
	case p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[n-1]
	}
	idx := float64(n) * p
	if idx != math.Floor(idx) {
		return sorted[int(math.Ceil(idx))-1]
	}
	i := int(idx)
	if n%2 == 0 {
		return (sorted[i-1] + sorted[i]) / 2
	}
	return sorted[i]
}
