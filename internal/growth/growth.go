// Package growth classifies urban areas by their growth rate between
// consecutive census years.
package growth

import (
	"github.com/sells-group/urbangrowth/internal/model"
	"github.com/sells-group/urbangrowth/internal/series"
)

// Value returns the relative change of f between t and the prior series
// year: (v[t] - v[t-step]) / v[t-step]. It is undefined when t has no prior
// year or when either magnitude is no data.
func Value(f *model.Feature, t int, years series.Years) (float64, bool) {
	prev, ok := years.Prev(t)
	if !ok {
		return 0, false
	}
	return change(f, prev, t)
}

// SinceFirst returns the relative change of f between the first series year
// and t.
func SinceFirst(f *model.Feature, t int, years series.Years) (float64, bool) {
	if len(years) == 0 {
		return 0, false
	}
	return change(f, years.First(), t)
}

func change(f *model.Feature, from, to int) (float64, bool) {
	base, ok := f.Value(from)
	if !ok {
		return 0, false
	}
	cur, ok := f.Value(to)
	if !ok {
		return 0, false
	}
	return (cur - base) / base, true
}
