// Package series derives the census year series and the global magnitude
// range of a feature collection.
package series

import (
	"math"
	"slices"

	"github.com/sells-group/urbangrowth/internal/model"
)

// Years is an ascending, fixed-step sequence of census years.
type Years []int

// Range returns start, start+step, ... up to and including end.
// A non-positive step or end before start yields an empty series.
func Range(start, end, step int) Years {
	if step <= 0 || end < start {
		return nil
	}
	years := make(Years, 0, (end-start)/step+1)
	for y := start; y <= end; y += step {
		years = append(years, y)
	}
	return years
}

// Index returns the position of t in the series, or -1.
func (y Years) Index(t int) int {
	i, ok := slices.BinarySearch(y, t)
	if !ok {
		return -1
	}
	return i
}

// Contains reports whether t is a series year.
func (y Years) Contains(t int) bool { return y.Index(t) >= 0 }

// Prev returns the series year before t. The first year has none.
func (y Years) Prev(t int) (int, bool) {
	i := y.Index(t)
	if i <= 0 {
		return 0, false
	}
	return y[i-1], true
}

// First returns the earliest year, or 0 for an empty series.
func (y Years) First() int {
	if len(y) == 0 {
		return 0
	}
	return y[0]
}

// Last returns the latest year, or 0 for an empty series.
func (y Years) Last() int {
	if len(y) == 0 {
		return 0
	}
	return y[len(y)-1]
}

// Step returns the interval between consecutive years.
func (y Years) Step() int {
	if len(y) < 2 {
		return 0
	}
	return y[1] - y[0]
}

// From returns the years at or after t.
func (y Years) From(t int) Years {
	i, _ := slices.BinarySearch(y, t)
	return y[i:]
}

// Info is the output of attribute extraction.
type Info struct {
	Years Years
	Min   float64
	Max   float64
}

// Empty reports whether no magnitude was observed. Min and Max are the
// +Inf/-Inf sentinels in that case and must not reach the scalers.
func (i Info) Empty() bool {
	return math.IsInf(i.Min, 1) || math.IsInf(i.Max, -1)
}

// Extract scans every feature and every series year for the global
// minimum and maximum magnitude. No-data values are skipped.
func Extract(coll *model.Collection, years Years) Info {
	info := Info{
		Years: years,
		Min:   math.Inf(1),
		Max:   math.Inf(-1),
	}
	if coll == nil {
		return info
	}
	for _, f := range coll.Features {
		for _, y := range years {
			v, ok := f.Value(y)
			if !ok {
				continue
			}
			if v < info.Min {
				info.Min = v
			}
			if v > info.Max {
				info.Max = v
			}
		}
	}
	return info
}
