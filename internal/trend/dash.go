package trend

import "math"

// dashEpsilon drops remainders that are only floating point noise.
const dashEpsilon = 1e-9

// DashArray builds a stroke-dasharray that draws [0, start] solid,
// (start, end] as alternating dash/gap runs of length dash, and the rest
// solid. Entries sum to total, so the pattern ends exactly at the path end.
// The dashed run always closes on a gap (zero-length when needed) so the
// trailing solid segment is drawn.
func DashArray(total, start, end, dash float64) []float64 {
	if !(total > 0) {
		return nil
	}
	start = clamp(start, 0, total)
	end = clamp(end, start, total)
	if !(dash > 0) {
		return []float64{total, 0}
	}

	out := []float64{start}
	span := end - start
	n := int(math.Floor(span / dash))
	for range n {
		out = append(out, dash)
	}
	if rem := span - float64(n)*dash; rem > dashEpsilon {
		out = append(out, rem)
		n++
	}
	// Odd entries are gaps. An even run count means the last run is a
	// dash, so pad a gap before the trailing solid segment.
	if n%2 == 0 {
		out = append(out, 0)
	}
	out = append(out, total-end)
	if len(out)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
