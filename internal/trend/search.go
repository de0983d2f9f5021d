package trend

import "math"

// xTolerance is how close a probed X must be to count as an exact hit.
const xTolerance = 1e-9

// maxSearchSteps bounds the bisection; integer probes over any realistic
// path length converge long before this.
const maxSearchSteps = 64

// LengthAtX bisects over whole-unit path positions for the point whose X
// equals x. The path must be monotonic in X. It reports false when the
// interval collapses without an exact hit; the returned length is then the
// nearest position surveyed.
func LengthAtX(p *Path, x float64) (float64, bool) {
	lo, hi := 0.0, p.Length()
	for range maxSearchSteps {
		target := math.Floor((lo + hi) / 2)
		pos := p.PointAtLength(target)
		if math.Abs(pos.X-x) <= xTolerance {
			return target, true
		}
		if target == lo || target == hi {
			return nearest(p, x, lo, hi), false
		}
		if pos.X > x {
			hi = target
		} else {
			lo = target
		}
	}
	return nearest(p, x, lo, hi), false
}

// nearest returns whichever of the two bracketing lengths lands closer to x,
// preferring lo on a tie.
func nearest(p *Path, x, lo, hi float64) float64 {
	if math.Abs(p.PointAtLength(hi).X-x) < math.Abs(p.PointAtLength(lo).X-x) {
		return hi
	}
	return lo
}
