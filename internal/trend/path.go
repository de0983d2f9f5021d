package trend

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
)

// Point is a position in chart pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Path is a polyline through chart points, linear between samples. It
// answers the same queries a rendered SVG path does: total length and the
// point at a given distance along it.
type Path struct {
	line   *geom.LineString
	points []Point
	cum    []float64
}

// NewPath builds a path through pts in order.
func NewPath(pts []Point) *Path {
	flat := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		flat = append(flat, p.X, p.Y)
	}

	cum := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cum[i] = cum[i-1] + math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}

	return &Path{
		line:   geom.NewLineStringFlat(geom.XY, flat),
		points: pts,
		cum:    cum,
	}
}

// Length returns the total path length.
func (p *Path) Length() float64 {
	if len(p.points) < 2 {
		return 0
	}
	return p.line.Length()
}

// PointAtLength returns the point at distance l along the path, clamped to
// the path ends.
func (p *Path) PointAtLength(l float64) Point {
	switch n := len(p.points); {
	case n == 0:
		return Point{}
	case n == 1 || l <= 0:
		return p.points[0]
	case l >= p.cum[n-1]:
		return p.points[n-1]
	}

	// First vertex at or beyond l; the segment ends there.
	i := sort.SearchFloat64s(p.cum, l)
	a, b := p.points[i-1], p.points[i]
	seg := p.cum[i] - p.cum[i-1]
	if seg == 0 {
		return b
	}
	t := (l - p.cum[i-1]) / seg
	return Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
}

// D returns the SVG path data.
func (p *Path) D() string {
	var b strings.Builder
	for i, pt := range p.points {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		b.WriteString(formatNum(pt.X))
		b.WriteByte(',')
		b.WriteString(formatNum(pt.Y))
	}
	return b.String()
}

// formatNum writes v with at most three decimals.
func formatNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
