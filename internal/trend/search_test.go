package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func flatPath() *Path {
	return NewPath([]Point{{0, 0}, {10, 0}, {20, 0}})
}

func TestLengthAtX_ExactVertex(t *testing.T) {
	l, exact := LengthAtX(flatPath(), 10)
	assert.True(t, exact)
	assert.Equal(t, 10.0, l)
}

func TestLengthAtX_ExactInterior(t *testing.T) {
	l, exact := LengthAtX(flatPath(), 5)
	assert.True(t, exact)
	assert.Equal(t, 5.0, l)
}

func TestLengthAtX_NearestWhenBetweenProbes(t *testing.T) {
	l, exact := LengthAtX(flatPath(), 7.5)
	assert.False(t, exact)
	assert.Equal(t, 7.0, l)
}

func TestLengthAtX_NearestPicksCloserBound(t *testing.T) {
	l, exact := LengthAtX(flatPath(), 7.8)
	assert.False(t, exact)
	assert.Equal(t, 8.0, l)

	// steep first segment: length 9 lands at x~0.90, length 10 at x~0.99
	steep := NewPath([]Point{{0, 0}, {1, 10}, {2, 10}})
	l, exact = LengthAtX(steep, 0.97)
	assert.False(t, exact)
	assert.Equal(t, 10.0, l)
}

func TestLengthAtX_BeyondEnd(t *testing.T) {
	l, exact := LengthAtX(flatPath(), 100)
	assert.False(t, exact)
	assert.InDelta(t, 20, l, 1)
}

func TestLengthAtX_BeforeStart(t *testing.T) {
	l, exact := LengthAtX(flatPath(), -3)
	assert.False(t, exact)
	assert.Equal(t, 0.0, l)
}

func TestLengthAtX_Degenerate(t *testing.T) {
	l, exact := LengthAtX(NewPath([]Point{{4, 4}}), 4)
	assert.True(t, exact)
	assert.Zero(t, l)

	l, exact = LengthAtX(NewPath(nil), 9)
	assert.False(t, exact)
	assert.Zero(t, l)
}

func TestLengthAtX_SlopedPath(t *testing.T) {
	// Steep segments stretch path length relative to X.
	p := NewPath([]Point{{0, 100}, {10, 0}, {20, 50}, {30, 50}})
	for _, x := range []float64{2, 10, 17, 25} {
		l, _ := LengthAtX(p, x)
		got := p.PointAtLength(l)
		assert.InDelta(t, x, got.X, 1, "x=%v", x)
	}
}
