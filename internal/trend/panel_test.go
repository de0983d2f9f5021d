package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/urbangrowth/internal/model"
	"github.com/sells-group/urbangrowth/internal/series"
)

var years = series.Range(1950, 2025, 5)

// delhi is a steadily growing series with UN-style projections to 2025.
func delhi() *model.Feature {
	values := map[int]float64{}
	v := 1369.0
	for _, y := range years {
		values[y] = v
		v *= 1.17
	}
	return model.NewFeature("delhi", "Delhi", "India", 77.2, 28.6, values)
}

func TestBuild(t *testing.T) {
	f := delhi()
	p, err := Build(f, years, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "delhi", p.FeatureID)
	assert.Equal(t, "Delhi, India", p.Title)
	assert.Equal(t, 320.0, p.InnerWidth)
	assert.Equal(t, 170.0, p.InnerHeight)
	assert.Equal(t, 230.0, p.Height)
	require.Len(t, p.Samples, len(years))
	require.Len(t, p.XTicks, len(years))
	assert.Equal(t, "1950", p.XTicks[0].Label)

	// The y axis scales to this feature alone.
	first, _ := f.Value(1950)
	last, _ := f.Value(2025)
	assert.Equal(t, [2]float64{first, last}, p.Y.Domain)
	assert.InDelta(t, 170, p.Points[0].Y, 1e-9)
	assert.InDelta(t, 0, p.Points[len(p.Points)-1].Y, 1e-9)

	assert.Greater(t, p.TotalLength, 320.0)
	assert.InDelta(t, p.TotalLength, sum(p.DashArray), 1e-6)
	assert.LessOrEqual(t, p.DashBounds[0], p.DashBounds[1])

	// The 2015 boundary lands within one unit of path length of x(2015).
	path := NewPath(p.Points)
	at := path.PointAtLength(p.DashBounds[0])
	assert.InDelta(t, p.X.Apply(2015), at.X, 1)

	// 2050 is past the end of the series, so the projection runs to the end.
	assert.InDelta(t, p.TotalLength, p.DashBounds[1], 1)
	assert.False(t, p.DashExact[1])
}

func TestBuild_SkipsNoDataYears(t *testing.T) {
	f := model.NewFeature("x", "X", "", 0, 0, map[int]float64{1950: 100, 1955: 0, 1960: 300, 2025: 200})
	p, err := Build(f, years, DefaultConfig())
	require.NoError(t, err)

	require.Len(t, p.Samples, 3)
	assert.Equal(t, 1960, p.Samples[1].Year)
	assert.Equal(t, [2]float64{100, 300}, p.Y.Domain)
	assert.Equal(t, [2]float64{1950, 2025}, p.X.Domain, "x domain is the whole series")
}

func TestBuild_SingleSample(t *testing.T) {
	f := model.NewFeature("x", "X", "", 0, 0, map[int]float64{1990: 100})
	p, err := Build(f, years, DefaultConfig())
	require.NoError(t, err)
	assert.Zero(t, p.TotalLength)
	assert.Nil(t, p.DashArray)
	assert.InDelta(t, 85, p.Points[0].Y, 1e-9)
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(nil, years, DefaultConfig())
	assert.Error(t, err)

	_, err = Build(delhi(), nil, DefaultConfig())
	assert.Error(t, err)

	empty := model.NewFeature("e", "E", "", 0, 0, nil)
	_, err = Build(empty, years, DefaultConfig())
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Width = 50
	_, err = Build(delhi(), years, cfg)
	assert.Error(t, err)
}

func TestBuild_Idempotent(t *testing.T) {
	a, err := Build(delhi(), years, DefaultConfig())
	require.NoError(t, err)
	b, err := Build(delhi(), years, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
