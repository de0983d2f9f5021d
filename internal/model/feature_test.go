package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeature_Value(t *testing.T) {
	t.Parallel()

	f := NewFeature("1", "Tokyo", "Japan", 139.69, 35.68, map[int]float64{
		1950: 11275,
		1955: 0,
		1960: -3,
		1965: math.NaN(),
	})

	tests := []struct {
		name string
		year int
		want float64
		ok   bool
	}{
		{name: "positive value", year: 1950, want: 11275, ok: true},
		{name: "zero is no data", year: 1955},
		{name: "negative is no data", year: 1960},
		{name: "NaN is no data", year: 1965},
		{name: "missing year", year: 2100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := f.Value(tt.year)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeature_PointAndLabel(t *testing.T) {
	t.Parallel()

	f := NewFeature("1", "Lagos", "Nigeria", 3.39, 6.45, nil)
	assert.InDelta(t, 3.39, f.Lon(), 1e-9)
	assert.InDelta(t, 6.45, f.Lat(), 1e-9)
	assert.Equal(t, SRID, f.Point.SRID())
	assert.Equal(t, "Lagos, Nigeria", f.Label())
	assert.NotNil(t, f.Values)

	bare := &Feature{Name: "Nowhere"}
	assert.Zero(t, bare.Lon())
	assert.Zero(t, bare.Lat())
	assert.Equal(t, "Nowhere", bare.Label())
}

func TestCollection_Get(t *testing.T) {
	t.Parallel()

	a := NewFeature("a", "A", "X", 0, 0, nil)
	b := NewFeature("b", "B", "Y", 1, 1, nil)
	c := NewCollection([]*Feature{a, b})

	require.Equal(t, 2, c.Len())
	got, ok := c.Get("b")
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = c.Get("zzz")
	assert.False(t, ok)

	var nilColl *Collection
	assert.Zero(t, nilColl.Len())
	_, ok = nilColl.Get("a")
	assert.False(t, ok)
}
