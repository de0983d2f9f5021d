package fetcher

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadShapefile(t *testing.T) {
	path := createTestShapefile(t, []shpRow{
		{x: 139.69, y: 35.69, name: "Tokyo", country: "Japan", v1950: 11275, v2015: 38001},
		{x: 3.38, y: 6.52, name: "Lagos", country: "Nigeria", v1950: 325, v2015: 13123.5},
	})

	coll, err := ReadShapefile(path, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 2, coll.Len())

	tokyo, ok := coll.Get("1")
	require.True(t, ok, "records without an id column are numbered")
	assert.Equal(t, "Tokyo", tokyo.Name)
	assert.Equal(t, "Japan", tokyo.Country)
	assert.InDelta(t, 139.69, tokyo.Lon(), 1e-9)

	lagos, ok := coll.Get("2")
	require.True(t, ok)
	v, ok := lagos.Value(2015)
	require.True(t, ok)
	assert.Equal(t, 13123.5, v)
	v, ok = lagos.Value(1950)
	require.True(t, ok)
	assert.Equal(t, 325.0, v)
}

func TestReadShapefile_Missing(t *testing.T) {
	_, err := ReadShapefile(filepath.Join(t.TempDir(), "none.shp"), DefaultOptions())
	require.Error(t, err)
}

func TestLoad_Shapefile(t *testing.T) {
	path := createTestShapefile(t, []shpRow{
		{x: 1, y: 2, name: "A", country: "X", v1950: 1, v2015: 2},
	})
	coll, err := Load(context.Background(), path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, coll.Len())
}
