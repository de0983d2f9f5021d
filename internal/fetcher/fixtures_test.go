package fetcher

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [139.69, 35.69]},
     "properties": {"cartodb_id": 1, "urbanagg": "Tokyo", "country": "Japan", "_1950": 11275, "_2015": 38001, "_2025": 37049}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [77.21, 28.67]},
     "properties": {"cartodb_id": 2, "urbanagg": "Delhi", "country": "India", "_1950": 1369, "_2015": 25703, "_2025": null}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [3.38, 6.52]},
     "properties": {"cartodb_id": "3", "urbanagg": "Lagos", "country": "Nigeria", "_1950": 325, "_2015": "13123", "note": "x"}},
    {"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]},
     "properties": {"cartodb_id": 4, "urbanagg": "Road", "country": "None"}}
  ]
}`

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				row.AddCell().SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

type shpRow struct {
	x, y    float64
	name    string
	country string
	v1950   float64
	v2015   float64
}

func createTestShapefile(t *testing.T, rows []shpRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ua.shp")
	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)

	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("URBANAGG", 40),
		shp.StringField("COUNTRY", 40),
		shp.FloatField("_1950", 14, 2),
		shp.FloatField("_2015", 14, 2),
	}))
	for _, r := range rows {
		n := int(w.Write(&shp.Point{X: r.x, Y: r.y}))
		require.NoError(t, w.WriteAttribute(n, 0, r.name))
		require.NoError(t, w.WriteAttribute(n, 1, r.country))
		require.NoError(t, w.WriteAttribute(n, 2, r.v1950))
		require.NoError(t, w.WriteAttribute(n, 3, r.v2015))
	}
	w.Close()
	return path
}
