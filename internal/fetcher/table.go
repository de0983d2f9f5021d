package fetcher

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/urbangrowth/internal/model"
)

var (
	lonHeaders = []string{"lon", "longitude", "lng", "x"}
	latHeaders = []string{"lat", "latitude", "y"}
)

// ParseTable reads a wide table: the first row is the header, with
// longitude and latitude columns and one column per year. Rows with an
// unparseable location are skipped.
func ParseTable(rows [][]string, opts Options) (*model.Collection, error) {
	if len(rows) < 2 {
		return nil, eris.New("fetcher: table has no data rows")
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = opts.key(strings.TrimSpace(h))
	}
	lonIdx := columnIndex(header, lonHeaders)
	latIdx := columnIndex(header, latHeaders)
	if lonIdx < 0 || latIdx < 0 {
		return nil, eris.New("fetcher: table needs longitude and latitude columns")
	}

	records := make([]record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(cell(row, lonIdx)), 64)
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(cell(row, latIdx)), 64)
		if errLon != nil || errLat != nil {
			continue
		}
		attrs := make(map[string]string, len(header))
		for i, h := range header {
			attrs[h] = cell(row, i)
		}
		records = append(records, record{lon: lon, lat: lat, attrs: attrs})
	}
	return collect(records, opts)
}

func columnIndex(header, names []string) int {
	for _, n := range names {
		for i, h := range header {
			if h == n {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
