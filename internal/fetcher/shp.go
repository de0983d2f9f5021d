package fetcher

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/urbangrowth/internal/model"
)

// ReadShapefile reads a point shapefile with its dBase attributes.
func ReadShapefile(path string, opts Options) (*model.Collection, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = opts.key(strings.TrimRight(f.String(), "\x00"))
	}

	var records []record
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()
		pt, ok := shape.(*shp.Point)
		if !ok {
			skipped++
			continue
		}
		attrs := make(map[string]string, len(names))
		for i, name := range names {
			attrs[name] = strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
		}
		records = append(records, record{lon: pt.X, lat: pt.Y, attrs: attrs})
	}
	if err := reader.Err(); err != nil {
		return nil, eris.Wrap(err, "fetcher: read shapefile")
	}
	if skipped > 0 {
		zap.L().Debug("fetcher: skipped non-point shapes", zap.Int("skipped", skipped))
	}
	return collect(records, opts)
}
