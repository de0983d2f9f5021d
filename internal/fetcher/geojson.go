package fetcher

import (
	"encoding/json"
	"fmt"
	"strconv"

	geojson "github.com/paulmach/go.geojson"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/urbangrowth/internal/model"
)

// ParseGeoJSON reads a point FeatureCollection. Non-point features are
// skipped.
func ParseGeoJSON(data []byte, opts Options) (*model.Collection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: parse geojson")
	}

	records := make([]record, 0, len(fc.Features))
	var skipped int
	for _, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPoint() || len(f.Geometry.Point) < 2 {
			skipped++
			continue
		}
		attrs := make(map[string]string, len(f.Properties)+1)
		for k, v := range f.Properties {
			attrs[opts.key(k)] = propString(v)
		}
		if _, ok := attrs[opts.key(opts.IDKey)]; !ok && f.ID != nil {
			attrs[opts.key(opts.IDKey)] = propString(f.ID)
		}
		records = append(records, record{
			lon:   f.Geometry.Point[0],
			lat:   f.Geometry.Point[1],
			attrs: attrs,
		})
	}
	if skipped > 0 {
		zap.L().Debug("fetcher: skipped non-point features", zap.Int("skipped", skipped))
	}
	return collect(records, opts)
}

func propString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
