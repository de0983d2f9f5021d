package fetcher

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/urbangrowth/internal/model"
)

// record is one source row before conversion. Attribute keys are lower case.
type record struct {
	lon, lat float64
	attrs    map[string]string
}

func (o Options) key(k string) string { return strings.ToLower(k) }

// values collects every attribute named <prefix><year> that parses as a
// number. Blank or unparseable cells are no data.
func (o Options) values(attrs map[string]string) map[int]float64 {
	prefix := o.key(o.AttributePrefix)
	out := make(map[int]float64)
	for k, raw := range attrs {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		year, err := strconv.Atoi(k[len(prefix):])
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			continue
		}
		out[year] = v
	}
	return out
}

// collect converts records to features. Rows without an id fall back to
// their position; duplicate ids keep the first row.
func collect(records []record, opts Options) (*model.Collection, error) {
	if len(records) == 0 {
		return nil, eris.New("fetcher: source has no features")
	}

	seen := make(map[string]bool, len(records))
	features := make([]*model.Feature, 0, len(records))
	var dupes int
	for i, r := range records {
		id := strings.TrimSpace(r.attrs[opts.key(opts.IDKey)])
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		if seen[id] {
			dupes++
			continue
		}
		seen[id] = true
		features = append(features, model.NewFeature(
			id,
			strings.TrimSpace(r.attrs[opts.key(opts.NameKey)]),
			strings.TrimSpace(r.attrs[opts.key(opts.CountryKey)]),
			r.lon, r.lat,
			opts.values(r.attrs),
		))
	}
	if dupes > 0 {
		zap.L().Warn("fetcher: skipped duplicate feature ids", zap.Int("duplicates", dupes))
	}
	return model.NewCollection(features), nil
}
