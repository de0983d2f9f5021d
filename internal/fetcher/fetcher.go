// Package fetcher loads the urban agglomeration collection from a URL or a
// local file. Each feature carries a point location and one magnitude per
// census year, stored under attribute keys of the form <prefix><year>.
package fetcher

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/urbangrowth/internal/model"
)

// ErrUnsupportedFormat is returned for sources whose format cannot be told
// from the path or the URL.
var ErrUnsupportedFormat = eris.New("fetcher: unsupported source format")

// Format is a source encoding.
type Format string

// Supported formats.
const (
	FormatGeoJSON   Format = "geojson"
	FormatShapefile Format = "shp"
	FormatXLSX      Format = "xlsx"
	FormatCSV       Format = "csv"
	FormatZIP       Format = "zip"
)

// Options controls how source attributes map onto features.
type Options struct {
	// AttributePrefix precedes the year in magnitude keys, "_" for "_1950".
	AttributePrefix string
	IDKey           string
	NameKey         string
	CountryKey      string
	HTTP            HTTPOptions
}

// DefaultOptions matches the Carto urban agglomeration table.
func DefaultOptions() Options {
	return Options{
		AttributePrefix: "_",
		IDKey:           "cartodb_id",
		NameKey:         "urbanagg",
		CountryKey:      "country",
	}
}

// IsURL reports whether source is an http(s) URL.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// DetectFormat infers the format from the file extension, or for URLs
// without one from a format query parameter as the Carto SQL API uses.
func DetectFormat(source string) (Format, error) {
	p := source
	var query url.Values
	if IsURL(source) {
		u, _ := url.Parse(source)
		p = u.Path
		query = u.Query()
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".geojson", ".json":
		return FormatGeoJSON, nil
	case ".shp":
		return FormatShapefile, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".zip":
		return FormatZIP, nil
	}
	if f := strings.ToLower(query.Get("format")); f != "" {
		switch f {
		case "geojson":
			return FormatGeoJSON, nil
		case "csv":
			return FormatCSV, nil
		case "shp":
			return FormatZIP, nil
		}
	}
	return "", eris.Wrapf(ErrUnsupportedFormat, "fetcher: %s", source)
}

// Load reads the collection from source. URLs are downloaded once into a
// temporary directory; any failure is returned and nothing is retried.
func Load(ctx context.Context, source string, opts Options) (*model.Collection, error) {
	log := zap.L().With(zap.String("component", "fetcher"), zap.String("source", source))

	format, err := DetectFormat(source)
	if err != nil {
		return nil, err
	}

	local := source
	if IsURL(source) {
		dir, err := os.MkdirTemp("", "urbangrowth-*")
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: create temp dir")
		}
		defer os.RemoveAll(dir) //nolint:errcheck

		local = filepath.Join(dir, "source."+string(format))
		n, err := NewHTTPFetcher(opts.HTTP).DownloadToFile(ctx, source, local)
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: download")
		}
		log.Debug("downloaded source", zap.Int64("bytes", n))
	}

	coll, err := loadFile(local, format, opts)
	if err != nil {
		return nil, err
	}
	log.Info("loaded features", zap.String("format", string(format)), zap.Int("features", coll.Len()))
	return coll, nil
}

func loadFile(p string, format Format, opts Options) (*model.Collection, error) {
	switch format {
	case FormatGeoJSON:
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: read geojson")
		}
		return ParseGeoJSON(data, opts)
	case FormatShapefile:
		return ReadShapefile(p, opts)
	case FormatXLSX:
		rows, err := ReadXLSX(p, XLSXOptions{})
		if err != nil {
			return nil, err
		}
		return ParseTable(rows, opts)
	case FormatCSV:
		f, err := os.Open(p)
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: open csv")
		}
		defer f.Close() //nolint:errcheck
		rows, err := ReadCSV(f)
		if err != nil {
			return nil, err
		}
		return ParseTable(rows, opts)
	case FormatZIP:
		return loadZIP(p, opts)
	}
	return nil, eris.Wrapf(ErrUnsupportedFormat, "fetcher: %s", format)
}

// loadZIP extracts the archive and loads the first shapefile, GeoJSON,
// workbook or CSV it contains, in that order of preference.
func loadZIP(p string, opts Options) (*model.Collection, error) {
	dir, err := os.MkdirTemp("", "urbangrowth-zip-*")
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: create extract dir")
	}
	defer os.RemoveAll(dir) //nolint:errcheck

	files, err := ExtractZIP(p, dir)
	if err != nil {
		return nil, err
	}
	for _, want := range []Format{FormatShapefile, FormatGeoJSON, FormatXLSX, FormatCSV} {
		for _, f := range files {
			if got, err := DetectFormat(f); err == nil && got == want {
				return loadFile(f, got, opts)
			}
		}
	}
	return nil, eris.Wrapf(ErrUnsupportedFormat, "fetcher: no loadable file in %s", filepath.Base(p))
}
