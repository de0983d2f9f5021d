package export

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/rotisserie/eris"

	"github.com/sells-group/urbangrowth/internal/timeline"
)

// FrameGeoJSON converts the visible symbols of a frame to point features.
// Hidden symbols are left out, as they are on the map.
func FrameGeoJSON(fr timeline.Frame) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, s := range fr.Symbols {
		if !s.Visible {
			continue
		}
		f := geojson.NewPointFeature([]float64{s.Lon, s.Lat})
		f.ID = s.ID
		f.SetProperty("name", s.Name)
		f.SetProperty("country", s.Country)
		f.SetProperty("year", fr.Year)
		f.SetProperty("magnitude", s.Magnitude)
		f.SetProperty("radius", s.Radius)
		f.SetProperty("bucket", s.Bucket)
		f.SetProperty("color", s.Color)
		f.SetProperty("stroke", s.Stroke)
		f.SetProperty("weight", s.Weight)
		f.SetProperty("fill_opacity", s.FillOpacity)
		if s.Growth != nil {
			f.SetProperty("growth", *s.Growth)
		}
		if s.Popup != nil {
			f.SetProperty("popup", s.Popup)
		}
		fc.AddFeature(f)
	}
	return fc
}

// MarshalFrameGeoJSON encodes the frame's symbol layer.
func MarshalFrameGeoJSON(fr timeline.Frame) ([]byte, error) {
	data, err := FrameGeoJSON(fr).MarshalJSON()
	if err != nil {
		return nil, eris.Wrapf(err, "export: geojson for %d", fr.Year)
	}
	return data, nil
}
