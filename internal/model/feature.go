// Package model defines the in-memory urban area dataset shared by every
// rendering component.
package model

import (
	"github.com/twpayne/go-geom"
)

// SRID is the spatial reference of feature points (WGS84 lon/lat).
const SRID = 4326

// Feature is one urban area with its magnitude per census year.
// Features are immutable once loaded; components hold pointers, never copies.
type Feature struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Country string          `json:"country"`
	Point   *geom.Point     `json:"-"`
	Values  map[int]float64 `json:"values"`
}

// NewFeature builds a feature located at lon/lat.
func NewFeature(id, name, country string, lon, lat float64, values map[int]float64) *Feature {
	if values == nil {
		values = make(map[int]float64)
	}
	return &Feature{
		ID:      id,
		Name:    name,
		Country: country,
		Point:   geom.NewPointFlat(geom.XY, []float64{lon, lat}).SetSRID(SRID),
		Values:  values,
	}
}

// Value returns the magnitude for year. Missing, zero, negative and NaN
// values are "no data" and report false.
func (f *Feature) Value(year int) (float64, bool) {
	v, ok := f.Values[year]
	if !ok || !(v > 0) {
		return 0, false
	}
	return v, true
}

// Lon returns the feature longitude, or 0 without a point.
func (f *Feature) Lon() float64 {
	if f.Point == nil {
		return 0
	}
	return f.Point.X()
}

// Lat returns the feature latitude, or 0 without a point.
func (f *Feature) Lat() float64 {
	if f.Point == nil {
		return 0
	}
	return f.Point.Y()
}

// Label is the "Name, Country" header used by the trend panel.
func (f *Feature) Label() string {
	if f.Country == "" {
		return f.Name
	}
	return f.Name + ", " + f.Country
}

// Collection is an indexed, read-only set of features in load order.
type Collection struct {
	Features []*Feature
	byID     map[string]*Feature
}

// NewCollection indexes features by ID. Later duplicates shadow earlier ones
// in lookups but all features stay in the ordered slice.
func NewCollection(features []*Feature) *Collection {
	c := &Collection{
		Features: features,
		byID:     make(map[string]*Feature, len(features)),
	}
	for _, f := range features {
		c.byID[f.ID] = f
	}
	return c
}

// Len returns the number of features.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Features)
}

// Get looks up a feature by ID.
func (c *Collection) Get(id string) (*Feature, bool) {
	if c == nil {
		return nil, false
	}
	f, ok := c.byID[id]
	return f, ok
}
