// Package geo reads the country-boundary dataset used for the map overlay.
package geo

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// NameProperty is the feature property matched against a country name.
const NameProperty = "name"

// CountryShape is one country's boundary.
type CountryShape struct {
	Name     string
	Geometry orb.Geometry
}

// Bound returns the bounding box of the shape.
func (s *CountryShape) Bound() orb.Bound {
	return s.Geometry.Bound()
}

// Center returns the centre of the bounding box as (lat, lon).
func (s *CountryShape) Center() (float64, float64) {
	c := s.Bound().Center()
	return c.Lat(), c.Lon()
}

// GeoJSON returns the geometry in its GeoJSON form.
func (s *CountryShape) GeoJSON() *geojson.Geometry {
	return geojson.NewGeometry(s.Geometry)
}

// Countries is a parsed country-shapes collection.
type Countries struct {
	features []*geojson.Feature
}

// ParseCountries decodes a GeoJSON FeatureCollection.
func ParseCountries(data []byte) (*Countries, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode country shapes: %w", err)
	}
	return &Countries{features: fc.Features}, nil
}

// LoadCountries reads and decodes the dataset at path.
func LoadCountries(path string) (*Countries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read country shapes: %w", err)
	}
	return ParseCountries(data)
}

// Len returns the number of features.
func (c *Countries) Len() int {
	return len(c.features)
}

// Lookup finds the first feature whose name property equals name exactly.
// A missing country is reported with ok == false, never as an error.
func (c *Countries) Lookup(name string) (*CountryShape, bool) {
	if name == "" {
		return nil, false
	}
	for _, f := range c.features {
		if f == nil || f.Geometry == nil {
			continue
		}
		if f.Properties.MustString(NameProperty, "") == name {
			return &CountryShape{Name: name, Geometry: f.Geometry}, true
		}
	}
	return nil, false
}

// LookupCountry reads the dataset at path and looks up name in one pass.
func LookupCountry(path, name string) (*CountryShape, bool, error) {
	countries, err := LoadCountries(path)
	if err != nil {
		return nil, false, err
	}
	shape, ok := countries.Lookup(name)
	return shape, ok, nil
}
