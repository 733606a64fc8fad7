package models

import "github.com/paulmach/orb/geojson"

// MapView is the map section for one selected city. Overlay is nil when the
// country outline is missing or the dataset could not be read; Warning then
// says so.
type MapView struct {
	City       CityRecord        `json:"city"`
	Focus      MapFocus          `json:"focus"`
	Overlay    *geojson.Geometry `json:"overlay,omitempty"`
	Warning    string            `json:"warning,omitempty"`
	EventCity  string            `json:"eventCity,omitempty"`
	DistanceKm int               `json:"distanceKm"`
	Distance   string            `json:"distance,omitempty"`
}

// PageInfo is the static header of the active profile.
type PageInfo struct {
	Profile   *PageProfile `json:"profile"`
	Locale    string       `json:"locale"`
	Cities    []string     `json:"cities"`
	MarkerURL string       `json:"markerUrl"`
	Refresh   int          `json:"refreshSeconds"`
}
