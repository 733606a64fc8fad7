package models

// CityRecord describes a location's coordinates, country and photo folder.
// Name is the unique key in a city table.
type CityRecord struct {
	Name        string  `json:"name" yaml:"name"`
	Latitude    float64 `json:"latitude" yaml:"latitude"`
	Longitude   float64 `json:"longitude" yaml:"longitude"`
	Country     string  `json:"country" yaml:"country"`
	PhotoFolder string  `json:"photoFolder" yaml:"photo_folder"`
}

// MapFocus is the map centre and zoom for a selected city.
type MapFocus struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

// CityView bundles a resolved record with everything derived from it.
type CityView struct {
	City        CityRecord `json:"city"`
	Focus       MapFocus   `json:"focus"`
	PhotoFolder string     `json:"photoFolder"`
}
