// Package cities resolves the selectable cities of the page.
package cities

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cuenta-regresiva/backend/internal/models"
)

// DefaultZoom is the map zoom used when focusing a city.
const DefaultZoom = 10

// ErrCityNotFound is returned when a name is not a key of the table.
var ErrCityNotFound = errors.New("city not found")

// Table is an immutable set of city records keyed by name.
type Table struct {
	order   []string
	records map[string]models.CityRecord
}

// NewTable builds a table. Names must be non-empty and unique.
func NewTable(records []models.CityRecord) (*Table, error) {
	t := &Table{
		order:   make([]string, 0, len(records)),
		records: make(map[string]models.CityRecord, len(records)),
	}
	for i, r := range records {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("city %d: name is required", i)
		}
		if _, dup := t.records[name]; dup {
			return nil, fmt.Errorf("city %q: duplicate name", name)
		}
		if r.Latitude < -90 || r.Latitude > 90 || r.Longitude < -180 || r.Longitude > 180 {
			return nil, fmt.Errorf("city %q: coordinates out of range", name)
		}
		r.Name = name
		if r.PhotoFolder == "" {
			r.PhotoFolder = name
		}
		t.order = append(t.order, name)
		t.records[name] = r
	}
	return t, nil
}

// DefaultRecords returns the built-in three-city table.
func DefaultRecords() []models.CityRecord {
	return []models.CityRecord{
		{Name: "Monterrey", Latitude: 25.6866, Longitude: -100.3161, Country: "Mexico"},
		{Name: "Madrid", Latitude: 40.4168, Longitude: -3.7038, Country: "Spain"},
		{Name: "Bogotá", Latitude: 4.7110, Longitude: -74.0721, Country: "Colombia"},
	}
}

// Default returns a table of DefaultRecords.
func Default() *Table {
	t, err := NewTable(DefaultRecords())
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve looks up a city by exact name.
func (t *Table) Resolve(name string) (models.CityRecord, error) {
	r, ok := t.records[name]
	if !ok {
		return models.CityRecord{}, fmt.Errorf("%w: %s", ErrCityNotFound, name)
	}
	return r, nil
}

// Has reports whether name is a key of the table.
func (t *Table) Has(name string) bool {
	_, ok := t.records[name]
	return ok
}

// Names returns city names in table order.
func (t *Table) Names() []string {
	return append([]string(nil), t.order...)
}

// Records returns a copy of all records in table order.
func (t *Table) Records() []models.CityRecord {
	out := make([]models.CityRecord, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.records[name])
	}
	return out
}

// Len returns the number of cities.
func (t *Table) Len() int {
	return len(t.order)
}

// Focus returns the map centre of a record at the given zoom.
func Focus(r models.CityRecord, zoom int) models.MapFocus {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	return models.MapFocus{Latitude: r.Latitude, Longitude: r.Longitude, Zoom: zoom}
}

// PhotoFolder joins the image root with the record's folder name.
func PhotoFolder(imageRoot string, r models.CityRecord) string {
	folder := r.PhotoFolder
	if folder == "" {
		folder = r.Name
	}
	return filepath.Join(imageRoot, folder)
}

// View resolves name and derives its focus and photo folder.
func (t *Table) View(name, imageRoot string, zoom int) (models.CityView, error) {
	r, err := t.Resolve(name)
	if err != nil {
		return models.CityView{}, err
	}
	return models.CityView{
		City:        r,
		Focus:       Focus(r, zoom),
		PhotoFolder: PhotoFolder(imageRoot, r),
	}, nil
}
