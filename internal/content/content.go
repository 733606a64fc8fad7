// Package content loads the page profiles and the city table from YAML.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/cuenta-regresiva/backend/internal/cities"
	"github.com/cuenta-regresiva/backend/internal/models"
)

// ErrProfileNotFound is returned for an unknown profile id.
var ErrProfileNotFound = errors.New("profile not found")

//go:embed defaults/pages.yaml
var defaultPages []byte

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

type rawMilestone struct {
	Label string `yaml:"label"`
	Date  string `yaml:"date"`
}

type rawProfile struct {
	ID          string          `yaml:"id"`
	Title       string          `yaml:"title"`
	Heading     string          `yaml:"heading"`
	Subheading  string          `yaml:"subheading"`
	Start       rawMilestone    `yaml:"start"`
	Event       rawMilestone    `yaml:"event"`
	Milestones  []rawMilestone  `yaml:"milestones"`
	DefaultCity string          `yaml:"default_city"`
	Features    models.Features `yaml:"features"`
}

type rawDocument struct {
	Timezone string              `yaml:"timezone"`
	Cities   []models.CityRecord `yaml:"cities"`
	Profiles []rawProfile        `yaml:"profiles"`
}

// Document is the parsed page content. It is immutable after parsing.
type Document struct {
	location *time.Location
	cities   *cities.Table
	order    []string
	profiles map[string]*models.PageProfile
}

// LoadDefault parses the content compiled into the binary.
func LoadDefault() (*Document, error) {
	return Parse(defaultPages)
}

// ParseFile parses a pages file from disk.
func ParseFile(filePath string) (*Document, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseFromReader(file)
}

// ParseFromReader parses page content from r.
func ParseFromReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses and validates page content.
func Parse(data []byte) (*Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse pages: %w", err)
	}

	loc := time.Local
	if raw.Timezone != "" {
		l, err := time.LoadLocation(raw.Timezone)
		if err != nil {
			return nil, fmt.Errorf("timezone %q: %w", raw.Timezone, err)
		}
		loc = l
	}

	records := raw.Cities
	if len(records) == 0 {
		records = cities.DefaultRecords()
	}
	table, err := cities.NewTable(records)
	if err != nil {
		return nil, fmt.Errorf("cities: %w", err)
	}

	if len(raw.Profiles) == 0 {
		return nil, fmt.Errorf("at least one profile is required")
	}

	doc := &Document{
		location: loc,
		cities:   table,
		profiles: make(map[string]*models.PageProfile, len(raw.Profiles)),
	}
	for _, rp := range raw.Profiles {
		p, err := convertProfile(rp, loc, table)
		if err != nil {
			return nil, err
		}
		if _, dup := doc.profiles[p.ID]; dup {
			return nil, fmt.Errorf("profile %q: duplicate id", p.ID)
		}
		doc.order = append(doc.order, p.ID)
		doc.profiles[p.ID] = p
	}
	return doc, nil
}

func convertProfile(rp rawProfile, loc *time.Location, table *cities.Table) (*models.PageProfile, error) {
	id := strings.TrimSpace(rp.ID)
	if id == "" {
		return nil, fmt.Errorf("profile: id is required")
	}

	start, err := convertMilestone(rp.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("profile %q start: %w", id, err)
	}
	event, err := convertMilestone(rp.Event, loc)
	if err != nil {
		return nil, fmt.Errorf("profile %q event: %w", id, err)
	}

	p := &models.PageProfile{
		ID:          id,
		Title:       rp.Title,
		Heading:     rp.Heading,
		Subheading:  rp.Subheading,
		Start:       start,
		Event:       event,
		DefaultCity: rp.DefaultCity,
		Features:    rp.Features,
	}
	for i, rm := range rp.Milestones {
		m, err := convertMilestone(rm, loc)
		if err != nil {
			return nil, fmt.Errorf("profile %q milestone %d: %w", id, i, err)
		}
		p.Milestones = append(p.Milestones, m)
	}

	all := p.AllMilestones()
	for i := 1; i < len(all); i++ {
		if all[i].Date.Before(all[i-1].Date) {
			return nil, fmt.Errorf("profile %q: milestone %q is before %q", id, all[i].Label, all[i-1].Label)
		}
	}

	if p.DefaultCity != "" && !table.Has(p.DefaultCity) {
		return nil, fmt.Errorf("profile %q: default city %q: %w", id, p.DefaultCity, cities.ErrCityNotFound)
	}
	return p, nil
}

func convertMilestone(rm rawMilestone, loc *time.Location) (models.Milestone, error) {
	t, err := ParseDate(rm.Date, loc)
	if err != nil {
		return models.Milestone{}, err
	}
	return models.Milestone{Label: rm.Label, Date: t}, nil
}

// ParseDate accepts RFC 3339 or "2006-01-02[ 15:04[:05]]" in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// Location returns the time zone dates were parsed in.
func (d *Document) Location() *time.Location {
	return d.location
}

// Cities returns the city table.
func (d *Document) Cities() *cities.Table {
	return d.cities
}

// ProfileIDs returns profile ids in document order.
func (d *Document) ProfileIDs() []string {
	return append([]string(nil), d.order...)
}

// Profile returns the profile with the given id.
func (d *Document) Profile(id string) (*models.PageProfile, error) {
	p, ok := d.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return p, nil
}

// Latest returns the last profile in the document.
func (d *Document) Latest() *models.PageProfile {
	return d.profiles[d.order[len(d.order)-1]]
}
