// Package page assembles what the countdown page shows from the active
// profile, the city table, the photo store and the geography dataset.
package page

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"time"

	"github.com/cuenta-regresiva/backend/internal/cities"
	"github.com/cuenta-regresiva/backend/internal/clock"
	"github.com/cuenta-regresiva/backend/internal/gallery"
	"github.com/cuenta-regresiva/backend/internal/geo"
	"github.com/cuenta-regresiva/backend/internal/i18n"
	"github.com/cuenta-regresiva/backend/internal/models"
	"github.com/cuenta-regresiva/backend/internal/storage"
	"github.com/cuenta-regresiva/backend/internal/timeline"
)

// PhotoURLPrefix is where the photo handler serves the store.
const PhotoURLPrefix = "/api/photos/"

// Options holds the asset settings the service needs.
type Options struct {
	MarkerImage    string
	GeoJSONPath    string
	MinimumPhotos  int // gallery.DefaultRequired when zero
	MapZoom        int
	RefreshSeconds int
}

// Service renders page state for one profile. It is safe for concurrent use:
// everything it holds is immutable after construction.
type Service struct {
	profile   *models.PageProfile
	rng       timeline.Range
	table     *cities.Table
	store     storage.Store
	localizer *i18n.Localizer
	clock     clock.Clock
	opts      Options
}

// NewService creates a page service.
func NewService(profile *models.PageProfile, table *cities.Table, store storage.Store, localizer *i18n.Localizer, clk clock.Clock, opts Options) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if opts.MapZoom <= 0 {
		opts.MapZoom = cities.DefaultZoom
	}
	if opts.RefreshSeconds <= 0 {
		opts.RefreshSeconds = 1
	}
	return &Service{
		profile:   profile,
		rng:       timeline.NewRange(profile),
		table:     table,
		store:     store,
		localizer: localizer,
		clock:     clk,
		opts:      opts,
	}
}

// Profile returns the active profile.
func (s *Service) Profile() *models.PageProfile {
	return s.profile
}

// Cities returns the city table.
func (s *Service) Cities() *cities.Table {
	return s.table
}

// CityRecords returns the city table in declaration order.
func (s *Service) CityRecords() []models.CityRecord {
	return s.table.Records()
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// Info returns the page header.
func (s *Service) Info() models.PageInfo {
	return models.PageInfo{
		Profile:   s.profile,
		Locale:    s.localizer.Locale(),
		Cities:    s.table.Names(),
		MarkerURL: s.markerURL(),
		Refresh:   s.opts.RefreshSeconds,
	}
}

func (s *Service) markerURL() string {
	if s.opts.MarkerImage == "" {
		return ""
	}
	return PhotoURLPrefix + s.opts.MarkerImage
}

// milestones returns the dates marked on the timeline for this profile.
func (s *Service) milestones() []models.Milestone {
	if s.profile.Features.Milestones {
		return s.profile.AllMilestones()
	}
	return []models.Milestone{s.profile.Start, s.profile.Event}
}

// Snapshot computes the countdown and timeline at the clock's current time.
func (s *Service) Snapshot() models.Snapshot {
	return s.SnapshotAt(s.clock.Now())
}

// SnapshotAt computes the countdown and timeline at now.
func (s *Service) SnapshotAt(now time.Time) models.Snapshot {
	remaining, completed := timeline.Remaining(now, s.profile.Event.Date)
	state := s.rng.State(now, s.milestones())
	return models.Snapshot{
		ProfileID: s.profile.ID,
		Text:      s.localizer.Countdown(remaining, completed),
		Completed: completed,
		Remaining: remaining,
		Timeline:  state,
		Marker: models.MarkerPlacement{
			X:        state.Now,
			Y:        timeline.MarkerY,
			ImageURL: s.markerURL(),
		},
		GeneratedAt: now.UnixMilli(),
	}
}

// Chart renders the timeline at the clock's current time as a PNG.
func (s *Service) Chart(w io.Writer) error {
	state := s.rng.State(s.clock.Now(), s.milestones())
	return timeline.RenderChart(w, state, timeline.ChartOptions{})
}

// City resolves name and derives its focus and photo folder.
func (s *Service) City(name string) (models.CityView, error) {
	return s.table.View(name, s.store.Root(), s.opts.MapZoom)
}

// Map builds the map view for name. The country outline is read from the
// dataset on every call; a missing file, bad data or an absent country only
// drops the overlay and sets Warning.
func (s *Service) Map(name string) (models.MapView, error) {
	r, err := s.table.Resolve(name)
	if err != nil {
		return models.MapView{}, err
	}

	view := models.MapView{
		City:  r,
		Focus: cities.Focus(r, s.opts.MapZoom),
	}

	shape, ok, err := geo.LookupCountry(s.opts.GeoJSONPath, r.Country)
	switch {
	case err != nil:
		fmt.Printf("[Map] Country overlay for %s unavailable: %v\n", r.Country, err)
		view.Warning = s.localizer.OverlayUnavailable(r.Country)
	case !ok:
		fmt.Printf("[Map] No outline named %q in %s\n", r.Country, s.opts.GeoJSONPath)
		view.Warning = s.localizer.OverlayUnavailable(r.Country)
	default:
		view.Overlay = shape.GeoJSON()
	}

	if event := s.profile.DefaultCity; event != "" && event != r.Name {
		if target, err := s.table.Resolve(event); err == nil {
			km := int(math.Round(cities.Distance(r, target) / 1000))
			view.EventCity = target.Name
			view.DistanceKm = km
			view.Distance = s.localizer.Distance(r.Name, km, target.Name)
		}
	}
	return view, nil
}

// Gallery lays out the photos for city, or for the image root when city is
// empty. A short folder is reported inside the gallery, not as an error;
// only an unknown city fails.
func (s *Service) Gallery(city string) (models.Gallery, error) {
	folder := ""
	if city != "" {
		r, err := s.table.Resolve(city)
		if err != nil {
			return models.Gallery{}, err
		}
		folder = r.PhotoFolder
		if folder == "" {
			folder = r.Name
		}
	}

	required := s.opts.MinimumPhotos
	if required <= 0 {
		required = gallery.DefaultRequired
	}
	display := folder
	if display == "" {
		display = filepath.Base(s.store.Root())
	}

	return gallery.Build(s.store, folder, gallery.Options{
		Required:  required,
		URLPrefix: PhotoURLPrefix,
		Exclude:   []string{s.opts.MarkerImage},
		Message:   s.localizer.InsufficientPhotos(required, display),
	}), nil
}
