// Package models contains domain types for the countdown page.
package models

import "time"

// Milestone is a dated event marked on the timeline.
type Milestone struct {
	Label string    `json:"label" yaml:"label" msgpack:"label"`
	Date  time.Time `json:"date" yaml:"date" msgpack:"date"`
}

// Features toggles the sections a page profile renders.
type Features struct {
	Milestones  bool `json:"milestones" yaml:"milestones"`
	CityGallery bool `json:"cityGallery" yaml:"city_gallery"`
	Map         bool `json:"map" yaml:"map"`
}

// PageProfile is one version of the page: its dates, labels and enabled sections.
// Profiles are immutable once loaded.
type PageProfile struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Heading     string      `json:"heading" yaml:"heading"`
	Subheading  string      `json:"subheading" yaml:"subheading"`
	Start       Milestone   `json:"start" yaml:"start"`
	Event       Milestone   `json:"event" yaml:"event"`
	Milestones  []Milestone `json:"milestones,omitempty" yaml:"milestones"`
	DefaultCity string      `json:"defaultCity,omitempty" yaml:"default_city"`
	Features    Features    `json:"features" yaml:"features"`
}

// AllMilestones returns start, the intermediate milestones and the event in date order.
func (p *PageProfile) AllMilestones() []Milestone {
	out := make([]Milestone, 0, len(p.Milestones)+2)
	out = append(out, p.Start)
	out = append(out, p.Milestones...)
	out = append(out, p.Event)
	return out
}
