// Package timeline maps dates onto the page's progress line and breaks the
// remaining time down for the countdown sentence.
package timeline

import (
	"time"

	"github.com/cuenta-regresiva/backend/internal/models"
)

// Range is the span the progress line covers.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange builds the range covered by a page profile.
func NewRange(p *models.PageProfile) Range {
	return Range{Start: p.Start.Date, End: p.Event.Date}
}

// Degenerate reports whether the range has no positive length.
func (r Range) Degenerate() bool {
	return !r.End.After(r.Start)
}

// Progress returns where t falls within [start, end] as a fraction in [0, 1].
// A zero-length (or inverted) range yields 0.
func Progress(t, start, end time.Time) float64 {
	span := end.Sub(start)
	if span <= 0 {
		return 0
	}
	f := float64(t.Sub(start)) / float64(span)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Progress is Progress(t, r.Start, r.End).
func (r Range) Progress(t time.Time) float64 {
	return Progress(t, r.Start, r.End)
}

// Markers returns each milestone's position on the range, in input order.
// Milestones are expected in chronological order; positions are then non-decreasing.
func (r Range) Markers(milestones []models.Milestone) []models.MarkerPosition {
	out := make([]models.MarkerPosition, len(milestones))
	for i, m := range milestones {
		out[i] = models.MarkerPosition{
			Label:    m.Label,
			Fraction: r.Progress(m.Date),
		}
	}
	return out
}

// State derives the timeline for one refresh.
func (r Range) State(now time.Time, milestones []models.Milestone) models.TimelineState {
	return models.TimelineState{
		Now:     r.Progress(now),
		Markers: r.Markers(milestones),
	}
}
