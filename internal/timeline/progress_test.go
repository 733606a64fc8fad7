package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cuenta-regresiva/backend/internal/models"
)

var (
	firstKiss = time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)
	visitDay  = time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
)

func TestProgress(t *testing.T) {
	mid := firstKiss.Add(visitDay.Sub(firstKiss) / 2)

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"before start", firstKiss.Add(-time.Hour), 0},
		{"long before start", firstKiss.AddDate(-3, 0, 0), 0},
		{"at start", firstKiss, 0},
		{"midpoint", mid, 0.5},
		{"at end", visitDay, 1},
		{"after end", visitDay.Add(time.Minute), 1},
		{"long after end", visitDay.AddDate(2, 0, 0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Progress(tt.now, firstKiss, visitDay), 1e-9)
		})
	}
}

func TestProgress_DegenerateRange(t *testing.T) {
	assert.Equal(t, 0.0, Progress(firstKiss, firstKiss, firstKiss))
	assert.Equal(t, 0.0, Progress(visitDay, firstKiss, firstKiss))
	assert.Equal(t, 0.0, Progress(firstKiss, visitDay, firstKiss), "inverted range")

	r := Range{Start: visitDay, End: visitDay}
	assert.True(t, r.Degenerate())
	assert.Equal(t, 0.0, r.Progress(visitDay.Add(time.Hour)))
}

func TestProgress_Monotonic(t *testing.T) {
	prev := -1.0
	for now := firstKiss.AddDate(0, 0, -10); now.Before(visitDay.AddDate(0, 0, 10)); now = now.Add(13 * time.Hour) {
		p := Progress(now, firstKiss, visitDay)
		assert.GreaterOrEqual(t, p, prev, "progress decreased at %s", now)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		prev = p
	}
}

func TestRange_Markers(t *testing.T) {
	r := Range{Start: firstKiss, End: visitDay}
	milestones := []models.Milestone{
		{Label: "4 Ene", Date: firstKiss},
		{Label: "San Valentín", Date: time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)},
		{Label: "10 May", Date: visitDay},
		{Label: "después", Date: visitDay.AddDate(0, 1, 0)},
	}

	first := r.Markers(milestones)
	again := r.Markers(milestones)
	assert.Equal(t, first, again, "marker positions must be stable across calls")

	assert.Len(t, first, 4)
	assert.Equal(t, "4 Ene", first[0].Label)
	assert.Equal(t, 0.0, first[0].Fraction)
	assert.Equal(t, 1.0, first[2].Fraction)
	assert.Equal(t, 1.0, first[3].Fraction, "clamped")
	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i].Fraction, first[i-1].Fraction)
	}
}

func TestRange_State(t *testing.T) {
	profile := &models.PageProfile{
		Start: models.Milestone{Label: "4 Ene", Date: firstKiss},
		Event: models.Milestone{Label: "10 May", Date: visitDay},
	}
	r := NewRange(profile)
	mid := firstKiss.Add(visitDay.Sub(firstKiss) / 2)

	state := r.State(mid, profile.AllMilestones())
	assert.InDelta(t, 0.5, state.Now, 1e-9)
	assert.Equal(t, []models.MarkerPosition{
		{Label: "4 Ene", Fraction: 0},
		{Label: "10 May", Fraction: 1},
	}, state.Markers)
}
