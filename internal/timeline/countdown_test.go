package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cuenta-regresiva/backend/internal/models"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want models.Breakdown
	}{
		{"one of each", 90061 * time.Second, models.Breakdown{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}},
		{"zero", 0, models.Breakdown{}},
		{"negative", -5 * time.Second, models.Breakdown{}},
		{"sub-second dropped", 1500 * time.Millisecond, models.Breakdown{Seconds: 1}},
		{"just under a day", 86399 * time.Second, models.Breakdown{Hours: 23, Minutes: 59, Seconds: 59}},
		{"exactly a day", 24 * time.Hour, models.Breakdown{Days: 1}},
		{"many days", 125*24*time.Hour + 7*time.Hour + 3*time.Minute, models.Breakdown{Days: 125, Hours: 7, Minutes: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decompose(tt.d))
		})
	}
}

func TestRemaining(t *testing.T) {
	event := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	b, done := Remaining(event.Add(-90061*time.Second), event)
	assert.False(t, done)
	assert.Equal(t, models.Breakdown{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}, b)

	b, done = Remaining(event, event)
	assert.True(t, done)
	assert.Equal(t, models.Breakdown{}, b)

	b, done = Remaining(event.AddDate(0, 0, 3), event)
	assert.True(t, done, "past due stays completed")
	assert.Equal(t, models.Breakdown{}, b, "past due never goes negative")
}
