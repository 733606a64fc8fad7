package models

// Breakdown is a remaining duration split into days, hours, minutes and seconds.
type Breakdown struct {
	Days    int64 `json:"days" msgpack:"days"`
	Hours   int   `json:"hours" msgpack:"hours"`
	Minutes int   `json:"minutes" msgpack:"minutes"`
	Seconds int   `json:"seconds" msgpack:"seconds"`
}

// MarkerPosition is a milestone's fixed place on the timeline.
type MarkerPosition struct {
	Label    string  `json:"label" msgpack:"label"`
	Fraction float64 `json:"fraction" msgpack:"fraction"`
}

// TimelineState is derived on every refresh. All fractions lie in [0, 1].
type TimelineState struct {
	Now     float64          `json:"now" msgpack:"now"`
	Markers []MarkerPosition `json:"markers" msgpack:"markers"`
}

// Snapshot is what the page redraws once per tick.
type Snapshot struct {
	ProfileID   string          `json:"profileId" msgpack:"profileId"`
	Text        string          `json:"text" msgpack:"text"`
	Completed   bool            `json:"completed" msgpack:"completed"`
	Remaining   Breakdown       `json:"remaining" msgpack:"remaining"`
	Timeline    TimelineState   `json:"timeline" msgpack:"timeline"`
	Marker      MarkerPlacement `json:"marker" msgpack:"marker"`
	GeneratedAt int64           `json:"generatedAt" msgpack:"generatedAt"` // Unix ms
}

// MarkerPlacement is where the airplane image sits on the timeline, in axis fractions.
type MarkerPlacement struct {
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	ImageURL string  `json:"imageUrl,omitempty" msgpack:"imageUrl,omitempty"`
}
