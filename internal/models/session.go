package models

import "time"

// SelectionSession holds one viewer's chosen city. Never persisted.
type SelectionSession struct {
	ID           string    `json:"id"`
	City         string    `json:"city"`
	CreatedAt    time.Time `json:"createdAt"`
	LastAccessed time.Time `json:"lastAccessed"`
}
