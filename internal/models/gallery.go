package models

// Slot names for the three gallery regions of the page.
const (
	SlotLeft   = "left"
	SlotRight  = "right"
	SlotCenter = "center"
)

// Photo is one gallery image.
type Photo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Slot string `json:"slot"`
}

// Gallery is the photo set for one folder. When Available is false, Message
// explains what is missing and Photos is empty.
type Gallery struct {
	Folder    string  `json:"folder"`
	Count     int     `json:"count"`
	Required  int     `json:"required"`
	Available bool    `json:"available"`
	Message   string  `json:"message,omitempty"`
	Photos    []Photo `json:"photos"`
}
