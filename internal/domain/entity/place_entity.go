package entity

import (
	"time"
)

// Coordinates is a geocoded latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a user-created record tied to a geocoded address. CreatorID is
// immutable after creation; only the creator may update or delete the place.
type Place struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Address     string      `json:"address"`
	Location    Coordinates `json:"location"`
	ImageURL    string      `json:"image"`
	CreatorID   string      `json:"creator"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
