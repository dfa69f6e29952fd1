package entity

import (
	"time"
)

// User owns the identity record. Password holds a bcrypt hash and is never
// serialized. PlaceIDs is the back-reference set to the places this user
// created; it is kept consistent with places.creator_id by the place
// repository's transactional writes, not by a schema constraint.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	ImageURL  string    `json:"image"`
	PlaceIDs  []string  `json:"places"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
