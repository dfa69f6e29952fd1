package repository

import (
	"context"

	"github.com/placeshare/backend/internal/domain/entity"
)

// PlaceRepository defines the interface for place-related database operations.
//
// Create and Delete are the two multi-row writes in the system: they persist
// the place row and the owner's back-reference set in a single transaction, so
// neither side is ever observable without the other.
type PlaceRepository interface {
	// Create inserts the place and appends its id to the creator's place set.
	Create(ctx context.Context, p *entity.Place) error
	GetByID(ctx context.Context, id string) (*entity.Place, error)
	// ListByCreator returns the places owned by the given user, oldest first.
	ListByCreator(ctx context.Context, userID string) ([]entity.Place, error)
	// Update persists title/description changes. Single-row write; no
	// cross-entity invariant moves.
	Update(ctx context.Context, p *entity.Place) error
	// Delete removes the place and its id from the creator's place set.
	Delete(ctx context.Context, p *entity.Place) error
}
