package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placeshare/backend/internal/domain/entity"
	"github.com/placeshare/backend/internal/domain/repository"
)

type PlaceRepository struct {
	pool *pgxpool.Pool
}

func NewPlaceRepository(pool *pgxpool.Pool) *PlaceRepository {
	return &PlaceRepository{pool: pool}
}

// Create inserts the place and appends its id to the creator's place_ids
// inside one transaction. If either write fails, nothing is applied.
func (r *PlaceRepository) Create(ctx context.Context, p *entity.Place) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO places (title, description, address, lat, lng, image_url, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Description, p.Address, p.Location.Lat, p.Location.Lng, p.ImageURL, p.CreatorID)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}

	res, err := tx.Exec(ctx, `
		UPDATE users
		SET place_ids = array_append(place_ids, $1), updated_at = now()
		WHERE id = $2
	`, p.ID, p.CreatorID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *PlaceRepository) GetByID(ctx context.Context, id string) (*entity.Place, error) {
	p := &entity.Place{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, address, lat, lng, image_url, creator_id, created_at, updated_at
		FROM places
		WHERE id = $1
	`, id)

	if err := scanPlace(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *PlaceRepository) ListByCreator(ctx context.Context, userID string) ([]entity.Place, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, address, lat, lng, image_url, creator_id, created_at, updated_at
		FROM places
		WHERE creator_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := []entity.Place{}
	for rows.Next() {
		var p entity.Place
		if err := scanPlace(rows, &p); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

func (r *PlaceRepository) Update(ctx context.Context, p *entity.Place) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE places
		SET title = $1, description = $2, updated_at = now()
		WHERE id = $3
	`, p.Title, p.Description, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the place row and its id from the creator's place_ids inside
// one transaction; after a successful commit no trace of the place remains in
// either store.
func (r *PlaceRepository) Delete(ctx context.Context, p *entity.Place) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `DELETE FROM places WHERE id = $1`, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
		UPDATE users
		SET place_ids = array_remove(place_ids, $1), updated_at = now()
		WHERE id = $2
	`, p.ID, p.CreatorID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanPlace(row pgx.Row, p *entity.Place) error {
	return row.Scan(&p.ID, &p.Title, &p.Description, &p.Address,
		&p.Location.Lat, &p.Location.Lng, &p.ImageURL, &p.CreatorID,
		&p.CreatedAt, &p.UpdatedAt)
}

var _ repository.PlaceRepository = (*PlaceRepository)(nil)
