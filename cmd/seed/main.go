package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/placeshare/backend/config"
	"github.com/placeshare/backend/internal/domain/entity"
	pginfra "github.com/placeshare/backend/internal/infrastructure/postgres"
	"github.com/placeshare/backend/pkg/helpers"
)

// Dev-only seed: one demo user plus one demo place, written through the same
// repositories (and therefore the same transactional discipline) as the API.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	places := pginfra.NewPlaceRepository(pool)

	email := "demo@places.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		u = &entity.User{
			Name:     "Demo User",
			Email:    email,
			Password: hash,
			ImageURL: "uploads/images/demo.png",
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, u.Email, password)

	p := &entity.Place{
		Title:       "Empire State Building",
		Description: "One of the most famous sky scrapers in the world",
		Address:     "20 W 34th St, New York, NY 10001",
		Location:    entity.Coordinates{Lat: 40.7484405, Lng: -73.9878584},
		ImageURL:    "uploads/images/demo.png",
		CreatorID:   u.ID,
	}
	if err := places.Create(ctx, p); err != nil {
		log.Fatalf("failed to seed place: %v", err)
	}
	fmt.Printf("seeded place: id=%s title=%q\n", p.ID, p.Title)
}
