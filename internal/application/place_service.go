package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/placeshare/backend/internal/domain/entity"
	"github.com/placeshare/backend/internal/domain/repository"
	"github.com/placeshare/backend/internal/infrastructure/geocode"
)

var (
	ErrPlaceNotFound = errors.New("place not found")
	// ErrNotOwner means the caller is authenticated but does not own the
	// place. The ownership check always precedes any mutation.
	ErrNotOwner = errors.New("caller is not the creator of this place")
)

// FileRemover deletes a stored upload. Failures are logged, never surfaced.
type FileRemover interface {
	Remove(path string) error
}

// PlaceService orchestrates place create/update/delete against the place and
// user stores. The two multi-row writes (create, delete) rely entirely on the
// repository's transaction boundary for consistency.
type PlaceService struct {
	Places        repository.PlaceRepository
	Users         repository.UserRepository
	Geo           geocode.Geocoder
	Files         FileRemover
	Logger        *logrus.Logger
	ES            *elasticsearch.Client
	ESPlacesIndex string
}

func NewPlaceService(places repository.PlaceRepository, users repository.UserRepository, geo geocode.Geocoder, files FileRemover, logger *logrus.Logger, es *elasticsearch.Client, esPlacesIndex string) *PlaceService {
	return &PlaceService{
		Places:        places,
		Users:         users,
		Geo:           geo,
		Files:         files,
		Logger:        logger,
		ES:            es,
		ESPlacesIndex: esPlacesIndex,
	}
}

type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
	ImageURL    string
	CreatorID   string
}

// Create geocodes the address, verifies the creator exists, then inserts the
// place and the owner's back-reference in one transaction.
func (s *PlaceService) Create(ctx context.Context, in CreatePlaceInput) (*entity.Place, error) {
	coords, err := s.Geo.Geocode(ctx, in.Address)
	if err != nil {
		return nil, err
	}

	if _, err := s.Users.GetByID(ctx, in.CreatorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	p := &entity.Place{
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Location:    coords,
		ImageURL:    in.ImageURL,
		CreatorID:   in.CreatorID,
	}
	if err := s.Places.Create(ctx, p); err != nil {
		return nil, err
	}

	s.indexPlace(ctx, p)
	return p, nil
}

type UpdatePlaceInput struct {
	Title       string
	Description string
}

// Update applies title/description after the ownership check. Single-row
// write; no transaction needed since no cross-entity invariant changes.
func (s *PlaceService) Update(ctx context.Context, placeID, callerID string, in UpdatePlaceInput) (*entity.Place, error) {
	p, err := s.Places.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	if p.CreatorID != callerID {
		return nil, ErrNotOwner
	}

	p.Title = in.Title
	p.Description = in.Description
	if err := s.Places.Update(ctx, p); err != nil {
		return nil, err
	}

	s.indexPlace(ctx, p)
	return p, nil
}

// Delete removes the place and its back-reference transactionally, then makes
// a best-effort attempt to unlink the stored image. A failed unlink is logged
// and never rolls back the commit or fails the request.
func (s *PlaceService) Delete(ctx context.Context, placeID, callerID string) error {
	p, err := s.Places.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlaceNotFound
		}
		return err
	}
	if p.CreatorID != callerID {
		return ErrNotOwner
	}

	if err := s.Places.Delete(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlaceNotFound
		}
		return err
	}

	if s.Files != nil {
		if err := s.Files.Remove(p.ImageURL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("path", p.ImageURL).Warn("image cleanup failed")
		}
	}

	s.deindexPlace(ctx, p.ID)
	return nil
}

func (s *PlaceService) GetByID(ctx context.Context, placeID string) (*entity.Place, error) {
	p, err := s.Places.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListByUser returns the user's places. Zero places and an unknown user are
// indistinguishable: both report ErrPlaceNotFound.
func (s *PlaceService) ListByUser(ctx context.Context, userID string) ([]entity.Place, error) {
	places, err := s.Places.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, ErrPlaceNotFound
	}
	return places, nil
}

// indexPlace mirrors the place into Elasticsearch for search. Best effort.
func (s *PlaceService) indexPlace(ctx context.Context, p *entity.Place) {
	if s.ES == nil || s.ESPlacesIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"address":     p.Address,
		"creator":     p.CreatorID,
		"created_at":  p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESPlacesIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("place_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("place_id", p.ID).Warn("es index response error")
	}
}

func (s *PlaceService) deindexPlace(ctx context.Context, id string) {
	if s.ES == nil || s.ESPlacesIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESPlacesIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("place_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match over title, description, and address.
func (s *PlaceService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESPlacesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "address"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESPlacesIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
