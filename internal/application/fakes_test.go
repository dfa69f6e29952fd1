package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/placeshare/backend/internal/domain/entity"
	"github.com/placeshare/backend/internal/domain/repository"
)

// fakeStore emulates the database for service tests. Both repositories share
// it so the place/user cross-reference can be kept atomic, the way the real
// transactional writes behave: either both sides move or neither does.
type fakeStore struct {
	users  map[string]*entity.User
	places map[string]*entity.Place
	nextID int

	failPlaceWrite bool // simulate a transaction abort
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[string]*entity.User{},
		places: map[string]*entity.Place{},
	}
}

func (st *fakeStore) id() string {
	st.nextID++
	return fmt.Sprintf("id-%d", st.nextID)
}

func (st *fakeStore) addUser(name, email, password string) *entity.User {
	u := &entity.User{
		ID:       st.id(),
		Name:     name,
		Email:    email,
		Password: password,
		PlaceIDs: []string{},
	}
	st.users[u.ID] = u
	return u
}

type fakeUserRepo struct {
	st *fakeStore
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.st.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = r.st.id()
	u.PlaceIDs = []string{}
	cp := *u
	r.st.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.st.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]entity.User, error) {
	out := []entity.User{}
	for _, u := range r.st.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakePlaceRepo struct {
	st *fakeStore
}

func (r *fakePlaceRepo) Create(_ context.Context, p *entity.Place) error {
	if r.st.failPlaceWrite {
		return errors.New("transaction aborted")
	}
	owner, ok := r.st.users[p.CreatorID]
	if !ok {
		return repository.ErrNotFound
	}
	p.ID = r.st.id()
	cp := *p
	r.st.places[p.ID] = &cp
	owner.PlaceIDs = append(owner.PlaceIDs, p.ID)
	return nil
}

func (r *fakePlaceRepo) GetByID(_ context.Context, id string) (*entity.Place, error) {
	p, ok := r.st.places[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlaceRepo) ListByCreator(_ context.Context, userID string) ([]entity.Place, error) {
	out := []entity.Place{}
	for _, p := range r.st.places {
		if p.CreatorID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlaceRepo) Update(_ context.Context, p *entity.Place) error {
	stored, ok := r.st.places[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Title = p.Title
	stored.Description = p.Description
	return nil
}

func (r *fakePlaceRepo) Delete(_ context.Context, p *entity.Place) error {
	if r.st.failPlaceWrite {
		return errors.New("transaction aborted")
	}
	if _, ok := r.st.places[p.ID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.st.places, p.ID)
	if owner, ok := r.st.users[p.CreatorID]; ok {
		kept := owner.PlaceIDs[:0]
		for _, id := range owner.PlaceIDs {
			if id != p.ID {
				kept = append(kept, id)
			}
		}
		owner.PlaceIDs = kept
	}
	return nil
}

type fakeGeocoder struct {
	coords entity.Coordinates
	err    error
	calls  int
}

func (g *fakeGeocoder) Geocode(_ context.Context, _ string) (entity.Coordinates, error) {
	g.calls++
	if g.err != nil {
		return entity.Coordinates{}, g.err
	}
	return g.coords, nil
}

type fakeRemover struct {
	removed []string
	err     error
}

func (f *fakeRemover) Remove(path string) error {
	f.removed = append(f.removed, path)
	return f.err
}

// checkInvariant asserts the bidirectional user/place consistency contract:
// every user's place set matches exactly the places pointing back at it. The
// store never enforces this structurally, only the transactional writes do.
func checkInvariant(t *testing.T, st *fakeStore) {
	t.Helper()
	for uid, u := range st.users {
		owned := map[string]bool{}
		for _, p := range st.places {
			if p.CreatorID == uid {
				owned[p.ID] = true
			}
		}
		if len(owned) != len(u.PlaceIDs) {
			t.Fatalf("user %s: place set size %d, but %d places point back", uid, len(u.PlaceIDs), len(owned))
		}
		for _, id := range u.PlaceIDs {
			if !owned[id] {
				t.Fatalf("user %s references place %s which does not point back", uid, id)
			}
		}
	}
	for pid, p := range st.places {
		u, ok := st.users[p.CreatorID]
		if !ok {
			t.Fatalf("place %s references missing user %s", pid, p.CreatorID)
		}
		found := false
		for _, id := range u.PlaceIDs {
			if id == pid {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("place %s missing from owner %s place set", pid, p.CreatorID)
		}
	}
}
