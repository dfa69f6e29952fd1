package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/placeshare/backend/internal/application"
	"github.com/placeshare/backend/internal/domain/entity"
	"github.com/placeshare/backend/internal/domain/repository"
	"github.com/placeshare/backend/internal/interface/middleware"
	"github.com/placeshare/backend/pkg/helpers"
	"github.com/placeshare/backend/pkg/upload"
)

// memStore is a tiny in-memory stand-in for the Postgres repositories, kept
// just rich enough to drive the HTTP surface end to end.
type memStore struct {
	users  map[string]*entity.User
	places map[string]*entity.Place
	seq    int
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*entity.User{}, places: map[string]*entity.Place{}}
}

func (st *memStore) id() string {
	st.seq++
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", st.seq)
}

func (st *memStore) addUser(name, email, password string) *entity.User {
	hash, _ := helpers.HashPassword(password)
	u := &entity.User{ID: st.id(), Name: name, Email: email, Password: hash, PlaceIDs: []string{}}
	st.users[u.ID] = u
	return u
}

type memUserRepo struct{ st *memStore }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, other := range r.st.users {
		if other.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = r.st.id()
	u.PlaceIDs = []string{}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.st.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.st.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.st.users))
	for _, u := range r.st.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memPlaceRepo struct{ st *memStore }

func (r *memPlaceRepo) Create(_ context.Context, p *entity.Place) error {
	u, ok := r.st.users[p.CreatorID]
	if !ok {
		return repository.ErrNotFound
	}
	p.ID = r.st.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.st.places[p.ID] = p
	u.PlaceIDs = append(u.PlaceIDs, p.ID)
	return nil
}

func (r *memPlaceRepo) GetByID(_ context.Context, id string) (*entity.Place, error) {
	p, ok := r.st.places[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPlaceRepo) ListByCreator(_ context.Context, userID string) ([]entity.Place, error) {
	out := []entity.Place{}
	for _, p := range r.st.places {
		if p.CreatorID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memPlaceRepo) Update(_ context.Context, p *entity.Place) error {
	stored, ok := r.st.places[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Title = p.Title
	stored.Description = p.Description
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *memPlaceRepo) Delete(_ context.Context, p *entity.Place) error {
	if _, ok := r.st.places[p.ID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.st.places, p.ID)
	if u, ok := r.st.users[p.CreatorID]; ok {
		kept := u.PlaceIDs[:0]
		for _, id := range u.PlaceIDs {
			if id != p.ID {
				kept = append(kept, id)
			}
		}
		u.PlaceIDs = kept
	}
	return nil
}

type stubGeocoder struct {
	coords entity.Coordinates
	err    error
}

func (g *stubGeocoder) Geocode(_ context.Context, _ string) (entity.Coordinates, error) {
	if g.err != nil {
		return entity.Coordinates{}, g.err
	}
	return g.coords, nil
}

// testAPI wires the full route table the way the router modules do, minus the
// external services (no rate limiter, no search index, no broker).
type testAPI struct {
	engine     *gin.Engine
	store      *memStore
	jwt        *helpers.JWTManager
	geo        *stubGeocoder
	uploadsDir string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := newMemStore()
	geo := &stubGeocoder{coords: entity.Coordinates{Lat: 40.7484474, Lng: -73.9871516}}
	jwt := helpers.NewJWTManager("test-secret", time.Minute)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	uploadsDir := t.TempDir()
	uploads := upload.NewStore(uploadsDir)

	userSvc := application.NewUserService(&memUserRepo{st: st}, jwt, nil, logger)
	placeSvc := application.NewPlaceService(&memPlaceRepo{st: st}, &memUserRepo{st: st}, geo, uploads, logger, nil, "")
	userH := NewUserHandler(userSvc, uploads, logger)
	placeH := NewPlaceHandler(placeSvc, uploads, logger)

	r := gin.New()
	api := r.Group("/api")

	users := api.Group("/users")
	users.GET("", userH.List)
	users.POST("/signup", userH.Signup)
	users.POST("/login", userH.Login)

	places := api.Group("/places")
	places.GET("/search", placeH.Search)
	places.GET("/:pid", placeH.GetByID)
	places.GET("/user/:uid", placeH.ListByUser)
	authed := places.Group("", middleware.Auth(jwt))
	authed.POST("", placeH.Create)
	authed.PATCH("/:pid", placeH.Update)
	authed.DELETE("/:pid", placeH.Delete)

	return &testAPI{engine: r, store: st, jwt: jwt, geo: geo, uploadsDir: uploadsDir}
}

func (a *testAPI) token(t *testing.T, u *entity.User) string {
	t.Helper()
	token, _, err := a.jwt.Generate(u.ID, u.Email)
	if err != nil {
		t.Fatalf("Generate() err = %v", err)
	}
	return token
}

func (a *testAPI) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	a.engine.ServeHTTP(rr, req)
	return rr
}

// jsonReq builds a JSON request.
func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// formReq builds a multipart request with the given text fields and a small
// png image part.
func formReq(t *testing.T, target string, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField(%q) err = %v", k, err)
		}
	}
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="pic.png"`)
	hdr.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("CreatePart() err = %v", err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("Write() err = %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
