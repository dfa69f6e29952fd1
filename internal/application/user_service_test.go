package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/placeshare/backend/pkg/helpers"
)

func newUserService(st *fakeStore) *UserService {
	jwt := helpers.NewJWTManager("test-secret", 30*time.Minute)
	return NewUserService(&fakeUserRepo{st: st}, jwt, nil, nil)
}

func TestSignupHashesPasswordAndIssuesToken(t *testing.T) {
	st := newFakeStore()
	svc := newUserService(st)

	u, token, err := svc.Signup(context.Background(), SignupInput{
		Name: "Max", Email: "a@x.com", Password: "secret1", ImageURL: "uploads/images/a.png",
	})
	if err != nil {
		t.Fatalf("Signup() err = %v", err)
	}
	if u.ID == "" || token == "" {
		t.Fatalf("Signup() returned id=%q token=%q", u.ID, token)
	}

	stored := st.users[u.ID]
	if stored.Password == "secret1" {
		t.Fatal("password stored in plain text")
	}
	if !helpers.CompareHashAndPassword(stored.Password, "secret1") {
		t.Fatal("stored hash does not verify against the password")
	}

	claims, err := svc.JWT.Parse(token)
	if err != nil {
		t.Fatalf("Parse(token) err = %v", err)
	}
	if claims.UserID != u.ID || claims.Email != "a@x.com" {
		t.Fatalf("claims = %+v, want userId=%s email=a@x.com", claims, u.ID)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	st := newFakeStore()
	svc := newUserService(st)

	if _, _, err := svc.Signup(context.Background(), SignupInput{Name: "Max", Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("first Signup() err = %v", err)
	}

	_, token, err := svc.Signup(context.Background(), SignupInput{Name: "Imp", Email: "a@x.com", Password: "other66"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("second Signup() err = %v, want ErrEmailTaken", err)
	}
	if token != "" {
		t.Fatal("duplicate signup must not issue a credential")
	}
	if len(st.users) != 1 {
		t.Fatalf("user count = %d, want 1", len(st.users))
	}
}

// Login failures stay distinguishable inside the service: an unknown email is
// not the same error as a wrong password. The HTTP layer maps them to 403 and
// 401 respectively.
func TestLoginErrorAsymmetry(t *testing.T) {
	st := newFakeStore()
	svc := newUserService(st)
	if _, _, err := svc.Signup(context.Background(), SignupInput{Name: "Max", Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("Signup() err = %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "nobody@x.com", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown email err = %v, want ErrUserNotFound", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, token, err := svc.Login(context.Background(), "a@x.com", "secret1"); err != nil || token == "" {
		t.Fatalf("valid login = (%q, %v), want token", token, err)
	}
}
