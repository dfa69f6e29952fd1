package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/placeshare/backend/internal/domain/entity"
	"github.com/placeshare/backend/internal/domain/repository"
	"github.com/placeshare/backend/pkg/helpers"
	"github.com/placeshare/backend/pkg/mailer"
)

var (
	// ErrUserNotFound and ErrInvalidCredentials are deliberately distinct:
	// login with an unknown email maps to 403, a wrong password to 401.
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// UserService orchestrates signup/login and credential issuance.
type UserService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Pub: pub, Logger: logger}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	ImageURL string
}

// Signup creates the user and issues a signed token. A duplicate email never
// creates a second record and never issues a credential.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*entity.User, string, error) {
	if existing, err := s.Repo.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		ImageURL: in.ImageURL,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// The unique index backs the pre-check under concurrent signups.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, _, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}

	s.publishWelcomeEmail(ctx, u)
	return u, token, nil
}

// Login checks the password against the stored hash and issues a fresh token.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrUserNotFound
	}
	if err != nil {
		return nil, "", err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// List returns every user. Password hashes are excluded at serialization.
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Repo.List(ctx)
}

// publishWelcomeEmail queues a welcome email for the new account. Best
// effort: a missing publisher or a broker failure never fails signup.
func (s *UserService) publishWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": u.Name},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email publish failed")
	}
}
