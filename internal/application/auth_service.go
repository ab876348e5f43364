package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/book-catalog-api/internal/domain/entity"
	repo "github.com/oksasatya/book-catalog-api/internal/domain/repository"
	"github.com/oksasatya/book-catalog-api/pkg/helpers"
	"github.com/oksasatya/book-catalog-api/pkg/mailer"
	tpl "github.com/oksasatya/book-catalog-api/pkg/mailer/templates"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService orchestrates registration and login against the user store
// and the token manager. Logout is stateless and lives entirely in the
// handler; issued tokens stay valid until expiry.
type AuthService struct {
	Users       repo.UserRepository
	JWT         *helpers.JWTManager
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	AppName     string
	MailEnabled bool
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, appName string, mailEnabled bool) *AuthService {
	return &AuthService{
		Users:       users,
		JWT:         jwt,
		Pub:         pub,
		Logger:      logger,
		AppName:     appName,
		MailEnabled: mailEnabled,
	}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token       string
	TokenExpiry time.Time
	Email       string
	Name        string
}

// Register creates an account for a new email and issues a token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	exists, err := s.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{Name: name, Email: email, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	res, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}

	s.enqueueWelcomeEmail(ctx, u)
	return res, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller; storage failures are not
// credential failures and propagate as-is.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u == nil || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(u)
}

func (s *AuthService) issueToken(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.JWT.GenerateAccessToken(u.ID, u.Email, u.Name)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return nil, err
	}
	return &AuthResult{Token: token, TokenExpiry: exp, Email: u.Email, Name: u.Name}, nil
}

// enqueueWelcomeEmail is best effort; registration never fails because of it.
func (s *AuthService) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: tpl.Welcome,
		Data: map[string]any{
			"AppName": s.AppName,
			"Name":    u.Name,
			"Email":   u.Email,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("enqueue welcome email failed")
	}
}
