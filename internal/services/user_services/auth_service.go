// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"strings"

	"github.com/policylens/policylens/internal/apperr"
	"github.com/policylens/policylens/internal/auth"
	"github.com/policylens/policylens/internal/domain"
	"github.com/policylens/policylens/internal/repository/user"
	"github.com/policylens/policylens/internal/services"
)

// AuthService handles account creation and credential checks.
type AuthService struct {
	userRepo     user.UserRepository
	jwtSecretKey string
	logger       services.Logger
}

func NewAuthService(userRepo user.UserRepository, jwtSecretKey string, logger services.Logger) (*AuthService, error) {
	if userRepo == nil {
		return nil, errors.New("user repository is required")
	}
	if jwtSecretKey == "" {
		return nil, errors.New("JWT secret key is required")
	}
	if logger == nil {
		logger = &services.NoOpLogger{}
	}

	return &AuthService{
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		logger:       logger,
	}, nil
}

// Register creates a new account and returns it with a signed token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	u := &domain.User{Name: name, Email: email}
	if err := u.IsValid(); err != nil {
		return nil, "", apperr.NewInvalidArgument("register", err.Error())
	}
	if err := u.HashPassword(password); err != nil {
		return nil, "", apperr.NewInvalidArgument("register", err.Error())
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, "", apperr.NewInvalidArgument("register", "an account with this email already exists")
		}
		return nil, "", apperr.NewStorageFailure("register", "could not create account", err)
	}

	token, err := auth.GenerateJWT(created.ID, []byte(s.jwtSecretKey))
	if err != nil {
		return nil, "", apperr.NewStorageFailure("register", "could not issue token", err)
	}

	s.logger.Info("account registered", "user_id", created.ID, "email", maskEmail(email))
	return created, token, nil
}

// Login authenticates by email and password and returns a signed token.
// Unknown email and wrong password are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", apperr.NewInvalidArgument("login", "email and password are required")
	}

	account, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.logger.Warn("login failed", "email", maskEmail(email), "reason", "unknown_email")
			return nil, "", apperr.NewUnauthorized("login", "invalid credentials")
		}
		return nil, "", apperr.NewStorageFailure("login", "could not look up account", err)
	}

	if err := account.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed", "email", maskEmail(email), "user_id", account.ID, "reason", "bad_password")
		return nil, "", apperr.NewUnauthorized("login", "invalid credentials")
	}

	token, err := auth.GenerateJWT(account.ID, []byte(s.jwtSecretKey))
	if err != nil {
		return nil, "", apperr.NewStorageFailure("login", "could not issue token", err)
	}

	s.logger.Info("login successful", "user_id", account.ID)
	return account, token, nil
}

func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "****"
	}
	return email[:2] + "****" + email[at:]
}
