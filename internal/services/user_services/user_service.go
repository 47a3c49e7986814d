// File: internal/services/user_services/user_service.go
package user_services

import (
	"context"
	"errors"
	"strings"

	"github.com/policylens/policylens/internal/apperr"
	"github.com/policylens/policylens/internal/domain"
	"github.com/policylens/policylens/internal/repository/user"
	"github.com/policylens/policylens/internal/services"
)

// UserService covers everything about an account after authentication.
type UserService struct {
	userRepo user.UserRepository
	logger   services.Logger
}

func NewUserService(userRepo user.UserRepository, logger services.Logger) (*UserService, error) {
	if userRepo == nil {
		return nil, errors.New("user repository is required")
	}
	if logger == nil {
		logger = &services.NoOpLogger{}
	}

	return &UserService{userRepo: userRepo, logger: logger}, nil
}

// GetProfile loads the caller's account.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	account, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperr.NewNotFound("get_profile", "account not found")
		}
		return nil, apperr.NewStorageFailure("get_profile", "could not load account", err)
	}
	return account, nil
}

// UpdateName changes the account's display name.
func (s *UserService) UpdateName(ctx context.Context, userID uint, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, apperr.NewInvalidArgument("update_name", "name must be at least 2 characters")
	}

	account, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	account.Name = name
	if err := s.userRepo.Update(ctx, account); err != nil {
		return nil, apperr.NewStorageFailure("update_name", "could not update account", err)
	}

	return account, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	account, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := account.ValidatePassword(currentPassword); err != nil {
		s.logger.Warn("password change rejected", "user_id", userID, "reason", "bad_current_password")
		return apperr.NewUnauthorized("change_password", "current password is incorrect")
	}

	if err := account.HashPassword(newPassword); err != nil {
		return apperr.NewInvalidArgument("change_password", err.Error())
	}

	if err := s.userRepo.Update(ctx, account); err != nil {
		return apperr.NewStorageFailure("change_password", "could not update account", err)
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}
