// File: internal/repository/user/user_repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/policylens/policylens/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")

type gormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}
	if err := u.IsValid(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, ErrEmailTaken
		}
		log.Printf("[UserRepository] Database error during user creation: %v", err)
		return nil, errors.New("database error creating user")
	}

	return u, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var u domain.User
	err := r.db.WithContext(ctx).First(&u, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("[UserRepository] Database error finding user ID %d: %v", userID, err)
		return nil, errors.New("database query failed")
	}

	return &u, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("email is required")
	}

	var u domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("[UserRepository] Database error finding user by email: %v", err)
		return nil, errors.New("database query failed")
	}

	return &u, nil
}

func (r *gormUserRepository) Update(ctx context.Context, u *domain.User) error {
	if u == nil || u.ID == 0 {
		return errors.New("invalid user")
	}

	result := r.db.WithContext(ctx).Save(u)
	if result.Error != nil {
		log.Printf("[UserRepository] Database error updating user ID %d: %v", u.ID, result.Error)
		return errors.New("database error updating user")
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
