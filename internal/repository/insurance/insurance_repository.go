// File: internal/repository/insurance/insurance_repository.go
package insurance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/policylens/policylens/internal/domain"
)

var ErrPolicyNotFound = errors.New("insurance policy not found")

type gormInsuranceRepository struct {
	db *gorm.DB
}

func NewInsuranceRepository(db *gorm.DB) InsuranceRepository {
	return &gormInsuranceRepository{db: db}
}

func (r *gormInsuranceRepository) Create(ctx context.Context, p *domain.InsurancePolicy) (*domain.InsurancePolicy, error) {
	if err := r.validatePolicyInput(p); err != nil {
		log.Printf("[InsuranceRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		log.Printf("[InsuranceRepository] Database error during policy creation for user ID %d: %v", p.UserID, err)
		return nil, errors.New("database error creating insurance policy")
	}

	return p, nil
}

func (r *gormInsuranceRepository) FindByIDAndUserID(ctx context.Context, policyID, userID uint) (*domain.InsurancePolicy, error) {
	if policyID == 0 || userID == 0 {
		return nil, errors.New("invalid policy ID or user ID")
	}

	var p domain.InsurancePolicy
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", policyID, userID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPolicyNotFound
		}
		log.Printf("[InsuranceRepository] Database error finding policy ID %d: %v", policyID, err)
		return nil, errors.New("database query failed")
	}

	return &p, nil
}

func (r *gormInsuranceRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.InsurancePolicy, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var policies []domain.InsurancePolicy
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("renewal_date ASC").
		Find(&policies).Error
	if err != nil {
		log.Printf("[InsuranceRepository] Database error finding policies for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching insurance policies")
	}

	return policies, nil
}

func (r *gormInsuranceRepository) Update(ctx context.Context, p *domain.InsurancePolicy) error {
	if p == nil || p.ID == 0 {
		return errors.New("invalid insurance policy")
	}
	if err := r.validatePolicyInput(p); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&domain.InsurancePolicy{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Updates(map[string]interface{}{
			"type":         p.Type,
			"premium":      p.Premium,
			"frequency":    p.Frequency,
			"renewal_date": p.RenewalDate,
			"sum_insured":  p.SumInsured,
			"reminder":     p.Reminder,
		})
	if result.Error != nil {
		log.Printf("[InsuranceRepository] Database error updating policy ID %d: %v", p.ID, result.Error)
		return errors.New("database error updating insurance policy")
	}
	if result.RowsAffected == 0 {
		return ErrPolicyNotFound
	}

	return nil
}

func (r *gormInsuranceRepository) Delete(ctx context.Context, policyID, userID uint) error {
	if policyID == 0 || userID == 0 {
		return errors.New("invalid policy ID or user ID")
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", policyID, userID).
		Delete(&domain.InsurancePolicy{})
	if result.Error != nil {
		log.Printf("[InsuranceRepository] Database error deleting policy ID %d for user ID %d: %v", policyID, userID, result.Error)
		return errors.New("database error deleting insurance policy")
	}
	if result.RowsAffected == 0 {
		return ErrPolicyNotFound
	}

	return nil
}

// validatePolicyInput checks required fields before touching the database.
func (r *gormInsuranceRepository) validatePolicyInput(p *domain.InsurancePolicy) error {
	if p == nil {
		return errors.New("policy cannot be nil")
	}
	if p.UserID == 0 {
		return errors.New("user ID is required")
	}
	if strings.TrimSpace(p.Type) == "" {
		return errors.New("policy type is required")
	}
	if p.Premium < 0 || p.SumInsured < 0 {
		return errors.New("premium and sum insured must be non-negative")
	}
	if strings.TrimSpace(p.Frequency) == "" {
		return errors.New("payment frequency is required")
	}
	if p.RenewalDate.IsZero() {
		return errors.New("renewal date is required")
	}
	return nil
}
