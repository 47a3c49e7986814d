// File: internal/services/insurance_service.go
package services

import (
	"context"
	"errors"

	"github.com/policylens/policylens/internal/apperr"
	"github.com/policylens/policylens/internal/domain"
	"github.com/policylens/policylens/internal/repository/insurance"
)

// InsuranceService manages the policies a user tracks manually, separate
// from the documents they upload for summarization.
type InsuranceService struct {
	insuranceRepo insurance.InsuranceRepository
	logger        Logger
}

func NewInsuranceService(insuranceRepo insurance.InsuranceRepository, logger Logger) (*InsuranceService, error) {
	if insuranceRepo == nil {
		return nil, errors.New("insurance repository is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	return &InsuranceService{insuranceRepo: insuranceRepo, logger: logger}, nil
}

func (s *InsuranceService) AddPolicy(ctx context.Context, userID uint, p *domain.InsurancePolicy) (*domain.InsurancePolicy, error) {
	if p == nil {
		return nil, apperr.NewInvalidArgument("add_policy", "policy is required")
	}
	p.UserID = userID

	created, err := s.insuranceRepo.Create(ctx, p)
	if err != nil {
		return nil, apperr.NewInvalidArgument("add_policy", err.Error())
	}

	s.logger.Info("policy added", "policy_id", created.ID, "user_id", userID, "type", created.Type)
	return created, nil
}

func (s *InsuranceService) GetPolicy(ctx context.Context, userID, policyID uint) (*domain.InsurancePolicy, error) {
	record, err := s.insuranceRepo.FindByIDAndUserID(ctx, policyID, userID)
	if err != nil {
		if errors.Is(err, insurance.ErrPolicyNotFound) {
			return nil, apperr.NewNotFound("get_policy", "policy not found")
		}
		return nil, apperr.NewStorageFailure("get_policy", "could not load policy", err)
	}
	return record, nil
}

func (s *InsuranceService) ListPolicies(ctx context.Context, userID uint) ([]domain.InsurancePolicy, error) {
	records, err := s.insuranceRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.NewStorageFailure("list_policies", "could not fetch policies", err)
	}
	return records, nil
}

func (s *InsuranceService) UpdatePolicy(ctx context.Context, userID uint, p *domain.InsurancePolicy) (*domain.InsurancePolicy, error) {
	if p == nil || p.ID == 0 {
		return nil, apperr.NewInvalidArgument("update_policy", "policy ID is required")
	}
	p.UserID = userID

	if err := s.insuranceRepo.Update(ctx, p); err != nil {
		if errors.Is(err, insurance.ErrPolicyNotFound) {
			return nil, apperr.NewNotFound("update_policy", "policy not found")
		}
		return nil, apperr.NewStorageFailure("update_policy", "could not update policy", err)
	}

	return s.GetPolicy(ctx, userID, p.ID)
}

func (s *InsuranceService) DeletePolicy(ctx context.Context, userID, policyID uint) error {
	err := s.insuranceRepo.Delete(ctx, policyID, userID)
	if err != nil {
		if errors.Is(err, insurance.ErrPolicyNotFound) {
			return apperr.NewNotFound("delete_policy", "policy not found")
		}
		return apperr.NewStorageFailure("delete_policy", "could not delete policy", err)
	}

	s.logger.Info("policy deleted", "policy_id", policyID, "user_id", userID)
	return nil
}
