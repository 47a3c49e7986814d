// File: internal/repository/insurance/interface.go
package insurance

import (
	"context"

	"github.com/policylens/policylens/internal/domain"
)

type InsuranceRepository interface {
	Create(ctx context.Context, p *domain.InsurancePolicy) (*domain.InsurancePolicy, error)
	FindByIDAndUserID(ctx context.Context, policyID, userID uint) (*domain.InsurancePolicy, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.InsurancePolicy, error)
	Update(ctx context.Context, p *domain.InsurancePolicy) error
	Delete(ctx context.Context, policyID, userID uint) error
}
