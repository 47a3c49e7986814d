// File: internal/repository/translation/interface.go
package translation

import (
	"context"

	"github.com/policylens/policylens/internal/domain"
)

type TranslationRepository interface {
	Create(ctx context.Context, tr *domain.Translation) (*domain.Translation, error)
	FindByIDAndUserID(ctx context.Context, translationID, userID uint) (*domain.Translation, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Translation, error)
	Delete(ctx context.Context, translationID, userID uint) error
}
