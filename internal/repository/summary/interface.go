// File: internal/repository/summary/interface.go
package summary

import (
	"context"

	"github.com/policylens/policylens/internal/domain"
)

type SummaryRepository interface {
	Create(ctx context.Context, s *domain.Summary) (*domain.Summary, error)
	// FindByIDAndUserID loads a summary (with its translation, when linked)
	// only when it is owned by userID.
	FindByIDAndUserID(ctx context.Context, summaryID, userID uint) (*domain.Summary, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Summary, error)
	// ReplaceTranslation atomically swaps the summary's linked translation:
	// the previous row is deleted, the new one created and linked, all in a
	// single transaction guarded by a compare-and-swap on the link.
	ReplaceTranslation(ctx context.Context, summaryID, userID uint, tr *domain.Translation) (*domain.Summary, error)
	// DeleteWithTranslation removes the linked translation first, then the
	// summary, in a single transaction. It returns the summary as it stood
	// before deletion so callers can release external resources it named.
	DeleteWithTranslation(ctx context.Context, summaryID, userID uint) (*domain.Summary, error)
}
