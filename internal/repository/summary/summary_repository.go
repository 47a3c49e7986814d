// File: internal/repository/summary/summary_repository.go
package summary

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/policylens/policylens/internal/domain"
)

var ErrSummaryNotFound = errors.New("summary not found")

// ErrTranslationConflict means a concurrent retranslate changed the link
// between our read and our swap; the caller should retry.
var ErrTranslationConflict = errors.New("translation link changed concurrently")

type gormSummaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &gormSummaryRepository{db: db}
}

func (r *gormSummaryRepository) Create(ctx context.Context, s *domain.Summary) (*domain.Summary, error) {
	if err := r.validateSummaryInput(s); err != nil {
		log.Printf("[SummaryRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		log.Printf("[SummaryRepository] Database error during summary creation for user ID %d: %v", s.UserID, err)
		return nil, errors.New("database error creating summary")
	}

	return s, nil
}

func (r *gormSummaryRepository) FindByIDAndUserID(ctx context.Context, summaryID, userID uint) (*domain.Summary, error) {
	if summaryID == 0 || userID == 0 {
		return nil, errors.New("invalid summary ID or user ID")
	}

	var s domain.Summary
	err := r.db.WithContext(ctx).
		Preload("Translation").
		Where("id = ? AND user_id = ?", summaryID, userID).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSummaryNotFound
		}
		log.Printf("[SummaryRepository] Database error finding summary ID %d: %v", summaryID, err)
		return nil, errors.New("database query failed")
	}

	return &s, nil
}

func (r *gormSummaryRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Summary, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var summaries []domain.Summary
	err := r.db.WithContext(ctx).
		Preload("Translation").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&summaries).Error
	if err != nil {
		log.Printf("[SummaryRepository] Database error finding summaries for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching summaries")
	}

	return summaries, nil
}

// ReplaceTranslation deletes the currently linked translation (if any),
// creates tr and links it, inside one transaction. The link update is a
// compare-and-swap against the value read at the start of the transaction,
// so two concurrent retranslates cannot both link and leak an orphan row.
func (r *gormSummaryRepository) ReplaceTranslation(ctx context.Context, summaryID, userID uint, tr *domain.Translation) (*domain.Summary, error) {
	if summaryID == 0 || userID == 0 {
		return nil, errors.New("invalid summary ID or user ID")
	}
	if tr == nil {
		return nil, errors.New("translation cannot be nil")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s domain.Summary
		if err := tx.Where("id = ? AND user_id = ?", summaryID, userID).First(&s).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSummaryNotFound
			}
			return err
		}
		oldTranslationID := s.TranslationID

		if oldTranslationID != 0 {
			if err := tx.Where("id = ?", oldTranslationID).Delete(&domain.Translation{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(tr).Error; err != nil {
			return err
		}

		result := tx.Model(&domain.Summary{}).
			Where("id = ? AND translation_id = ?", summaryID, oldTranslationID).
			Update("translation_id", tr.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTranslationConflict
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSummaryNotFound) || errors.Is(err, ErrTranslationConflict) {
			return nil, err
		}
		log.Printf("[SummaryRepository] Database error replacing translation for summary ID %d: %v", summaryID, err)
		return nil, errors.New("database error replacing translation")
	}

	return r.FindByIDAndUserID(ctx, summaryID, userID)
}

// DeleteWithTranslation fetches the summary, removes the child translation
// first and the summary after, all in one transaction.
func (r *gormSummaryRepository) DeleteWithTranslation(ctx context.Context, summaryID, userID uint) (*domain.Summary, error) {
	if summaryID == 0 || userID == 0 {
		return nil, errors.New("invalid summary ID or user ID")
	}

	var deleted domain.Summary
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", summaryID, userID).First(&deleted).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSummaryNotFound
			}
			return err
		}

		if deleted.TranslationID != 0 {
			if err := tx.Where("id = ?", deleted.TranslationID).Delete(&domain.Translation{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&domain.Summary{}, deleted.ID).Error
	})
	if err != nil {
		if errors.Is(err, ErrSummaryNotFound) {
			return nil, err
		}
		log.Printf("[SummaryRepository] Database error deleting summary ID %d for user ID %d: %v", summaryID, userID, err)
		return nil, errors.New("database error deleting summary")
	}

	return &deleted, nil
}

// validateSummaryInput checks required fields before touching the database.
func (r *gormSummaryRepository) validateSummaryInput(s *domain.Summary) error {
	if s == nil {
		return errors.New("summary cannot be nil")
	}
	if s.UserID == 0 {
		return errors.New("user ID is required")
	}
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(s.DocumentRef) == "" {
		return errors.New("document reference is required")
	}
	if strings.TrimSpace(s.SummarizedText) == "" {
		return errors.New("summarized text is required")
	}
	return nil
}
