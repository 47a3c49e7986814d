// File: internal/repository/translation/translation_repository.go
package translation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/policylens/policylens/internal/domain"
)

var ErrTranslationNotFound = errors.New("translation not found")

type gormTranslationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) TranslationRepository {
	return &gormTranslationRepository{db: db}
}

func (r *gormTranslationRepository) Create(ctx context.Context, tr *domain.Translation) (*domain.Translation, error) {
	if err := r.validateTranslationInput(tr); err != nil {
		log.Printf("[TranslationRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(tr).Error; err != nil {
		log.Printf("[TranslationRepository] Database error during translation creation for user ID %d: %v", tr.UserID, err)
		return nil, errors.New("database error creating translation")
	}

	return tr, nil
}

func (r *gormTranslationRepository) FindByIDAndUserID(ctx context.Context, translationID, userID uint) (*domain.Translation, error) {
	if translationID == 0 || userID == 0 {
		return nil, errors.New("invalid translation ID or user ID")
	}

	var tr domain.Translation
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", translationID, userID).
		First(&tr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTranslationNotFound
		}
		log.Printf("[TranslationRepository] Database error finding translation ID %d: %v", translationID, err)
		return nil, errors.New("database query failed")
	}

	return &tr, nil
}

func (r *gormTranslationRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Translation, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var translations []domain.Translation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&translations).Error
	if err != nil {
		log.Printf("[TranslationRepository] Database error finding translations for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching translations")
	}

	return translations, nil
}

func (r *gormTranslationRepository) Delete(ctx context.Context, translationID, userID uint) error {
	if translationID == 0 || userID == 0 {
		return errors.New("invalid translation ID or user ID")
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", translationID, userID).
		Delete(&domain.Translation{})
	if result.Error != nil {
		log.Printf("[TranslationRepository] Database error deleting translation ID %d for user ID %d: %v", translationID, userID, result.Error)
		return errors.New("database error deleting translation")
	}
	if result.RowsAffected == 0 {
		return ErrTranslationNotFound
	}

	return nil
}

// validateTranslationInput checks required fields before touching the database.
func (r *gormTranslationRepository) validateTranslationInput(tr *domain.Translation) error {
	if tr == nil {
		return errors.New("translation cannot be nil")
	}
	if tr.UserID == 0 {
		return errors.New("user ID is required")
	}
	if strings.TrimSpace(tr.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(tr.OriginalText) == "" {
		return errors.New("original text is required")
	}
	if strings.TrimSpace(tr.TranslatedText) == "" {
		return errors.New("translated text is required")
	}
	if strings.TrimSpace(tr.Language) == "" {
		return errors.New("language is required")
	}
	return nil
}
