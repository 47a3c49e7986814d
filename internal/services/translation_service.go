// File: internal/services/translation_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/policylens/policylens/internal/apperr"
	"github.com/policylens/policylens/internal/domain"
	"github.com/policylens/policylens/internal/repository/translation"
)

// TranslationService handles standalone translations, the ones a user asks
// for directly rather than as an attachment to a summary.
type TranslationService struct {
	translationRepo translation.TranslationRepository
	generation      *GenerationService
	logger          Logger
}

func NewTranslationService(
	translationRepo translation.TranslationRepository,
	generation *GenerationService,
	logger Logger,
) (*TranslationService, error) {
	if translationRepo == nil {
		return nil, errors.New("translation repository is required")
	}
	if generation == nil {
		return nil, errors.New("generation service is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	return &TranslationService{
		translationRepo: translationRepo,
		generation:      generation,
		logger:          logger,
	}, nil
}

// Convert translates text into language and persists the result with a
// generated title.
func (s *TranslationService) Convert(ctx context.Context, userID uint, text, language string) (*domain.Translation, error) {
	text = strings.TrimSpace(text)
	language = strings.TrimSpace(language)
	if text == "" {
		return nil, apperr.NewInvalidArgument("convert_text", "text is required")
	}
	if language == "" {
		return nil, apperr.NewInvalidArgument("convert_text", "target language is required")
	}

	translated, err := s.generation.Translate(ctx, text, language)
	if err != nil {
		return nil, err
	}
	title, err := s.generation.Title(ctx, text)
	if err != nil {
		return nil, err
	}

	record, err := s.translationRepo.Create(ctx, &domain.Translation{
		UserID:         userID,
		Title:          title,
		OriginalText:   text,
		TranslatedText: translated,
		Language:       language,
	})
	if err != nil {
		return nil, apperr.NewStorageFailure("convert_text", "could not persist translation", err)
	}

	s.logger.Info("text translated", "translation_id", record.ID, "user_id", userID, "language", language)
	return record, nil
}

// GetTranslation loads one translation owned by the caller.
func (s *TranslationService) GetTranslation(ctx context.Context, userID, translationID uint) (*domain.Translation, error) {
	record, err := s.translationRepo.FindByIDAndUserID(ctx, translationID, userID)
	if err != nil {
		if errors.Is(err, translation.ErrTranslationNotFound) {
			return nil, apperr.NewNotFound("get_translation", "translation not found")
		}
		return nil, apperr.NewStorageFailure("get_translation", "could not load translation", err)
	}
	return record, nil
}

// ListTranslations returns the caller's translations, newest first.
func (s *TranslationService) ListTranslations(ctx context.Context, userID uint) ([]domain.Translation, error) {
	records, err := s.translationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.NewStorageFailure("list_translations", "could not fetch translations", err)
	}
	return records, nil
}

// DeleteTranslation removes a standalone translation owned by the caller.
func (s *TranslationService) DeleteTranslation(ctx context.Context, userID, translationID uint) error {
	err := s.translationRepo.Delete(ctx, translationID, userID)
	if err != nil {
		if errors.Is(err, translation.ErrTranslationNotFound) {
			return apperr.NewNotFound("delete_translation", "translation not found")
		}
		return apperr.NewStorageFailure("delete_translation", "could not delete translation", err)
	}

	s.logger.Info("translation deleted", "translation_id", translationID, "user_id", userID)
	return nil
}
