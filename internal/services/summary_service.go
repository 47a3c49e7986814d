// File: internal/services/summary_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/policylens/policylens/internal/apperr"
	"github.com/policylens/policylens/internal/domain"
	"github.com/policylens/policylens/internal/repository/summary"
	"github.com/policylens/policylens/internal/services/document"
	"github.com/policylens/policylens/internal/services/storage"
)

// SummaryService ingests policy documents, produces their summaries, and
// manages the at-most-one live translation attached to each summary.
type SummaryService struct {
	summaryRepo summary.SummaryRepository
	store       storage.ObjectStore
	generation  *GenerationService
	logger      Logger
}

func NewSummaryService(
	summaryRepo summary.SummaryRepository,
	store storage.ObjectStore,
	generation *GenerationService,
	logger Logger,
) (*SummaryService, error) {
	if summaryRepo == nil {
		return nil, errors.New("summary repository is required")
	}
	if store == nil {
		return nil, errors.New("object store is required")
	}
	if generation == nil {
		return nil, errors.New("generation service is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	return &SummaryService{
		summaryRepo: summaryRepo,
		store:       store,
		generation:  generation,
		logger:      logger,
	}, nil
}

// IngestDocument extracts the document's text, archives the raw bytes in the
// object store, and persists a generated summary with a generated title.
// filename and contentType describe the upload as received.
func (s *SummaryService) IngestDocument(ctx context.Context, userID uint, filename, contentType string, data []byte) (*domain.Summary, error) {
	if len(data) == 0 {
		return nil, apperr.NewInvalidArgument("ingest_document", "document is empty")
	}

	text, err := document.ExtractText(data)
	if err != nil {
		if errors.Is(err, document.ErrNoText) {
			return nil, apperr.NewInvalidArgument("ingest_document", "document contains no extractable text")
		}
		return nil, apperr.NewInvalidArgument("ingest_document", err.Error())
	}

	objectKey := fmt.Sprintf("policies/%s/%s", uuid.NewString(), sanitizeFilename(filename))
	if err := s.store.Put(ctx, objectKey, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, apperr.NewStorageFailure("ingest_document", "could not archive document", err)
	}

	summarized, err := s.generation.Summarize(ctx, text)
	if err != nil {
		return nil, err
	}
	title, err := s.generation.Title(ctx, summarized)
	if err != nil {
		return nil, err
	}

	record, err := s.summaryRepo.Create(ctx, &domain.Summary{
		UserID:         userID,
		Title:          title,
		DocumentRef:    objectKey,
		SummarizedText: summarized,
	})
	if err != nil {
		return nil, apperr.NewStorageFailure("ingest_document", "could not persist summary", err)
	}

	s.logger.Info("document ingested", "summary_id", record.ID, "user_id", userID, "object_key", objectKey)
	return record, nil
}

// TranslateSummary translates the summary's text into language and attaches
// the result, replacing any translation that was attached before. Callers
// racing on the same summary see at most one winner; the losers get a
// conflict from the repository's compare-and-swap.
func (s *SummaryService) TranslateSummary(ctx context.Context, userID, summaryID uint, language string) (*domain.Summary, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, apperr.NewInvalidArgument("translate_summary", "target language is required")
	}

	record, err := s.summaryRepo.FindByIDAndUserID(ctx, summaryID, userID)
	if err != nil {
		if errors.Is(err, summary.ErrSummaryNotFound) {
			return nil, apperr.NewNotFound("translate_summary", "summary not found")
		}
		return nil, apperr.NewStorageFailure("translate_summary", "could not load summary", err)
	}

	translated, err := s.generation.Translate(ctx, record.SummarizedText, language)
	if err != nil {
		return nil, err
	}
	title, err := s.generation.Title(ctx, record.SummarizedText)
	if err != nil {
		return nil, err
	}

	updated, err := s.summaryRepo.ReplaceTranslation(ctx, summaryID, userID, &domain.Translation{
		UserID:         userID,
		Title:          title,
		OriginalText:   record.SummarizedText,
		TranslatedText: translated,
		Language:       language,
	})
	if err != nil {
		switch {
		case errors.Is(err, summary.ErrSummaryNotFound):
			return nil, apperr.NewNotFound("translate_summary", "summary not found")
		case errors.Is(err, summary.ErrTranslationConflict):
			return nil, apperr.NewStorageFailure("translate_summary", "concurrent translation in progress", err)
		default:
			return nil, apperr.NewStorageFailure("translate_summary", "could not attach translation", err)
		}
	}

	s.logger.Info("summary translated", "summary_id", summaryID, "language", language)
	return updated, nil
}

// GetSummary loads one summary owned by the caller, with its translation.
func (s *SummaryService) GetSummary(ctx context.Context, userID, summaryID uint) (*domain.Summary, error) {
	record, err := s.summaryRepo.FindByIDAndUserID(ctx, summaryID, userID)
	if err != nil {
		if errors.Is(err, summary.ErrSummaryNotFound) {
			return nil, apperr.NewNotFound("get_summary", "summary not found")
		}
		return nil, apperr.NewStorageFailure("get_summary", "could not load summary", err)
	}
	return record, nil
}

// ListSummaries returns the caller's summaries, newest first.
func (s *SummaryService) ListSummaries(ctx context.Context, userID uint) ([]domain.Summary, error) {
	records, err := s.summaryRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.NewStorageFailure("list_summaries", "could not fetch summaries", err)
	}
	return records, nil
}

// DocumentURL produces a short-lived link to the archived source document.
func (s *SummaryService) DocumentURL(ctx context.Context, userID, summaryID uint) (string, error) {
	record, err := s.GetSummary(ctx, userID, summaryID)
	if err != nil {
		return "", err
	}

	url, err := s.store.PresignGet(ctx, record.DocumentRef, 15*time.Minute)
	if err != nil {
		return "", apperr.NewStorageFailure("document_url", "could not sign document link", err)
	}
	return url, nil
}

// DeleteSummary removes the summary, its attached translation (if any), and
// the archived document. The database rows go first; a failed object-store
// delete is logged but does not resurrect the summary.
func (s *SummaryService) DeleteSummary(ctx context.Context, userID, summaryID uint) error {
	record, err := s.summaryRepo.DeleteWithTranslation(ctx, summaryID, userID)
	if err != nil {
		if errors.Is(err, summary.ErrSummaryNotFound) {
			return apperr.NewNotFound("delete_summary", "summary not found")
		}
		return apperr.NewStorageFailure("delete_summary", "could not delete summary", err)
	}

	if record.DocumentRef != "" {
		if err := s.store.Delete(ctx, record.DocumentRef); err != nil {
			s.logger.Warn("orphaned document object after summary delete",
				"summary_id", summaryID, "object_key", record.DocumentRef, "error", err)
		}
	}

	s.logger.Info("summary deleted", "summary_id", summaryID, "user_id", userID)
	return nil
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "document"
	}
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	return name
}
