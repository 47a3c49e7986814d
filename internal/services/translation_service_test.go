// File: internal/services/translation_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/policylens/policylens/internal/apperr"
	translationrepo "github.com/policylens/policylens/internal/repository/translation"
)

func newTranslationServiceForTest(t *testing.T, provider *stubProvider) *TranslationService {
	t.Helper()
	db := newTestDB(t)
	gen, err := NewGenerationService(provider, &NoOpLogger{})
	require.NoError(t, err)
	svc, err := NewTranslationService(translationrepo.NewTranslationRepository(db), gen, &NoOpLogger{})
	require.NoError(t, err)
	return svc
}

func TestConvertPersistsTranslation(t *testing.T) {
	provider := &stubProvider{replies: []string{"bonjour le monde", "Greeting"}}
	svc := newTranslationServiceForTest(t, provider)

	record, err := svc.Convert(context.Background(), 1, "hello world", "French")
	require.NoError(t, err)

	require.NotZero(t, record.ID)
	require.Equal(t, "hello world", record.OriginalText)
	require.Equal(t, "bonjour le monde", record.TranslatedText)
	require.Equal(t, "French", record.Language)
	require.Equal(t, "Greeting", record.Title)

	// The translate prompt names the target language.
	require.Contains(t, provider.calls[0].Prompt, "French")
	require.Contains(t, provider.calls[0].Prompt, "hello world")
}

func TestConvertValidatesInput(t *testing.T) {
	svc := newTranslationServiceForTest(t, &stubProvider{})

	_, err := svc.Convert(context.Background(), 1, "  ", "French")
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = svc.Convert(context.Background(), 1, "hello", "")
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestTranslationLifecycle(t *testing.T) {
	provider := &stubProvider{replies: []string{"uno", "T1", "dos", "T2"}}
	svc := newTranslationServiceForTest(t, provider)

	first, err := svc.Convert(context.Background(), 1, "one", "Spanish")
	require.NoError(t, err)
	_, err = svc.Convert(context.Background(), 1, "two", "Spanish")
	require.NoError(t, err)

	list, err := svc.ListTranslations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.DeleteTranslation(context.Background(), 1, first.ID))

	list, err = svc.ListTranslations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.GetTranslation(context.Background(), 1, first.ID)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTranslationOwnershipScoping(t *testing.T) {
	provider := &stubProvider{replies: []string{"uno", "T1"}}
	svc := newTranslationServiceForTest(t, provider)

	record, err := svc.Convert(context.Background(), 1, "one", "Spanish")
	require.NoError(t, err)

	_, err = svc.GetTranslation(context.Background(), 2, record.ID)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = svc.DeleteTranslation(context.Background(), 2, record.ID)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
