// File: internal/services/summary_service_test.go
package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/policylens/policylens/internal/apperr"
	"github.com/policylens/policylens/internal/domain"
	summaryrepo "github.com/policylens/policylens/internal/repository/summary"
)

// memoryStore keeps objects in a map, standing in for MinIO.
type memoryStore struct {
	objects map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (m *memoryStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memoryStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://store.local/" + key, nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func newSummaryServiceForTest(t *testing.T, provider *stubProvider) (*SummaryService, *memoryStore, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	store := newMemoryStore()
	gen, err := NewGenerationService(provider, &NoOpLogger{})
	require.NoError(t, err)
	svc, err := NewSummaryService(summaryrepo.NewSummaryRepository(db), store, gen, &NoOpLogger{})
	require.NoError(t, err)
	return svc, store, db
}

const policyText = "This policy covers fire, theft and water damage up to the sum insured."

func TestIngestDocumentStoresAndSummarizes(t *testing.T) {
	provider := &stubProvider{replies: []string{"- covers fire\n- covers theft", "Home Policy Overview"}}
	svc, store, db := newSummaryServiceForTest(t, provider)

	summary, err := svc.IngestDocument(context.Background(), 1, "policy.txt", "text/plain", []byte(policyText))
	require.NoError(t, err)

	require.Equal(t, "Home Policy Overview", summary.Title)
	require.Equal(t, "- covers fire\n- covers theft", summary.SummarizedText)
	require.True(t, strings.HasPrefix(summary.DocumentRef, "policies/"))
	require.Contains(t, store.objects, summary.DocumentRef)
	require.Equal(t, []byte(policyText), store.objects[summary.DocumentRef])

	// The summarize prompt carries the extracted document text.
	require.Contains(t, provider.calls[0].Prompt, policyText)

	var count int64
	require.NoError(t, db.Model(&domain.Summary{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestIngestDocumentRejectsEmptyUpload(t *testing.T) {
	svc, _, _ := newSummaryServiceForTest(t, &stubProvider{})

	_, err := svc.IngestDocument(context.Background(), 1, "empty.txt", "text/plain", nil)
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestIngestDocumentRejectsBinaryGarbage(t *testing.T) {
	svc, store, _ := newSummaryServiceForTest(t, &stubProvider{})

	_, err := svc.IngestDocument(context.Background(), 1, "blob.bin", "application/octet-stream",
		[]byte{0x00, 0xff, 0xfe, 0x01, 0x02})
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	require.Empty(t, store.objects)
}

func TestTranslateSummaryAttachesTranslation(t *testing.T) {
	provider := &stubProvider{replies: []string{"summary text", "Title", "texte traduit", "Titre"}}
	svc, _, _ := newSummaryServiceForTest(t, provider)

	summary, err := svc.IngestDocument(context.Background(), 1, "p.txt", "text/plain", []byte(policyText))
	require.NoError(t, err)
	require.Nil(t, summary.Translation)

	updated, err := svc.TranslateSummary(context.Background(), 1, summary.ID, "French")
	require.NoError(t, err)
	require.NotNil(t, updated.Translation)
	require.Equal(t, "texte traduit", updated.Translation.TranslatedText)
	require.Equal(t, "French", updated.Translation.Language)
	require.Equal(t, summary.SummarizedText, updated.Translation.OriginalText)
}

func TestRetranslateReplacesPreviousTranslation(t *testing.T) {
	provider := &stubProvider{replies: []string{
		"summary text", "Title",
		"hindi text", "Title",
		"tamil text", "Title",
	}}
	svc, _, db := newSummaryServiceForTest(t, provider)

	summary, err := svc.IngestDocument(context.Background(), 1, "p.txt", "text/plain", []byte(policyText))
	require.NoError(t, err)

	first, err := svc.TranslateSummary(context.Background(), 1, summary.ID, "Hindi")
	require.NoError(t, err)
	second, err := svc.TranslateSummary(context.Background(), 1, summary.ID, "Tamil")
	require.NoError(t, err)

	require.NotEqual(t, first.Translation.ID, second.Translation.ID)
	require.Equal(t, "tamil text", second.Translation.TranslatedText)
	require.Equal(t, "Tamil", second.Translation.Language)

	// Exactly one live translation row; the Hindi one is gone.
	var count int64
	require.NoError(t, db.Model(&domain.Translation{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
	require.ErrorIs(t, db.First(&domain.Translation{}, first.Translation.ID).Error, gorm.ErrRecordNotFound)
}

func TestTranslateSummaryIsOwnerScoped(t *testing.T) {
	provider := &stubProvider{replies: []string{"summary text", "Title"}}
	svc, _, _ := newSummaryServiceForTest(t, provider)

	summary, err := svc.IngestDocument(context.Background(), 1, "p.txt", "text/plain", []byte(policyText))
	require.NoError(t, err)

	_, err = svc.TranslateSummary(context.Background(), 2, summary.ID, "French")
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteSummaryRemovesEverything(t *testing.T) {
	provider := &stubProvider{replies: []string{"summary text", "Title", "texto", "Titulo"}}
	svc, store, db := newSummaryServiceForTest(t, provider)

	summary, err := svc.IngestDocument(context.Background(), 1, "p.txt", "text/plain", []byte(policyText))
	require.NoError(t, err)
	_, err = svc.TranslateSummary(context.Background(), 1, summary.ID, "Spanish")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSummary(context.Background(), 1, summary.ID))

	var count int64
	require.NoError(t, db.Model(&domain.Summary{}).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&domain.Translation{}).Count(&count).Error)
	require.Zero(t, count)
	require.NotContains(t, store.objects, summary.DocumentRef)
}

func TestDeleteSummaryWithoutTranslation(t *testing.T) {
	provider := &stubProvider{replies: []string{"summary text", "Title"}}
	svc, _, db := newSummaryServiceForTest(t, provider)

	summary, err := svc.IngestDocument(context.Background(), 1, "p.txt", "text/plain", []byte(policyText))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSummary(context.Background(), 1, summary.ID))

	var count int64
	require.NoError(t, db.Model(&domain.Summary{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestDeleteSummaryIsOwnerScoped(t *testing.T) {
	provider := &stubProvider{replies: []string{"summary text", "Title"}}
	svc, _, _ := newSummaryServiceForTest(t, provider)

	summary, err := svc.IngestDocument(context.Background(), 1, "p.txt", "text/plain", []byte(policyText))
	require.NoError(t, err)

	err = svc.DeleteSummary(context.Background(), 2, summary.ID)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListSummariesScopedToOwner(t *testing.T) {
	provider := &stubProvider{replies: []string{"s1", "t1", "s2", "t2"}}
	svc, _, _ := newSummaryServiceForTest(t, provider)

	_, err := svc.IngestDocument(context.Background(), 1, "a.txt", "text/plain", []byte(policyText))
	require.NoError(t, err)
	_, err = svc.IngestDocument(context.Background(), 2, "b.txt", "text/plain", []byte(policyText))
	require.NoError(t, err)

	mine, err := svc.ListSummaries(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestDocumentURL(t *testing.T) {
	provider := &stubProvider{replies: []string{"summary text", "Title"}}
	svc, _, _ := newSummaryServiceForTest(t, provider)

	summary, err := svc.IngestDocument(context.Background(), 1, "p.txt", "text/plain", []byte(policyText))
	require.NoError(t, err)

	url, err := svc.DocumentURL(context.Background(), 1, summary.ID)
	require.NoError(t, err)
	require.Equal(t, "https://store.local/"+summary.DocumentRef, url)
}
