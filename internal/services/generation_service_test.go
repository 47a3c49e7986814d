// File: internal/services/generation_service_test.go
package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/policylens/policylens/internal/apperr"
)

func newGenerationServiceForTest(t *testing.T, provider *stubProvider) *GenerationService {
	t.Helper()
	svc, err := NewGenerationService(provider, &NoOpLogger{})
	require.NoError(t, err)
	return svc
}

func TestTitlePromptAndCleanup(t *testing.T) {
	provider := &stubProvider{replies: []string{"\"Flood Cover Basics\"\n"}}
	svc := newGenerationServiceForTest(t, provider)

	title, err := svc.Title(context.Background(), "Tell me about flood cover")
	require.NoError(t, err)
	require.Equal(t, "Flood Cover Basics", title)

	prompt := provider.calls[0].Prompt
	require.True(t, strings.HasPrefix(prompt, "Tell me about flood cover"))
	require.Contains(t, prompt, "maximum of five words")
}

func TestTranslatePromptNamesLanguage(t *testing.T) {
	provider := &stubProvider{replies: []string{"namaste"}}
	svc := newGenerationServiceForTest(t, provider)

	out, err := svc.Translate(context.Background(), "hello", "Hindi")
	require.NoError(t, err)
	require.Equal(t, "namaste", out)
	require.Contains(t, provider.calls[0].Prompt, "Convert the text above into Hindi")
}

func TestEmptyCompletionIsGenerationFailure(t *testing.T) {
	provider := &stubProvider{replies: []string{"   \n"}}
	svc := newGenerationServiceForTest(t, provider)

	_, err := svc.Summarize(context.Background(), "doc text")
	require.Error(t, err)
	require.Equal(t, apperr.KindGenerationFailure, apperr.KindOf(err))
}

func TestProviderErrorIsGenerationFailure(t *testing.T) {
	cause := errors.New("timeout")
	provider := &stubProvider{err: cause}
	svc := newGenerationServiceForTest(t, provider)

	_, err := svc.ChatReply(context.Background(), nil, "hello")
	require.Error(t, err)
	require.Equal(t, apperr.KindGenerationFailure, apperr.KindOf(err))
	require.ErrorIs(t, err, cause)
}

func TestNewGenerationServiceRequiresProvider(t *testing.T) {
	_, err := NewGenerationService(nil, &NoOpLogger{})
	require.Error(t, err)
}
