// File: internal/services/generation_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/policylens/policylens/internal/apperr"
	"github.com/policylens/policylens/internal/services/ai"
)

// GenerationService is the gateway to the external text-generation
// collaborator. Every method either returns usable text or an explicit
// GenerationFailure; nothing empty is ever handed back for persistence.
// The service is stateless and safe for concurrent use.
type GenerationService struct {
	provider ai.Provider
	logger   Logger
}

func NewGenerationService(provider ai.Provider, logger Logger) (*GenerationService, error) {
	if provider == nil {
		return nil, ai.NewConfigError("generation provider is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &GenerationService{provider: provider, logger: logger}, nil
}

// Title produces a short descriptive label (at most a few words) for text.
func (s *GenerationService) Title(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(
		"%s\n\nGenerate exactly one title for the text above, a maximum of five words, with no extra information.",
		text,
	)

	out, err := s.complete(ctx, "title", nil, prompt)
	if err != nil {
		return "", err
	}

	// Providers like to wrap titles in quotes or add a trailing newline.
	title := strings.Trim(strings.TrimSpace(out), "\"'")
	title = strings.ReplaceAll(title, "\n", " ")
	if title == "" {
		return "", apperr.NewGenerationFailure("title", "generated title is empty", nil)
	}
	return title, nil
}

// Summarize produces a bulleted summary of a policy document's text.
func (s *GenerationService) Summarize(ctx context.Context, documentText string) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the following insurance policy document as a bulleted list:\n\n%s",
		documentText,
	)
	return s.complete(ctx, "summarize", nil, prompt)
}

// Translate converts text into the target language, nothing else.
func (s *GenerationService) Translate(ctx context.Context, text, language string) (string, error) {
	prompt := fmt.Sprintf(
		"%s\nConvert the text above into %s and do not give any extra information.",
		text, language,
	)
	return s.complete(ctx, "translate", nil, prompt)
}

// ChatReply produces the assistant's next turn given chronological history
// plus the new prompt. The gateway holds no state across calls; the caller
// reconstructs history from persisted messages.
func (s *GenerationService) ChatReply(ctx context.Context, history []ai.Turn, prompt string) (string, error) {
	return s.complete(ctx, "chat_reply", history, prompt)
}

func (s *GenerationService) complete(ctx context.Context, operation string, history []ai.Turn, prompt string) (string, error) {
	out, err := s.provider.Complete(ctx, history, prompt)
	if err != nil {
		s.logger.Error("generation call failed", "operation", operation, "error", err)
		return "", apperr.NewGenerationFailure(operation, "text generation failed", err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		s.logger.Error("generation returned empty text", "operation", operation)
		return "", apperr.NewGenerationFailure(operation, "text generation returned empty result", nil)
	}

	return out, nil
}
