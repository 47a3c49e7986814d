// File: internal/services/ai/interface.go
package ai

import "context"

// Turn is one prior exchange handed to the provider as chat history.
// Role is "user" or "model".
type Turn struct {
	Role string
	Text string
}

// Provider is the low-level completion client. Implementations hold no
// per-request state and are safe for concurrent use by all requests.
type Provider interface {
	// Complete produces the next assistant turn given ordered history and
	// a new prompt. history may be empty for one-shot generations.
	Complete(ctx context.Context, history []Turn, prompt string) (string, error)
	HealthCheck(ctx context.Context) error
}
