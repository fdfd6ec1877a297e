package ai

import "context"

// Provider produces a single completion for a prompt.
type Provider interface {
	Chat(ctx context.Context, prompt string) (string, error)
}
