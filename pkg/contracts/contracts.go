// Package contracts defines the collaborator interfaces the kitbot core
// depends on. Concrete implementations live in internal/kb and
// internal/generation; tests substitute fakes.
package contracts

import (
	"context"

	"github.com/stemkit/kitbot/pkg/models"
)

// KnowledgeSource fetches a fresh copy of the raw knowledge-base document.
// Implementations must not cache across calls.
type KnowledgeSource interface {
	Fetch(ctx context.Context) (map[string]any, error)
}

// TextGenerator turns an ordered message list into a single reply.
type TextGenerator interface {
	Generate(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// ImageGenerator turns a prompt into image bytes.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*models.GeneratedImage, error)
}
