// Package handlers implements the HTTP handlers for the kitbot API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/stemkit/kitbot/internal/pipeline"
	"github.com/stemkit/kitbot/pkg/contracts"
	"github.com/stemkit/kitbot/pkg/models"
)

// ChatService answers one chat request. *pipeline.Pipeline implements it.
type ChatService interface {
	Handle(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// Handlers holds all handler dependencies.
type Handlers struct {
	Pipeline ChatService
	Images   contracts.ImageGenerator
	// MaxUploadBytes bounds request bodies, including multipart uploads.
	MaxUploadBytes int64
}

const defaultMaxUpload = 10 << 20

// New creates a Handlers instance. images may be nil when image generation
// is not configured.
func New(chat ChatService, images contracts.ImageGenerator) *Handlers {
	return &Handlers{Pipeline: chat, Images: images, MaxUploadBytes: defaultMaxUpload}
}

func (h *Handlers) maxUpload() int64 {
	if h.MaxUploadBytes > 0 {
		return h.MaxUploadBytes
	}
	return defaultMaxUpload
}

// ── Helpers ─────────────────────────────────────────────────

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondPipelineError maps pipeline failures to HTTP statuses. Generation
// failures carry the user-facing fallback text plus a bounded excerpt.
func respondPipelineError(w http.ResponseWriter, err error) {
	var (
		inputErr *pipeline.InputError
		cfgErr   *pipeline.ConfigError
		kbErr    *pipeline.KnowledgeError
		genErr   *pipeline.GenerationError
	)
	switch {
	case errors.As(err, &inputErr):
		respondError(w, http.StatusBadRequest, inputErr.Msg)
	case errors.As(err, &cfgErr):
		respondError(w, http.StatusInternalServerError, cfgErr.Error())
	case errors.As(err, &kbErr):
		respondError(w, http.StatusBadGateway, kbErr.Error())
	case errors.As(err, &genErr):
		respondJSON(w, http.StatusBadGateway, map[string]string{
			"error":  pipeline.FallbackReply,
			"detail": genErr.Excerpt,
		})
	default:
		log.Error().Err(err).Msg("Unhandled chat error")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
