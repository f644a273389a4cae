package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stemkit/kitbot/internal/generation"
	"github.com/stemkit/kitbot/pkg/models"
)

// Image handles POST /api/image.
func (h *Handlers) Image(w http.ResponseWriter, r *http.Request) {
	if h.Images == nil {
		respondError(w, http.StatusInternalServerError, "image generation credential is not configured")
		return
	}

	var req models.ImageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUpload())).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		respondError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	req.Style = strings.ToLower(strings.TrimSpace(req.Style))
	switch req.Style {
	case "", models.ImageStyleIllustration, models.ImageStyleWorksheet:
	default:
		respondError(w, http.StatusBadRequest, "style must be illustration or worksheet")
		return
	}

	prompt := generation.EnhanceImagePrompt(req.Prompt, req.Style)
	img, err := h.Images.GenerateImage(r.Context(), prompt)
	if err != nil {
		log.Error().Err(err).Msg("Image generation failed")
		respondJSON(w, http.StatusBadGateway, map[string]string{
			"error":  "Sorry, I couldn't create that picture right now. Please try again.",
			"detail": generation.Excerpt(err.Error(), 300),
		})
		return
	}

	respondJSON(w, http.StatusOK, models.ImageResponse{
		ID:       uuid.NewString(),
		MIMEType: img.MIMEType,
		Image:    img.Data,
		Prompt:   prompt,
	})
}
