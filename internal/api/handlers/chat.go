package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/stemkit/kitbot/internal/api/middleware"
	"github.com/stemkit/kitbot/pkg/models"
)

// Chat handles POST /api/chat with either a JSON or a multipart body.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload())

	var (
		req models.ChatRequest
		err error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		req, err = h.decodeMultipartChat(r)
	} else {
		err = json.NewDecoder(r.Body).Decode(&req)
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.Pipeline.Handle(r.Context(), req)
	if err != nil {
		respondPipelineError(w, err)
		return
	}
	middleware.RecordChat(r.Context(), resp.Debug)
	respondJSON(w, http.StatusOK, resp)
}

// decodeMultipartChat reads the "message", "history" (a JSON array) and
// optional "image" file fields.
func (h *Handlers) decodeMultipartChat(r *http.Request) (models.ChatRequest, error) {
	var req models.ChatRequest
	if err := r.ParseMultipartForm(h.maxUpload()); err != nil {
		return req, err
	}
	req.Message = r.FormValue("message")

	if raw := strings.TrimSpace(r.FormValue("history")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.History); err != nil {
			return req, fmt.Errorf("history: %w", err)
		}
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return req, nil
	}
	if err != nil {
		return req, fmt.Errorf("image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return req, fmt.Errorf("image: %w", err)
	}
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return req, fmt.Errorf("image: unsupported content type %q", mimeType)
	}
	req.Attachment = &models.Attachment{Kind: "image", MIMEType: mimeType, Data: data}
	return req, nil
}
