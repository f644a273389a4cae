package server_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemkit/kitbot/internal/config"
	"github.com/stemkit/kitbot/pkg/models"
	"github.com/stemkit/kitbot/pkg/server"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kit.json")
	doc := `{"projects":[{"name":"Mood Lamp"},{"name":"Smart Fan"}],"kitOverview":"A kit of lights and motors."}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	return &config.Config{
		Port:       8080,
		Version:    "test",
		KB:         config.KBConfig{Source: path},
		Generation: config.GenerationConfig{HistoryTurns: 6},
	}
}

func TestNewWithConfig(t *testing.T) {
	srv, err := server.NewWithConfig(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer srv.ShutdownFunc(context.Background())

	assert.Equal(t, 8080, srv.Port)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"test"`)

	// Deterministic intents answer without a text-generation key.
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(`{"message":"list all projects"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Smart Fan")

	// Without an image key the image endpoint reports a configuration error.
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/image", bytes.NewBufferString(`{"prompt":"a lamp"}`)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestNewPipeline_GenerativeWithoutKey(t *testing.T) {
	p := server.NewPipeline(testConfig(t))
	_, err := p.Handle(context.Background(), models.ChatRequest{Message: "why is my Mood Lamp so dim?"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration error")
}
