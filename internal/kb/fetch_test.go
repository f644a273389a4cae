package kb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemkit/kitbot/internal/kb"
)

func TestSource_FetchHTTP(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"projectNames": ["Mood Lamp"], "kitOverview": "A kit."}`))
	}))
	defer srv.Close()

	src := kb.NewSource(srv.URL, kb.WithHTTPClient(srv.Client()))
	for i := 0; i < 2; i++ {
		doc, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "A kit.", doc["kitOverview"])
	}
	assert.Equal(t, 2, calls, "every fetch must hit the source")
}

func TestSource_FetchHTTPNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := kb.NewSource(srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "bucket not found")
}

func TestSource_FetchHTTPNon200LongBody(t *testing.T) {
	body := strings.Repeat("é", 300)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	_, err := kb.NewSource(srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()), "error must stay valid UTF-8")
	assert.Contains(t, err.Error(), strings.Repeat("é", 200)+"...")
	assert.NotContains(t, err.Error(), strings.Repeat("é", 201))
}

func TestSource_FetchHTTPInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"projects": [`))
	}))
	defer srv.Close()

	_, err := kb.NewSource(srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode knowledge base JSON")
}

func TestSource_Unset(t *testing.T) {
	_, err := kb.NewSource("  ").Fetch(context.Background())
	if !errors.Is(err, kb.ErrSourceUnset) {
		t.Errorf("Fetch() error = %v, want ErrSourceUnset", err)
	}
}

func TestSource_FetchYAMLFile(t *testing.T) {
	yamlDoc := strings.Join([]string{
		"projectNames:",
		"  - Mood Lamp",
		"projects:",
		"  - name: Mood Lamp",
		"    difficulty: Easy",
		"    lessons:",
		"      - name: Mood Lamp Build",
		"        videoLinks:",
		"          - https://videos.example.com/mood-build",
		"support:",
		"  enabled: true",
		"  triggers: [PART_MISSING]",
	}, "\n")
	path := filepath.Join(t.TempDir(), "kb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o644))

	doc, err := kb.NewSource(path).Fetch(context.Background())
	require.NoError(t, err)

	ix := kb.BuildFromDocument(doc)
	assert.Equal(t, []string{"Mood Lamp"}, ix.ProjectNames)
	assert.Contains(t, ix.Block("Mood Lamp"), "Difficulty: Easy")
	require.Len(t, ix.LessonsFor("Mood Lamp"), 1)
	assert.True(t, ix.Support.Triggered("PART_MISSING"))
}

func TestSource_FetchJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"kitOverview": "From disk."}`), 0o644))

	doc, err := kb.NewSource("file://" + path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "From disk.", doc["kitOverview"])
}

func TestSource_MissingFile(t *testing.T) {
	_, err := kb.NewSource(filepath.Join(t.TempDir(), "nope.json")).Fetch(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, kb.ErrSourceUnset))
}
