package kb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// ErrSourceUnset is returned when no KB location is configured.
var ErrSourceUnset = errors.New("knowledge base source is not configured")

// maxDocumentBytes bounds how much of a KB response is read.
const maxDocumentBytes = 16 << 20

// Source fetches the KB document from an http(s) URL or a local file on
// every call. Nothing is cached between calls.
type Source struct {
	location string
	client   *http.Client
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithHTTPClient overrides the HTTP client used for remote sources.
func WithHTTPClient(c *http.Client) SourceOption {
	return func(s *Source) { s.client = c }
}

// NewSource creates a Source for the given location.
func NewSource(location string, opts ...SourceOption) *Source {
	s := &Source{
		location: strings.TrimSpace(location),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch retrieves and decodes the document.
func (s *Source) Fetch(ctx context.Context) (map[string]any, error) {
	switch {
	case s.location == "":
		return nil, ErrSourceUnset
	case strings.HasPrefix(s.location, "http://"), strings.HasPrefix(s.location, "https://"):
		return s.fetchHTTP(ctx)
	default:
		return s.readFile()
	}
}

func (s *Source) fetchHTTP(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch knowledge base: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("knowledge base returned %d: %s", resp.StatusCode, excerpt(string(body), 200))
	}
	return DecodeJSON(body)
}

func (s *Source) readFile() (map[string]any, error) {
	path := strings.TrimPrefix(s.location, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return DecodeJSON(data)
	}
}

// DecodeJSON decodes a JSON KB document. The root must be an object.
func DecodeJSON(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode knowledge base JSON: %w", err)
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	return doc, nil
}

// DecodeYAML decodes a YAML KB document. The root must be a mapping.
func DecodeYAML(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode knowledge base YAML: %w", err)
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	return doc, nil
}

func excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
