// Package conversation works over the request-supplied chat history: it
// validates and trims it, and recovers the project or component an earlier
// turn was about. History is read-only here; nothing is stored between
// requests.
package conversation

import (
	"fmt"
	"strings"

	"github.com/stemkit/kitbot/internal/entity"
	"github.com/stemkit/kitbot/internal/kb"
	"github.com/stemkit/kitbot/pkg/models"
)

// maxTurnChars bounds a single forwarded history turn.
const maxTurnChars = 2000

// Context is what the resolver recovered from history.
type Context struct {
	LastProject   string
	LastComponent string
}

// Resolve scans history from the most recent turn backwards and records the
// first project and the first component it can detect. It stops as soon as
// both are known.
func Resolve(history []models.ChatMessage, projectNames []string, components *kb.ComponentIndex) Context {
	var out Context
	for i := len(history) - 1; i >= 0; i-- {
		text := strings.TrimSpace(history[i].Content)
		if text == "" {
			continue
		}
		if out.LastProject == "" {
			out.LastProject = entity.DetectProject(text, projectNames)
		}
		if out.LastComponent == "" {
			out.LastComponent = entity.DetectComponent(text, components)
		}
		if out.LastProject != "" && out.LastComponent != "" {
			break
		}
	}
	return out
}

// Normalize validates history roles and maps aliases ("model", "bot") to
// assistant. It returns a new slice; the input is not modified.
func Normalize(history []models.ChatMessage) ([]models.ChatMessage, error) {
	out := make([]models.ChatMessage, 0, len(history))
	for i, m := range history {
		role := strings.ToLower(strings.TrimSpace(m.Role))
		switch role {
		case models.RoleUser:
		case models.RoleAssistant, "model", "bot":
			role = models.RoleAssistant
		default:
			return nil, fmt.Errorf("history[%d]: unsupported role %q", i, m.Role)
		}
		out = append(out, models.ChatMessage{Role: role, Content: m.Content})
	}
	return out, nil
}

// Recent returns the last n non-empty turns, each capped at maxTurnChars.
func Recent(history []models.ChatMessage, n int) []models.ChatMessage {
	if n <= 0 {
		return nil
	}
	var picked []models.ChatMessage
	for i := len(history) - 1; i >= 0 && len(picked) < n; i-- {
		content := strings.TrimSpace(history[i].Content)
		if content == "" {
			continue
		}
		if r := []rune(content); len(r) > maxTurnChars {
			content = string(r[:maxTurnChars]) + "..."
		}
		picked = append(picked, models.ChatMessage{Role: history[i].Role, Content: content})
	}
	for i, j := 0, len(picked)-1; i < j; i, j = i+1, j-1 {
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked
}
