package pipeline

import "fmt"

// FallbackReply is shown to end users when generation fails.
const FallbackReply = "Sorry, I couldn't generate a response right now. Please try again."

// InputError is a client mistake: empty message, malformed history or an
// unsupported attachment.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return "invalid input: " + e.Msg }

// ConfigError means the service is missing configuration the request needs.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "configuration error: " + e.Msg }

// KnowledgeError wraps a failed knowledge-base fetch or parse.
type KnowledgeError struct {
	Err error
}

func (e *KnowledgeError) Error() string { return fmt.Sprintf("knowledge base unavailable: %v", e.Err) }
func (e *KnowledgeError) Unwrap() error { return e.Err }

// GenerationError wraps a failed call to the text generator. Excerpt is a
// bounded diagnostic safe to return to callers.
type GenerationError struct {
	Err     error
	Excerpt string
}

func (e *GenerationError) Error() string { return fmt.Sprintf("generation failed: %v", e.Err) }
func (e *GenerationError) Unwrap() error { return e.Err }
