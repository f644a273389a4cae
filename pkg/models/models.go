// Package models defines the wire types exchanged by the kitbot HTTP API
// and its generation collaborators.
package models

// ── Chat ─────────────────────────────────────────────────────

// Conversation roles accepted in request history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is one turn of a conversation. ContentParts is only set on
// outbound generator messages that carry an image.
type ChatMessage struct {
	Role         string        `json:"role"`
	Content      string        `json:"content"`
	ContentParts []ContentPart `json:"-"`
}

// ContentPart is a piece of multi-modal message content.
type ContentPart struct {
	Type     string `json:"type"` // "text" or "image"
	Text     string `json:"text,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
	Data     []byte `json:"-"`
}

// Attachment is an optional file sent along with a chat message.
type Attachment struct {
	Kind     string `json:"kind"`
	MIMEType string `json:"mimeType,omitempty"`
	Data     []byte `json:"data"` // base64 in JSON
}

// ChatRequest is the inbound chat payload.
type ChatRequest struct {
	Message    string        `json:"message"`
	History    []ChatMessage `json:"history,omitempty"`
	Attachment *Attachment   `json:"attachment,omitempty"`
}

// Response modes reported in DebugInfo.KBMode.
const (
	ModeDeterministic = "deterministic"
	ModeSupport       = "support"
	ModeGenerative    = "generative"
)

// DebugInfo exposes how a reply was produced.
type DebugInfo struct {
	DetectedProject   string `json:"detectedProject"`
	DetectedComponent string `json:"detectedComponent"`
	Intent            string `json:"intent"`
	KBMode            string `json:"kbMode"`
	SupportReason     string `json:"supportReason,omitempty"`
}

// ChatResponse is the outbound chat payload.
type ChatResponse struct {
	ID    string    `json:"id"`
	Text  string    `json:"text"`
	Debug DebugInfo `json:"debug"`
}

// ── Images ───────────────────────────────────────────────────

// Image styles understood by the prompt wrapper.
const (
	ImageStyleIllustration = "illustration"
	ImageStyleWorksheet    = "worksheet"
)

// ImageRequest is the inbound image-generation payload.
type ImageRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style,omitempty"`
}

// GeneratedImage is what an image collaborator returns.
type GeneratedImage struct {
	MIMEType string
	Data     []byte
}

// ImageResponse is the outbound image payload.
type ImageResponse struct {
	ID       string `json:"id"`
	MIMEType string `json:"mimeType"`
	Image    []byte `json:"image"` // base64 in JSON
	Prompt   string `json:"prompt"`
}
