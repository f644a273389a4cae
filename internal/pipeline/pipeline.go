// Package pipeline runs one chat request end to end: fetch the knowledge
// base, build its indexes, classify and detect, answer deterministically
// where possible, and otherwise hand a grounded context to the generator.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/stemkit/kitbot/internal/conversation"
	"github.com/stemkit/kitbot/internal/entity"
	"github.com/stemkit/kitbot/internal/generation"
	"github.com/stemkit/kitbot/internal/grounding"
	"github.com/stemkit/kitbot/internal/intent"
	"github.com/stemkit/kitbot/internal/kb"
	"github.com/stemkit/kitbot/internal/support"
	"github.com/stemkit/kitbot/pkg/contracts"
	"github.com/stemkit/kitbot/pkg/models"
)

var tracer = otel.Tracer("kitbot/pipeline")

const (
	defaultHistoryTurns = 6
	excerptLen          = 300
	imageOnlyPrompt     = "Please look at this picture from my kit and help me with it."
)

const systemInstruction = "You are a friendly helper for children building projects with an electronics kit. " +
	"Answer in short, simple sentences a 10-year-old can follow. " +
	"Use only the knowledge base context you are given for project steps, pins, wiring, components and video links. " +
	"If the context does not contain the answer, say you don't know and suggest asking a grown-up or support. " +
	"Never invent pin numbers, wiring, parts or links, and always put safety first."

// Pipeline handles chat requests. It holds no per-request state and is safe
// for concurrent use.
type Pipeline struct {
	source       contracts.KnowledgeSource
	generator    contracts.TextGenerator
	historyTurns int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithGenerator sets the text generator. Without one, requests that need
// generation fail with a ConfigError.
func WithGenerator(g contracts.TextGenerator) Option {
	return func(p *Pipeline) { p.generator = g }
}

// WithHistoryTurns sets how many trailing history turns reach the generator.
func WithHistoryTurns(n int) Option {
	return func(p *Pipeline) {
		if n >= 0 {
			p.historyTurns = n
		}
	}
}

// New creates a pipeline reading from source.
func New(source contracts.KnowledgeSource, opts ...Option) *Pipeline {
	p := &Pipeline{source: source, historyTurns: defaultHistoryTurns}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// resolved is the per-request outcome of detection and history resolution.
type resolved struct {
	text      string
	tag       intent.Tag
	project   string
	component string
	history   []models.ChatMessage
}

// Handle answers one chat request.
func (p *Pipeline) Handle(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	text := strings.TrimSpace(req.Message)
	if err := validate(text, req.Attachment); err != nil {
		return nil, err
	}
	history, err := conversation.Normalize(req.History)
	if err != nil {
		return nil, &InputError{Msg: err.Error()}
	}

	ix, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	r := resolved{
		text:      text,
		tag:       intent.Classify(text, ix.ProjectNames, ix.Components),
		project:   entity.DetectProject(text, ix.ProjectNames),
		component: entity.DetectComponent(text, ix.Components),
		history:   history,
	}

	var resp *models.ChatResponse
	if reply, ok := deterministicReply(ix, &r); ok {
		resp = newResponse(reply, r, models.ModeDeterministic, support.None)
	} else {
		resp, err = p.respond(ctx, ix, r, req.Attachment)
		if err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("id", resp.ID).
		Str("intent", resp.Debug.Intent).
		Str("project", resp.Debug.DetectedProject).
		Str("component", resp.Debug.DetectedComponent).
		Str("mode", resp.Debug.KBMode).
		Str("support_reason", resp.Debug.SupportReason).
		Int("kb_projects", len(ix.ProjectNames)).
		Msg("Chat handled")

	return resp, nil
}

func validate(text string, att *models.Attachment) error {
	if att != nil {
		if att.Kind != "" && att.Kind != "image" {
			return &InputError{Msg: "unsupported attachment kind " + att.Kind}
		}
		if len(att.Data) == 0 {
			att = nil
		}
	}
	if text == "" && att == nil {
		return &InputError{Msg: "message or image is required"}
	}
	return nil
}

// load fetches a fresh KB snapshot and builds its indexes.
func (p *Pipeline) load(ctx context.Context) (*kb.Indexes, error) {
	if p.source == nil {
		return nil, &ConfigError{Msg: kb.ErrSourceUnset.Error()}
	}

	fetchCtx, span := tracer.Start(ctx, "kb.fetch")
	doc, err := p.source.Fetch(fetchCtx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		span.End()
		if errors.Is(err, kb.ErrSourceUnset) {
			return nil, &ConfigError{Msg: err.Error()}
		}
		log.Error().Err(err).Msg("Knowledge base fetch failed")
		return nil, &KnowledgeError{Err: err}
	}
	span.End()

	_, span = tracer.Start(ctx, "kb.index")
	defer span.End()
	ix := kb.BuildFromDocument(doc)
	span.SetAttributes(
		attribute.Int("kb.projects", len(ix.ProjectNames)),
		attribute.Int("kb.components", ix.Components.Len()),
	)
	return ix, nil
}

// deterministicReply answers intents that need no generation. It may fill
// r.project from history for project-video requests.
func deterministicReply(ix *kb.Indexes, r *resolved) (string, bool) {
	if !r.tag.Deterministic() {
		return "", false
	}
	switch r.tag {
	case intent.KitOverview:
		return grounding.KitOverviewAnswer(ix.KitOverview), true
	case intent.ComponentsList:
		return grounding.ComponentsListAnswer(ix.Components), true
	case intent.ListProjects:
		return grounding.ProjectListAnswer(ix.ProjectNames), true
	case intent.ProjectVideos:
		if r.project == "" {
			r.project = conversation.Resolve(r.history, ix.ProjectNames, nil).LastProject
		}
		if r.project == "" {
			return grounding.ClarifyProjectAnswer(ix.ProjectNames), true
		}
		return grounding.ProjectVideosAnswer(r.project, ix.LessonsFor(r.project)), true
	}
	return "", false
}

// respond covers the non-deterministic path: history fallback, support
// escalation, then grounded generation.
func (p *Pipeline) respond(ctx context.Context, ix *kb.Indexes, r resolved, att *models.Attachment) (*models.ChatResponse, error) {
	switch {
	case r.project == "" && r.component == "":
		prev := conversation.Resolve(r.history, ix.ProjectNames, ix.Components)
		r.project, r.component = prev.LastProject, prev.LastComponent
	case r.project == "":
		r.project = conversation.Resolve(r.history, ix.ProjectNames, nil).LastProject
	}

	reason := support.Detect(support.Input{
		Text:              r.text,
		DetectedProject:   r.project,
		ProjectBlock:      ix.Block(r.project),
		DetectedComponent: r.component,
	})
	if reason != support.None && support.ShouldEscalate(reason, ix.Support) {
		return newResponse(support.Message(reason, ix.Support), r, models.ModeSupport, reason), nil
	}

	if p.generator == nil {
		return nil, &ConfigError{Msg: "text generation credential is not configured"}
	}

	messages := buildMessages(BuildContext(ix, r.tag, r.text, r.project, r.component), conversation.Recent(r.history, p.historyTurns), r.text, att)

	genCtx, span := tracer.Start(ctx, "pipeline.generate")
	span.SetAttributes(
		attribute.String("kitbot.intent", r.tag.String()),
		attribute.String("kitbot.project", r.project),
		attribute.Int("kitbot.messages", len(messages)),
	)
	raw, err := p.generator.Generate(genCtx, messages)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		span.End()
		log.Error().Err(err).Str("intent", r.tag.String()).Msg("Generation failed")
		return nil, &GenerationError{Err: err, Excerpt: generationExcerpt(err)}
	}
	span.End()

	reply := generation.CleanReply(raw)
	if reply == "" {
		err := errors.New("generator returned an empty reply")
		return nil, &GenerationError{Err: err, Excerpt: err.Error()}
	}
	return newResponse(reply, r, models.ModeGenerative, reason), nil
}

// BuildContext renders the grounded context for a resolved request. Pin and
// safety text fall back to built-in defaults when the KB has none.
func BuildContext(ix *kb.Indexes, tag intent.Tag, text, project, component string) string {
	pin := ix.PinText
	if strings.TrimSpace(pin) == "" {
		pin = grounding.DefaultPinText
	}
	safety := ix.SafetyText
	if strings.TrimSpace(safety) == "" {
		safety = grounding.DefaultSafetyText
	}

	in := grounding.Input{
		Project:           project,
		ProjectBlock:      ix.Block(project),
		Lessons:           ix.Lessons,
		PinText:           pin,
		SafetyText:        safety,
		KitOverview:       ix.KitOverview,
		ComponentsSummary: grounding.ComponentsSummary(ix.Components),
		ProjectsSummary:   grounding.ProjectsSummary(ix.ProjectNames, project),
		Intent:            tag,
		WantLessons:       intent.WantsLessons(tag, text),
	}
	if c, ok := ix.Components.Get(component); ok {
		in.Component = &c
	}
	return grounding.Assemble(in)
}

func buildMessages(groundedContext string, history []models.ChatMessage, text string, att *models.Attachment) []models.ChatMessage {
	messages := make([]models.ChatMessage, 0, len(history)+3)
	messages = append(messages,
		models.ChatMessage{Role: models.RoleSystem, Content: systemInstruction},
		models.ChatMessage{Role: models.RoleSystem, Content: "Knowledge base context:\n\n" + groundedContext},
	)
	messages = append(messages, history...)

	if text == "" {
		text = imageOnlyPrompt
	}
	user := models.ChatMessage{Role: models.RoleUser, Content: text}
	if att != nil && len(att.Data) > 0 {
		mime := att.MIMEType
		if mime == "" {
			mime = "image/jpeg"
		}
		user.ContentParts = []models.ContentPart{
			{Type: "text", Text: text},
			{Type: "image", MIMEType: mime, Data: att.Data},
		}
	}
	return append(messages, user)
}

func generationExcerpt(err error) string {
	var se *generation.StatusError
	if errors.As(err, &se) {
		return se.Excerpt
	}
	return generation.Excerpt(err.Error(), excerptLen)
}

func newResponse(text string, r resolved, mode string, reason support.Reason) *models.ChatResponse {
	return &models.ChatResponse{
		ID:   uuid.NewString(),
		Text: text,
		Debug: models.DebugInfo{
			DetectedProject:   r.project,
			DetectedComponent: r.component,
			Intent:            r.tag.String(),
			KBMode:            mode,
			SupportReason:     string(reason),
		},
	}
}
