package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/stemkit/kitbot/pkg/models"
)

type outcomeKey struct{}

// chatOutcome carries what a chat handler decided back out to the request
// log line.
type chatOutcome struct {
	debug    models.DebugInfo
	recorded bool
}

func withChatOutcome(ctx context.Context) (context.Context, *chatOutcome) {
	o := &chatOutcome{}
	return context.WithValue(ctx, outcomeKey{}, o), o
}

// RecordChat attaches a chat result to the request log line and the
// server span.
func RecordChat(ctx context.Context, d models.DebugInfo) {
	if o, ok := ctx.Value(outcomeKey{}).(*chatOutcome); ok {
		o.debug = d
		o.recorded = true
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("kitbot.intent", d.Intent),
		attribute.String("kitbot.kb_mode", d.KBMode),
		attribute.String("kitbot.project", d.DetectedProject),
		attribute.String("kitbot.component", d.DetectedComponent),
		attribute.String("kitbot.support_reason", d.SupportReason),
	)
}
