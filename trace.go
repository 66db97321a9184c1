package flexql

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/flexgraphdb/flexql")

// querySpan wraps span.End()/span.Error() behind a small value type:
// callers that never configure an otel SDK TracerProvider get otel's
// default no-op tracer for free, so tracing is always safe to call.
type querySpan struct {
	span trace.Span
}

func (c *Compiler) spanStart(ctx context.Context, name string) (context.Context, querySpan) {
	spanCtx, span := tracer.Start(ctx, name)
	return spanCtx, querySpan{span: span}
}

func (s querySpan) End() { s.span.End() }

func (s querySpan) Error(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}
