package trace

import "context"

// ctxState is everything trace keeps in a context: the tracer, the innermost
// open span and the source file being linted.
type ctxState struct {
	tracer Tracer
	span   SpanContext
	file   string
}

type stateKey struct{}

func stateOf(ctx context.Context) ctxState {
	if ctx == nil {
		return ctxState{}
	}
	st, _ := ctx.Value(stateKey{}).(ctxState)
	return st
}

func withState(ctx context.Context, st ctxState) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, stateKey{}, st)
}

// FromContext returns the tracer installed by WithTracer, or Nop.
func FromContext(ctx context.Context) Tracer {
	if t := stateOf(ctx).tracer; t != nil {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx; nil installs Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	st := stateOf(ctx)
	st.tracer = t
	return withState(ctx, st)
}

// SpanContext identifies the innermost open span.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

// CurrentSpan returns the span opened by the nearest Start, zero if none.
func CurrentSpan(ctx context.Context) SpanContext {
	return stateOf(ctx).span
}

func withSpan(ctx context.Context, sc SpanContext) context.Context {
	st := stateOf(ctx)
	st.span = sc
	return withState(ctx, st)
}

// WithFile marks ctx as working on one .cairo file: spans and points
// emitted under it carry a "file" extra.
func WithFile(ctx context.Context, path string) context.Context {
	st := stateOf(ctx)
	st.file = path
	return withState(ctx, st)
}

// File returns the path set by WithFile.
func File(ctx context.Context) string {
	return stateOf(ctx).file
}
