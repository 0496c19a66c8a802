package pipeline

import (
	"context"
)

// HandlerFunc handles a request. Results travel through the closure built by Send.
type HandlerFunc func(ctx context.Context, req Request) error

// Behavior wraps a handler with cross-cutting policy
type Behavior func(next HandlerFunc) HandlerFunc

// Pipeline is an ordered list of behaviors; the first one is outermost
type Pipeline struct {
	behaviors []Behavior
}

// New creates a pipeline applying behaviors in the given order
func New(behaviors ...Behavior) *Pipeline {
	return &Pipeline{behaviors: behaviors}
}

// Then wraps h with every behavior of the pipeline
func (p *Pipeline) Then(h HandlerFunc) HandlerFunc {
	for i := len(p.behaviors) - 1; i >= 0; i-- {
		h = p.behaviors[i](h)
	}
	return h
}

// Send runs req through the pipeline and the typed handler.
func Send[Req Request, Res any](
	ctx context.Context,
	p *Pipeline,
	req Req,
	handle func(context.Context, Req) (Res, error),
) (Res, error) {
	var res Res
	final := func(ctx context.Context, r Request) error {
		out, err := handle(ctx, r.(Req))
		if err != nil {
			return err
		}
		res = out
		return nil
	}

	if err := p.Then(final)(ctx, req); err != nil {
		var zero Res
		return zero, err
	}
	return res, nil
}

// Exec is Send for handlers that return nothing but an error.
func Exec[Req Request](
	ctx context.Context,
	p *Pipeline,
	req Req,
	handle func(context.Context, Req) error,
) error {
	_, err := Send(ctx, p, req, func(ctx context.Context, r Req) (struct{}, error) {
		return struct{}{}, handle(ctx, r)
	})
	return err
}

// Wrap returns a pipeline that runs outer around every behavior of p
func (p *Pipeline) Wrap(outer ...Behavior) *Pipeline {
	behaviors := make([]Behavior, 0, len(outer)+len(p.behaviors))
	behaviors = append(behaviors, outer...)
	behaviors = append(behaviors, p.behaviors...)
	return &Pipeline{behaviors: behaviors}
}
