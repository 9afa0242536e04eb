package funcrouter

import (
	"context"
	"time"
)

// Router resolves each input to exactly one handler and delegates the
// invocation to it. Routing instructions are read, in priority order,
// from message headers and from the routing properties; see Apply.
//
// A Router holds no per-request state and is safe for concurrent use.
// Properties are re-read through the PropertiesSource on every call, so
// configuration swaps take effect between calls without restarting.
type Router struct {
	catalog  Catalog
	props    PropertiesSource
	resolver *ExpressionResolver
	hooks    hooks
}

// Option configures a Router.
type Option func(*Router)

// New creates a Router resolving handlers from catalog.
//
// Example:
//
//	r := funcrouter.New(cat,
//	    funcrouter.WithProperties(funcrouter.Properties{Definition: "uppercase"}),
//	    funcrouter.WithOnFailure(func(ctx context.Context, source, name string, err error, d time.Duration) {
//	        logger.Error("handler failed", "name", name, "error", err)
//	    }),
//	)
func New(catalog Catalog, opts ...Option) *Router {
	r := &Router{
		catalog:  catalog,
		props:    StaticProperties(Properties{}),
		resolver: NewExpressionResolver(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithProperties sets fixed routing properties.
func WithProperties(p Properties) Option {
	return func(r *Router) { r.props = StaticProperties(p) }
}

// WithPropertiesSource sets the source the router reads properties from
// on every decision. Use DynamicProperties for hot reload.
func WithPropertiesSource(src PropertiesSource) Option {
	return func(r *Router) { r.props = src }
}

// WithResolver replaces the expression resolver. Share one resolver
// between routers to share its compiled-expression cache.
func WithResolver(resolver *ExpressionResolver) Option {
	return func(r *Router) { r.resolver = resolver }
}

// Apply routes input to a handler and returns the handler's result. The
// result mirrors the input shape: scalar in, scalar out; stream in,
// stream out.
//
// The handler name is taken from the first available source, in order:
//
//  1. the message's definition header
//  2. the message's routing-expression header, evaluated against the message
//  3. the routing-expression property, evaluated against the input
//  4. the definition property
//
// A *Stream input with neither property configured is not routed as a
// whole: Apply returns a stream of the same cardinality that routes
// each element independently as it is driven, preserving laziness and
// emission order.
func (r *Router) Apply(ctx context.Context, input any) (any, error) {
	_, isStream := input.(*Stream)
	return r.route(ctx, input, isStream)
}

// route runs one level of the decision procedure. fromStream records
// whether the top-level input of the call chain was a stream; the
// message branches use it to reject per-element routing into
// stream-input handlers.
func (r *Router) route(ctx context.Context, input any, fromStream bool) (any, error) {
	props := r.props.Routing()
	switch v := input.(type) {
	case Message:
		return r.routeWith(ctx, routeCandidates(&v, props), v, input, fromStream)
	case *Message:
		if v != nil {
			return r.routeWith(ctx, routeCandidates(v, props), *v, input, fromStream)
		}
	case *Stream:
		return r.routeStream(ctx, v, props)
	}
	return r.routeWith(ctx, routeCandidates(nil, props), input, input, fromStream)
}

// routeStream routes a stream input. If either property is configured
// it applies to the stream as a whole and the resolved handler receives
// the stream as a single argument. Otherwise the decision is deferred
// to each element.
func (r *Router) routeStream(ctx context.Context, s *Stream, props Properties) (any, error) {
	if cs := routeCandidates(nil, props); len(cs) > 0 {
		return r.routeWith(ctx, cs, s, s, false)
	}
	return s.Map(func(v any) (any, error) {
		if _, ok := v.(*Stream); ok {
			return nil, ErrNestedStream
		}
		return r.route(ctx, v, true)
	}), nil
}

// candidate is one prospective routing instruction: either a literal
// definition name or an expression still to be evaluated.
type candidate struct {
	source  RouteSource
	literal string
	expr    string
}

// routeCandidates lists the usable routing instructions for one
// decision, highest priority first. Blank headers and properties are
// absent, not candidates. msg is nil for non-message inputs.
func routeCandidates(msg *Message, props Properties) []candidate {
	var cs []candidate
	if msg != nil {
		if name, ok := msg.Header(DefinitionHeader); ok {
			cs = append(cs, candidate{source: SourceDefinitionHeader, literal: name})
		}
		if text, ok := msg.Header(RoutingExpressionHeader); ok {
			cs = append(cs, candidate{source: SourceExpressionHeader, expr: text})
		}
	}
	if hasText(props.RoutingExpression) {
		cs = append(cs, candidate{source: SourceExpressionProperty, expr: props.RoutingExpression})
	}
	if hasText(props.Definition) {
		cs = append(cs, candidate{source: SourceDefinitionProperty, literal: props.Definition})
	}
	return cs
}

// routeWith resolves the highest-priority candidate to a handler name
// and dispatches input to it. root is what expressions evaluate
// against; input is what the handler receives.
func (r *Router) routeWith(ctx context.Context, cs []candidate, root, input any, fromStream bool) (any, error) {
	if len(cs) == 0 {
		return nil, ErrUnroutable
	}
	c := cs[0]
	name := c.literal
	if c.expr != "" {
		resolved, err := r.resolver.Resolve(c.expr, root)
		if err != nil {
			return nil, &ExpressionError{Expression: c.expr, Source: c.source, Err: err}
		}
		name = resolved
	}
	return r.dispatch(ctx, name, c.source, input, fromStream)
}

// dispatch looks the handler up, enforces the stream/scalar conflict
// rule, and invokes it with hooks and timing around the call.
func (r *Router) dispatch(ctx context.Context, name string, source RouteSource, input any, fromStream bool) (any, error) {
	h := r.catalog.Lookup(name)
	if h == nil {
		return nil, &NotFoundError{Name: name, Source: source}
	}
	if fromStream && source.fromHeader() && h.StreamInput() {
		return nil, &ConflictError{Name: name, Source: source}
	}

	ctx = r.callOnResolve(ctx, source, h.Name())
	r.callOnDispatch(ctx, source, h.Name())

	start := time.Now()
	out, err := h.Apply(ctx, input)
	duration := time.Since(start)

	if err != nil {
		r.callOnFailure(ctx, source, h.Name(), err, duration)
		return nil, err
	}
	r.callOnSuccess(ctx, source, h.Name(), duration)
	return out, nil
}
