// Package funcrouter routes arbitrary inputs to named handlers at call
// time, deciding the target from message metadata, routing expressions,
// or configured defaults.
//
// The package is the dispatch core of a function-hosting setup: a
// transport (HTTP, broker consumer, RPC) delivers an input, the router
// picks exactly one handler from a catalog, invokes it, and hands the
// result back. Handler registration and transport wiring live outside
// this package.
//
// # Quick Start
//
// Register handlers in a catalog and route messages by header:
//
//	cat := funcrouter.NewCatalog()
//	cat.Register(funcrouter.HandlerFunc("uppercase", func(ctx context.Context, in any) (any, error) {
//	    msg := in.(funcrouter.Message)
//	    return strings.ToUpper(msg.Payload.(string)), nil
//	}))
//
//	r := funcrouter.New(cat)
//
//	out, err := r.Apply(ctx, funcrouter.Message{
//	    Payload: "hello",
//	    Headers: map[string]any{funcrouter.DefinitionHeader: "uppercase"},
//	})
//
// # Decision Order
//
// Each call resolves the handler name from the first available source:
//
//  1. The message's "spring.cloud.function.definition" header, used as
//     a literal name.
//  2. The message's "spring.cloud.function.routing-expression" header,
//     evaluated against the message.
//  3. The RoutingExpression property, evaluated against the input.
//  4. The Definition property, used as a literal name.
//
// Blank values are treated as absent. If no source yields a name the
// call fails with ErrUnroutable; there is no fallback route. A resolved
// name missing from the catalog fails with NotFoundError, never a
// silent skip.
//
// # Routing Expressions
//
// Expressions are evaluated with expr-lang/expr. A Message is bound as
// payload and headers, with map keys addressable as attributes:
//
//	headers.destination            // route by a custom header
//	payload.kind                   // route by a payload field
//	"fallback"                     // a literal name
//
// Compiled programs are cached per router (share a resolver between
// routers with WithResolver to share the cache).
//
// # Streams
//
// A *Stream input is a lazy, possibly-infinite sequence, single-valued
// (Mono) or multi-valued (Flux). When the RoutingExpression or
// Definition property is set, the stream is routed as a whole: the
// property resolves once and the handler receives the *Stream as its
// argument, which suits handlers that declare a stream input.
//
// When neither property is set, Apply returns a stream of the same
// cardinality that routes each element independently — the element's
// own headers decide its handler. No element is routed or invoked until
// the returned stream is driven, order is preserved, and nothing is
// buffered. Routing a stream element by header to a handler that
// declares a stream input is a usage error (ConflictError): such a
// handler needs the whole stream and must be selected by property.
//
// # Properties
//
// Properties are read through a PropertiesSource on every decision.
// StaticProperties fixes them; DynamicProperties swaps complete
// snapshots atomically for hot reload:
//
//	props := funcrouter.NewDynamicProperties(funcrouter.Properties{Definition: "v1"})
//	r := funcrouter.New(cat, funcrouter.WithPropertiesSource(props))
//	// later, without restarting:
//	props.Store(funcrouter.Properties{Definition: "v2"})
//
// # Catalog
//
// Catalog is the lookup contract; SimpleCatalog is the map-backed
// implementation. A composite definition ("validate|enrich|persist", or
// comma-separated) resolves to a left-to-right pipeline, synthesized
// and cached on first lookup. Handlers registered with WithContentType
// are preferred by LookupWithContentType.
//
// # Hooks
//
// Hooks provide observability without coupling to a logging or metrics
// system:
//
//	r := funcrouter.New(cat,
//	    funcrouter.WithOnResolve(func(ctx context.Context, source, name string) context.Context {
//	        return logx.WithCtx(ctx, slog.String("route", name), slog.String("via", source))
//	    }),
//	    funcrouter.WithOnSuccess(func(ctx context.Context, source, name string, d time.Duration) {
//	        metrics.Timing("route.success", d, "handler:"+name)
//	    }),
//	)
//
// Available hooks: WithOnResolve (context chaining), WithOnDispatch,
// WithOnSuccess, WithOnFailure. Multiple hooks of the same type run in
// order.
//
// # Errors
//
//   - ErrUnroutable: no routing source yielded a name for a scalar input.
//   - NotFoundError: a resolved name has no catalog entry; carries the
//     name and the source that produced it.
//   - ExpressionError: an expression failed to compile or evaluate, or
//     produced a blank or non-string result; wraps the engine error.
//   - ConflictError: per-element routing selected a stream-input handler.
//   - ErrNestedStream: a stream element was itself a stream during
//     per-element routing.
//
// All errors surface synchronously to the caller of Apply. Nothing is
// retried and no default route is substituted.
//
// # Thread Safety
//
// Router holds no per-request state and is safe for concurrent use.
// Register catalog handlers during setup, before routing begins.
package funcrouter
