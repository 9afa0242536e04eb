package funcrouter

import (
	"context"
	"time"
)

// OnResolveFunc is called after a routing decision is made, before the
// handler runs. Use it to enrich the context with logging fields or
// trace spans. The returned context is used for the rest of the call.
type OnResolveFunc func(ctx context.Context, source, name string) context.Context

// OnDispatchFunc is called just before the resolved handler executes.
type OnDispatchFunc func(ctx context.Context, source, name string)

// OnSuccessFunc is called after the handler completes successfully.
type OnSuccessFunc func(ctx context.Context, source, name string, duration time.Duration)

// OnFailureFunc is called after the handler returns an error.
type OnFailureFunc func(ctx context.Context, source, name string, err error, duration time.Duration)

// hooks holds all configured hook functions.
type hooks struct {
	onResolve  []OnResolveFunc
	onDispatch []OnDispatchFunc
	onSuccess  []OnSuccessFunc
	onFailure  []OnFailureFunc
}

// WithOnResolve adds a hook called after each routing decision.
// Multiple hooks are called in order, with context chaining through each.
//
// Example:
//
//	funcrouter.WithOnResolve(func(ctx context.Context, source, name string) context.Context {
//	    return logx.WithCtx(ctx, slog.String("route", name), slog.String("via", source))
//	})
func WithOnResolve(fn OnResolveFunc) Option {
	return func(r *Router) {
		r.hooks.onResolve = append(r.hooks.onResolve, fn)
	}
}

// WithOnDispatch adds a hook called just before the handler executes.
// Multiple hooks are called in order.
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(r *Router) {
		r.hooks.onDispatch = append(r.hooks.onDispatch, fn)
	}
}

// WithOnSuccess adds a hook called after the handler completes
// successfully. Multiple hooks are called in order.
//
// Example:
//
//	funcrouter.WithOnSuccess(func(ctx context.Context, source, name string, d time.Duration) {
//	    metrics.Timing("route.success", d, "handler:"+name)
//	})
func WithOnSuccess(fn OnSuccessFunc) Option {
	return func(r *Router) {
		r.hooks.onSuccess = append(r.hooks.onSuccess, fn)
	}
}

// WithOnFailure adds a hook called after the handler fails.
// Multiple hooks are called in order.
func WithOnFailure(fn OnFailureFunc) Option {
	return func(r *Router) {
		r.hooks.onFailure = append(r.hooks.onFailure, fn)
	}
}

// callOnResolve calls OnResolve hooks, chaining the context.
func (r *Router) callOnResolve(ctx context.Context, source RouteSource, name string) context.Context {
	for _, fn := range r.hooks.onResolve {
		ctx = fn(ctx, source.String(), name)
	}
	return ctx
}

// callOnDispatch calls OnDispatch hooks.
func (r *Router) callOnDispatch(ctx context.Context, source RouteSource, name string) {
	for _, fn := range r.hooks.onDispatch {
		fn(ctx, source.String(), name)
	}
}

// callOnSuccess calls OnSuccess hooks.
func (r *Router) callOnSuccess(ctx context.Context, source RouteSource, name string, duration time.Duration) {
	for _, fn := range r.hooks.onSuccess {
		fn(ctx, source.String(), name, duration)
	}
}

// callOnFailure calls OnFailure hooks.
func (r *Router) callOnFailure(ctx context.Context, source RouteSource, name string, err error, duration time.Duration) {
	for _, fn := range r.hooks.onFailure {
		fn(ctx, source.String(), name, err, duration)
	}
}
