package funcrouter

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Handler is an invocable unit of logic looked up by name. The router
// never constructs handlers; it only resolves them from a Catalog and
// invokes them.
type Handler interface {
	// Name is the canonical definition name the handler was registered
	// under.
	Name() string

	// StreamInput reports whether the handler's declared input is a
	// whole stream rather than individual values.
	StreamInput() bool

	// Supplier reports whether the handler is a zero-argument producer.
	// Suppliers ignore the input value passed to Apply.
	Supplier() bool

	// Apply invokes the handler.
	Apply(ctx context.Context, in any) (any, error)
}

// Catalog maps definition names to handlers. Lookup returns nil when no
// entry matches; the router treats that as fatal for the decision.
type Catalog interface {
	Lookup(name string) Handler
	LookupWithContentType(name, contentType string) Handler
	Register(h Handler) error
}

// HandlerOption configures a handler built with HandlerFunc.
type HandlerOption func(*handlerFunc)

// WithStreamInput marks the handler's declared input as a stream type.
func WithStreamInput() HandlerOption {
	return func(h *handlerFunc) { h.streamInput = true }
}

// WithSupplier marks the handler as a zero-argument producer.
func WithSupplier() HandlerOption {
	return func(h *handlerFunc) { h.supplier = true }
}

// WithContentType registers the handler for a specific content type.
// LookupWithContentType prefers such an entry over the untyped one.
func WithContentType(contentType string) HandlerOption {
	return func(h *handlerFunc) { h.contentType = contentType }
}

// HandlerFunc adapts a function into a Handler.
//
//	cat.Register(funcrouter.HandlerFunc("uppercase", func(ctx context.Context, in any) (any, error) {
//	    return strings.ToUpper(in.(string)), nil
//	}))
func HandlerFunc(name string, fn func(ctx context.Context, in any) (any, error), opts ...HandlerOption) Handler {
	h := &handlerFunc{name: name, fn: fn}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type handlerFunc struct {
	name        string
	streamInput bool
	supplier    bool
	contentType string
	fn          func(context.Context, any) (any, error)
}

func (h *handlerFunc) Name() string      { return h.name }
func (h *handlerFunc) StreamInput() bool { return h.streamInput }
func (h *handlerFunc) Supplier() bool    { return h.supplier }

func (h *handlerFunc) Apply(ctx context.Context, in any) (any, error) {
	return h.fn(ctx, in)
}

// contentTyped is implemented by handlers registered for a specific
// content type.
type contentTyped interface {
	ContentType() string
}

func (h *handlerFunc) ContentType() string { return h.contentType }

// ErrBlankName is returned when registering a handler without a name.
var ErrBlankName = errors.New("handler name must not be blank")

// SimpleCatalog is a map-backed Catalog. Registration happens during
// setup; lookups are safe for concurrent use and may synthesize
// composite handlers, which are registered under their composite name
// on first resolution.
type SimpleCatalog struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	typed    map[string]Handler
}

// NewCatalog returns an empty SimpleCatalog.
func NewCatalog() *SimpleCatalog {
	return &SimpleCatalog{
		handlers: make(map[string]Handler),
		typed:    make(map[string]Handler),
	}
}

// Register adds a handler under its name, replacing any previous entry.
// Handlers carrying a content type are registered for that type and do
// not shadow the untyped entry.
func (c *SimpleCatalog) Register(h Handler) error {
	if !hasText(h.Name()) {
		return ErrBlankName
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if ct, ok := h.(contentTyped); ok && ct.ContentType() != "" {
		c.typed[typedKey(h.Name(), ct.ContentType())] = h
		return nil
	}
	c.handlers[h.Name()] = h
	return nil
}

// Lookup resolves a definition name. A composite name (stages joined by
// '|' or ',') resolves to a left-to-right pipeline of the named
// handlers; the synthesized pipeline is cached under the composite name.
// Returns nil when no entry matches.
func (c *SimpleCatalog) Lookup(name string) Handler {
	if !hasText(name) {
		return nil
	}
	c.mu.RLock()
	h := c.handlers[name]
	c.mu.RUnlock()
	if h != nil {
		return h
	}
	if !strings.ContainsAny(name, "|,") {
		return nil
	}
	return c.compose(name)
}

// LookupWithContentType resolves a definition name preferring a handler
// registered for the given content type, falling back to the untyped
// entry.
func (c *SimpleCatalog) LookupWithContentType(name, contentType string) Handler {
	if hasText(contentType) {
		c.mu.RLock()
		h := c.typed[typedKey(name, contentType)]
		c.mu.RUnlock()
		if h != nil {
			return h
		}
	}
	return c.Lookup(name)
}

// compose builds and caches a pipeline for a composite name. Every
// stage must already be registered.
func (c *SimpleCatalog) compose(name string) Handler {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '|' || r == ','
	})
	stages := make([]Handler, 0, len(parts))
	c.mu.RLock()
	for _, part := range parts {
		stage := c.handlers[strings.TrimSpace(part)]
		if stage == nil {
			c.mu.RUnlock()
			return nil
		}
		stages = append(stages, stage)
	}
	c.mu.RUnlock()
	if len(stages) == 0 {
		return nil
	}

	p := &pipeline{name: name, stages: stages}
	c.mu.Lock()
	// Another lookup may have composed the same name concurrently;
	// keep the first registration stable.
	if cached, ok := c.handlers[name]; ok {
		c.mu.Unlock()
		return cached
	}
	c.handlers[name] = p
	c.mu.Unlock()
	return p
}

func typedKey(name, contentType string) string {
	return name + ";" + contentType
}

// pipeline chains handlers left to right, feeding each stage's output
// to the next. Input metadata (stream input, supplier) is the first
// stage's.
type pipeline struct {
	name   string
	stages []Handler
}

func (p *pipeline) Name() string      { return p.name }
func (p *pipeline) StreamInput() bool { return p.stages[0].StreamInput() }
func (p *pipeline) Supplier() bool    { return p.stages[0].Supplier() }

func (p *pipeline) Apply(ctx context.Context, in any) (any, error) {
	v := in
	for _, stage := range p.stages {
		out, err := stage.Apply(ctx, v)
		if err != nil {
			return nil, err
		}
		v = out
	}
	return v, nil
}
