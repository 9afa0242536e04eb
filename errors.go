package funcrouter

import (
	"errors"
	"fmt"
)

// RouteSource identifies which of the four routing sources produced a
// handler name. It appears in errors and hook callbacks for diagnosis.
type RouteSource int

const (
	// SourceDefinitionHeader is the per-message definition header.
	SourceDefinitionHeader RouteSource = iota

	// SourceExpressionHeader is the per-message routing-expression header.
	SourceExpressionHeader

	// SourceExpressionProperty is the globally configured routing expression.
	SourceExpressionProperty

	// SourceDefinitionProperty is the globally configured default definition.
	SourceDefinitionProperty
)

func (s RouteSource) String() string {
	switch s {
	case SourceDefinitionHeader:
		return "definition header"
	case SourceExpressionHeader:
		return "routing-expression header"
	case SourceExpressionProperty:
		return "routing-expression property"
	case SourceDefinitionProperty:
		return "definition property"
	}
	return "unknown source"
}

// fromHeader reports whether the source is per-message metadata rather
// than global configuration.
func (s RouteSource) fromHeader() bool {
	return s == SourceDefinitionHeader || s == SourceExpressionHeader
}

// ErrUnroutable is returned when none of the routing sources provided a
// handler name for a scalar input. There is no fallback route.
var ErrUnroutable = errors.New("unable to establish route: provide a '" +
	DefinitionHeader + "' or '" + RoutingExpressionHeader +
	"' message header, or a definition or routing-expression property")

// ErrNestedStream is returned when per-item routing encounters a stream
// element that is itself a stream. Nested streams have no per-item
// routing semantics and are never flattened.
var ErrNestedStream = errors.New("stream element is itself a stream and cannot be routed per item")

// NotFoundError is returned when a resolved name has no catalog entry.
type NotFoundError struct {
	Name   string
	Source RouteSource
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no handler %q in catalog (name resolved from %s)", e.Name, e.Source)
}

// ExpressionError is returned when a routing expression fails to
// compile, fails to evaluate, or does not produce a usable handler name.
type ExpressionError struct {
	Expression string
	Source     RouteSource
	Err        error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("routing expression %q from %s: %v", e.Expression, e.Source, e.Err)
}

func (e *ExpressionError) Unwrap() error { return e.Err }

// ConflictError is returned when per-message routing of a stream
// element selects a handler that declares a stream input. Such a
// handler must receive the whole stream, so it can only be selected by
// the definition or routing-expression property applied to the stream
// itself. This is a usage error, never corrected silently.
type ConflictError struct {
	Name   string
	Source RouteSource
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("handler %q (from %s) declares a stream input and cannot be routed per stream element; "+
		"route the whole stream with a definition or routing-expression property", e.Name, e.Source)
}
