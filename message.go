package funcrouter

import "strings"

// Header keys the router consumes. Values are read, never written.
const (
	// DefinitionHeader names the handler directly.
	DefinitionHeader = "spring.cloud.function.definition"

	// RoutingExpressionHeader carries an expression that is evaluated
	// against the message to produce a handler name.
	RoutingExpressionHeader = "spring.cloud.function.routing-expression"
)

// Message pairs a payload with string-keyed metadata. Routing
// instructions travel in Headers; the payload is passed through to the
// resolved handler untouched.
type Message struct {
	Payload any
	Headers map[string]any
}

// NewMessage builds a Message from a payload and headers.
func NewMessage(payload any, headers map[string]any) Message {
	return Message{Payload: payload, Headers: headers}
}

// Header returns the string value for key. Missing keys, non-string
// values, and blank strings all report absent: a blank routing
// instruction is no instruction.
func (m Message) Header(key string) (string, bool) {
	v, ok := m.Headers[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || !hasText(s) {
		return "", false
	}
	return s, true
}

// hasText reports whether s contains anything besides whitespace.
func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
