package funcrouter

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when envelope bytes are not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON")

// ParseEnvelope builds a Message from a raw JSON transport envelope of
// the form:
//
//	{"headers": {"spring.cloud.function.definition": "uppercase"}, "payload": ...}
//
// A document without a headers object is treated as a bare payload with
// no routing headers. This is the seam HTTP and broker adapters use to
// hand raw bytes to the router without an intermediate unmarshal step.
func ParseEnvelope(raw []byte) (Message, error) {
	if !gjson.ValidBytes(raw) {
		return Message{}, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(raw)
	h := doc.Get("headers")
	if !h.Exists() || !h.IsObject() {
		return Message{Payload: doc.Value()}, nil
	}

	fields := h.Map()
	headers := make(map[string]any, len(fields))
	for k, v := range fields {
		headers[k] = v.Value()
	}
	return Message{Payload: doc.Get("payload").Value(), Headers: headers}, nil
}
