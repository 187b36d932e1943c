package engine

import (
	"encoding/json"
	"strings"
)

// Content is the transport-agnostic payload returned by a Requester.
// Structured is set once the body has been checked to hold valid JSON.
type Content struct {
	Body       []byte
	Structured bool
}

// TextContent wraps a raw text body.
func TextContent(s string) Content {
	return Content{Body: []byte(s)}
}

// JSONContent wraps a body that is already known to be JSON.
func JSONContent(b []byte) Content {
	return Content{Body: b, Structured: true}
}

func (c Content) String() string { return string(c.Body) }

// IsEmpty reports whether the body has no non-whitespace bytes.
func (c Content) IsEmpty() bool {
	return strings.TrimSpace(string(c.Body)) == ""
}

// AsJSON marks the content structured, failing if the body is not valid JSON.
func (c Content) AsJSON() (Content, error) {
	if !json.Valid(c.Body) {
		return c, NewModuleError(ErrJSON, nil)
	}
	c.Structured = true
	return c, nil
}

// Decode unmarshals the body into v.
func (c Content) Decode(v any) error {
	return json.Unmarshal(c.Body, v)
}
