package handler

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Event is the API Gateway HTTP API (v2) payload, reduced to the fields the
// handler reads. The body stays raw JSON so both the gateway's string
// encoding and a pre-decoded object (direct invocation, tests) are accepted.
type Event struct {
	RawPath        string            `json:"rawPath"`
	Headers        map[string]string `json:"headers"`
	Body           json.RawMessage   `json:"body"`
	RequestContext RequestContext    `json:"requestContext"`
}

type RequestContext struct {
	HTTP       HTTPDescription `json:"http"`
	Authorizer *Authorizer     `json:"authorizer"`
}

type HTTPDescription struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type Authorizer struct {
	JWT *JWTAuthorizer `json:"jwt"`
}

type JWTAuthorizer struct {
	Claims map[string]string `json:"claims"`
}

// method and path describe the route; path falls back to rawPath when the
// request context carries none.
func (e Event) method() string {
	return e.RequestContext.HTTP.Method
}

func (e Event) path() string {
	if p := e.RequestContext.HTTP.Path; p != "" {
		return p
	}
	return e.RawPath
}

// origin returns the caller's Origin header; casing can vary by gateway.
func (e Event) origin() string {
	return headerValue(e.Headers, "origin")
}

func headerValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// extractClaims reads the JWT claims the gateway's authorizer verified
// upstream. Any absent level yields an empty map; it never fails and the
// claims are never used for authorization here.
func extractClaims(e Event) map[string]string {
	auth := e.RequestContext.Authorizer
	if auth == nil || auth.JWT == nil || auth.JWT.Claims == nil {
		return map[string]string{}
	}
	return auth.JWT.Claims
}

// parseBody decodes the request payload. All failures come back as a caller
// message for a 400 response; it never panics.
func parseBody(e Event) (map[string]any, string) {
	raw := bytes.TrimSpace(e.Body)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, "Missing request body."
	}

	switch raw[0] {
	case '"':
		// the gateway delivers the body as a JSON-encoded string
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, "Unsupported body format."
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, "Empty request body."
		}
		var payload map[string]any
		if err := json.Unmarshal([]byte(s), &payload); err != nil {
			return nil, "Invalid JSON body."
		}
		return payload, ""
	case '{':
		var payload map[string]any
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, "Invalid JSON body."
		}
		return payload, ""
	}
	return nil, "Unsupported body format."
}
