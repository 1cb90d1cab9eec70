package handler

import "encoding/json"

// Response is the Lambda proxy response shape for API Gateway HTTP APIs.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// resolveOrigin picks exactly one CORS origin value: the caller's origin
// when it matches the allow-list exactly, else the first configured entry,
// else "*". The fallback is deliberately permissive to keep local dev
// simple; the JWT authorizer in front of this handler is the real boundary.
func resolveOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		if origin != "" && origin == a {
			return origin
		}
	}
	if len(allowed) > 0 {
		return allowed[0]
	}
	return "*"
}

// respond builds the uniform JSON envelope with CORS headers.
func (h *Handler) respond(status int, body any, origin, requestID string) Response {
	headers := map[string]string{
		"content-type":                 "application/json",
		"access-control-allow-methods": "GET,POST,OPTIONS",
		"access-control-allow-headers": "content-type,authorization",
		"access-control-allow-origin":  resolveOrigin(h.cfg.AllowedOrigins, origin),
	}
	if requestID != "" {
		headers["x-request-id"] = requestID
	}

	payload, err := json.Marshal(body)
	if err != nil {
		status = 500
		payload = []byte(`{"error":"Unexpected server error."}`)
	}
	return Response{
		StatusCode: status,
		Headers:    headers,
		Body:       string(payload),
	}
}
