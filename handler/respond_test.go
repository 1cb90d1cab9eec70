package handler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveOrigin(t *testing.T) {
	allowed := []string{"http://localhost", "https://example.com"}
	cases := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"exact match reflected", allowed, "https://example.com", "https://example.com"},
		{"first entry reflected", allowed, "http://localhost", "http://localhost"},
		{"unknown origin falls back to first entry", allowed, "https://evil.example", "http://localhost"},
		{"absent origin falls back to first entry", allowed, "", "http://localhost"},
		{"empty list falls back to star", nil, "https://example.com", "*"},
		{"no partial matching", allowed, "http://localhost:3000", "http://localhost"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveOrigin(tc.allowed, tc.origin)
			require.Equal(t, tc.want, got)
			// deterministic: same inputs, same value
			require.Equal(t, got, resolveOrigin(tc.allowed, tc.origin))
		})
	}
}

func TestRespond_AlwaysSetsEnvelopeHeaders(t *testing.T) {
	h := newTestHandler(t, &stubInvoker{})

	resp := h.respond(200, map[string]any{"ok": true}, "", "req-1")
	require.Equal(t, "application/json", resp.Headers["content-type"])
	require.Equal(t, "GET,POST,OPTIONS", resp.Headers["access-control-allow-methods"])
	require.Equal(t, "content-type,authorization", resp.Headers["access-control-allow-headers"])
	require.Equal(t, "http://localhost", resp.Headers["access-control-allow-origin"])
	require.Equal(t, "req-1", resp.Headers["x-request-id"])
	require.JSONEq(t, `{"ok":true}`, resp.Body)
}

func TestRespond_OmitsRequestIDHeaderWhenEmpty(t *testing.T) {
	h := newTestHandler(t, &stubInvoker{})

	resp := h.respond(200, map[string]any{"ok": true}, "", "")
	_, ok := resp.Headers["x-request-id"]
	require.False(t, ok)
}
