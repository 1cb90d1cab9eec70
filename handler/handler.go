package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"faq-agent/internal/config"
	"faq-agent/internal/integrations/bedrock"
	"faq-agent/internal/logging"
)

// Invoker is the model gateway consumed by the chat flow.
// *bedrock.Client satisfies this interface.
type Invoker interface {
	Invoke(ctx context.Context, prompt, requestID string) (string, error)
}

// Handler is the Lambda entry point: it routes one gateway event through
// parsing, validation and the model invocation, and shapes the response.
type Handler struct {
	invoker Invoker
	cfg     config.Config
	log     *logging.Logger
}

func NewHandler(invoker Invoker, cfg config.Config, log *logging.Logger) (*Handler, error) {
	if invoker == nil {
		return nil, errors.New("handler: invoker must not be nil")
	}
	if log == nil {
		return nil, errors.New("handler: logger must not be nil")
	}
	return &Handler{invoker: invoker, cfg: cfg, log: log}, nil
}

// Handle processes one gateway event. The returned error is always nil;
// every failure maps to a response so the gateway never sees a function
// error.
func (h *Handler) Handle(ctx context.Context, event Event) (Response, error) {
	requestID := correlationID(ctx)
	start := time.Now()
	method := event.method()
	path := event.path()
	origin := event.origin()

	h.log.Log("INFO", map[string]any{
		"event":      "request_start",
		"request_id": requestID,
		"method":     method,
		"path":       path,
	})

	switch {
	case method == http.MethodOptions:
		// CORS preflight, any path
		return h.respond(200, map[string]any{"ok": true}, origin, requestID), nil

	case method == http.MethodGet && strings.HasSuffix(path, "/health"):
		return h.respond(200, map[string]any{
			"status":           "ok",
			"env":              h.cfg.Env,
			"bedrock_region":   h.cfg.BedrockRegion,
			"model_configured": h.cfg.ModelConfigured(),
			"kb_configured":    h.cfg.KBConfigured(),
		}, origin, requestID), nil

	case method == http.MethodPost && strings.HasSuffix(path, "/chat"):
		return h.handleChat(ctx, event, origin, requestID, start), nil
	}

	return h.respond(404, map[string]any{"error": "Not found."}, origin, requestID), nil
}

func (h *Handler) handleChat(ctx context.Context, event Event, origin, requestID string, start time.Time) Response {
	payload, errMsg := parseBody(event)
	if errMsg != "" {
		return h.respond(400, map[string]any{"error": errMsg}, origin, requestID)
	}

	message, errMsg := validateChatPayload(payload)
	if errMsg != "" {
		return h.respond(400, map[string]any{"error": errMsg}, origin, requestID)
	}

	userSub := extractClaims(event)["sub"]
	if userSub == "" {
		userSub = "unknown"
	}
	h.log.Log("INFO", map[string]any{
		"event":      "chat_request_validated",
		"request_id": requestID,
		"user_sub":   userSub,
	})

	answer, err := h.invoker.Invoke(ctx, message, requestID)
	if err != nil {
		return h.errorResponse(err, origin, requestID)
	}

	h.log.Log("INFO", map[string]any{
		"event":      "request_success",
		"request_id": requestID,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return h.respond(200, map[string]any{
		"request_id": requestID,
		"answer":     answer,
	}, origin, requestID)
}

// errorResponse maps a model gateway failure to the response taxonomy:
// configuration errors are echoed with a 500, service failures become a
// generic 502, anything else a generic 500. Downstream detail only reaches
// the logs.
func (h *Handler) errorResponse(err error, origin, requestID string) Response {
	var be *bedrock.Error
	if errors.As(err, &be) {
		switch be.Kind {
		case bedrock.KindConfig:
			h.log.Log("ERROR", map[string]any{
				"event":      "chat_config_error",
				"request_id": requestID,
				"error":      err.Error(),
			})
			return h.respond(500, map[string]any{"error": be.Message}, origin, requestID)
		case bedrock.KindService:
			h.log.Log("ERROR", map[string]any{
				"event":      "chat_upstream_error",
				"request_id": requestID,
				"error":      err.Error(),
			})
			return h.respond(502, map[string]any{"error": "Bedrock request failed."}, origin, requestID)
		}
	}

	h.log.Log("ERROR", map[string]any{
		"event":      "chat_unexpected_error",
		"request_id": requestID,
		"error":      err.Error(),
	})
	return h.respond(500, map[string]any{"error": "Unexpected server error."}, origin, requestID)
}

// correlationID prefers the Lambda execution context's request id and falls
// back to a fresh UUID (direct invocation, tests).
func correlationID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return newUUID()
}

var newUUID = func() string {
	return uuid.NewString()
}
