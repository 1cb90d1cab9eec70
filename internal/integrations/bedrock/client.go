package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"faq-agent/internal/integrations/paramstore"
)

// defaultSystemInstruction grounds the model in the knowledge base. It can
// be overridden per deployment through the prompt store.
const defaultSystemInstruction = "You are a private FAQ assistant. " +
	"Answer clearly and briefly. " +
	"If the answer is not in the approved knowledge base, say you don't know."

// bedrockAPI is the minimal Bedrock runtime interface required by Client.
// *bedrockruntime.Client from aws-sdk-go-v2 satisfies this interface.
type bedrockAPI interface {
	InvokeModel(ctx context.Context, in *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Recorder receives structured log records emitted during an invocation.
// *logging.Logger satisfies this interface.
type Recorder interface {
	Log(level string, fields map[string]any)
}

// invokeRequest is the generic JSON body sent to InvokeModel. Text-only;
// model families with richer schemas need their own codec.
type invokeRequest struct {
	InputText string `json:"inputText"`
}

// Client invokes a Bedrock text model for the chat flow.
type Client struct {
	api     bedrockAPI
	log     Recorder
	modelID string
	kbID    string

	params      paramstore.Getter
	paramPrefix string

	promptOnce   sync.Once
	systemPrompt string
}

type Option func(*Client)

// WithPromptStore enables the per-deployment system-prompt override, read
// once from <prefix>/system-prompt on the first invocation.
func WithPromptStore(params paramstore.Getter, prefix string) Option {
	return func(c *Client) {
		c.params = params
		c.paramPrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// NewClient creates a Client. Empty model and knowledge-base identifiers are
// accepted here; Invoke reports them as configuration errors so the process
// can still serve health checks.
func NewClient(api bedrockAPI, log Recorder, modelID, kbID string, opts ...Option) (*Client, error) {
	if api == nil {
		return nil, errors.New("bedrock: api must not be nil")
	}
	if log == nil {
		return nil, errors.New("bedrock: recorder must not be nil")
	}
	c := &Client{
		api:     api,
		log:     log,
		modelID: strings.TrimSpace(modelID),
		kbID:    strings.TrimSpace(kbID),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Invoke sends the prompt to the configured model and returns the generated
// answer. The answer is never empty: when the response carries no usable
// text the fixed fallback sentence is returned instead. Failures are
// classified as *Error.
func (c *Client) Invoke(ctx context.Context, prompt, requestID string) (string, error) {
	if c.modelID == "" {
		return "", configError("BEDROCK_MODEL_ID is not set.")
	}
	if c.kbID == "" {
		return "", configError("BEDROCK_KB_ID is not set.")
	}

	body, err := json.Marshal(invokeRequest{
		InputText: fmt.Sprintf("%s\n\nUser question: %s\n", c.resolveSystemPrompt(ctx), prompt),
	})
	if err != nil {
		return "", serviceError("marshal request", err)
	}

	c.log.Log("INFO", map[string]any{
		"event":      "bedrock_invoke_start",
		"request_id": requestID,
		"model_id":   c.modelID,
		"kb_id":      c.kbID,
	})

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		c.log.Log("ERROR", map[string]any{
			"event":      "bedrock_invoke_error",
			"request_id": requestID,
			"error":      err.Error(),
		})
		return "", serviceError("invoke model", err)
	}

	answer, err := extractAnswer(out.Body)
	if err != nil {
		c.log.Log("ERROR", map[string]any{
			"event":      "bedrock_invoke_error",
			"request_id": requestID,
			"error":      err.Error(),
		})
		return "", serviceError("decode response", err)
	}

	c.log.Log("INFO", map[string]any{
		"event":      "bedrock_invoke_success",
		"request_id": requestID,
	})
	return answer, nil
}

// resolveSystemPrompt returns the system instruction, reading the optional
// override from the prompt store on the first call and caching the result
// for the process lifetime. A missing parameter falls back silently; any
// other store failure falls back with a WARN record.
func (c *Client) resolveSystemPrompt(ctx context.Context) string {
	c.promptOnce.Do(func() {
		c.systemPrompt = defaultSystemInstruction
		if c.params == nil || c.paramPrefix == "" {
			return
		}
		name := c.paramPrefix + "/system-prompt"
		v, err := c.params.GetParameter(ctx, name)
		if err != nil {
			if !errors.Is(err, paramstore.ErrNotFound) {
				c.log.Log("WARN", map[string]any{
					"event":     "system_prompt_load_failed",
					"parameter": name,
					"error":     err.Error(),
				})
			}
			return
		}
		if v = strings.TrimSpace(v); v != "" {
			c.systemPrompt = v
		}
	})
	return c.systemPrompt
}
