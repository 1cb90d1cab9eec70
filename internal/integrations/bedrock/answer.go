package bedrock

import (
	"encoding/json"
	"fmt"
	"strings"
)

// fallbackAnswer is returned when the model response carries no usable text.
// The chat endpoint never emits an empty answer.
const fallbackAnswer = "I couldn't generate a response right now. Please try again."

// answerExtractors are tried in order against the decoded response until one
// yields a non-empty string. The order matches the response shapes of the
// Titan, Llama and Claude text-completion families.
var answerExtractors = []func(map[string]any) string{
	topLevelString("outputText"),
	firstResultOutputText,
	topLevelString("generation"),
	topLevelString("completion"),
}

// extractAnswer pulls the generated text out of a raw InvokeModel response
// body. An empty body or a response matching none of the known shapes yields
// the fallback sentence; only undecodable JSON is an error.
func extractAnswer(raw []byte) (string, error) {
	if len(raw) == 0 {
		return fallbackAnswer, nil
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("unmarshal model response: %w", err)
	}

	for _, extract := range answerExtractors {
		if answer := strings.TrimSpace(extract(data)); answer != "" {
			return answer, nil
		}
	}
	return fallbackAnswer, nil
}

func topLevelString(key string) func(map[string]any) string {
	return func(data map[string]any) string {
		s, _ := data[key].(string)
		return s
	}
}

func firstResultOutputText(data map[string]any) string {
	results, _ := data["results"].([]any)
	if len(results) == 0 {
		return ""
	}
	first, _ := results[0].(map[string]any)
	s, _ := first["outputText"].(string)
	return s
}
