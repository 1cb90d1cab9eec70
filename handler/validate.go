package handler

import (
	"strings"
	"unicode/utf8"
)

// maxMessageLength caps prompt size, measured in characters on the
// untrimmed message.
const maxMessageLength = 2000

const (
	errMessageRequired = "Field 'message' is required and must be a non-empty string."
	errMessageTooLong  = "Field 'message' is too long (max 2000 characters)."
)

// validateChatPayload checks the POST /chat input {"message": "..."} and
// returns the trimmed message, or a caller message for a 400 response.
func validateChatPayload(payload map[string]any) (string, string) {
	message, ok := payload["message"].(string)
	if !ok || strings.TrimSpace(message) == "" {
		return "", errMessageRequired
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return "", errMessageTooLong
	}
	return strings.TrimSpace(message), ""
}
