package bedrock

import "fmt"

// ErrorKind classifies an Invoke failure so the handler can pick a response
// status without inspecting error strings.
type ErrorKind string

const (
	// KindConfig marks a missing required identifier (model or knowledge
	// base). Message is operator-facing and safe to return to the caller.
	KindConfig ErrorKind = "CONFIG"
	// KindService marks a failed or unreadable downstream call. Message is
	// for logs only; the handler returns a generic body.
	KindService ErrorKind = "SERVICE"
)

// Error is the classified failure type returned by Client.Invoke.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("bedrock: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("bedrock: %s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func configError(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

func serviceError(message string, err error) *Error {
	return &Error{Kind: KindService, Message: message, Err: err}
}
