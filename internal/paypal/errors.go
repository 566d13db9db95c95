package paypal

import (
	"fmt"
	"strings"
)

// APIError is a structured error response from the API. Identity endpoints
// answer with error/error_description, business endpoints with
// name/message/details; both shapes land here.
type APIError struct {
	HTTPStatus  int    `json:"-"`
	HTTPMessage string `json:"-"`

	Name    string           `json:"name"`
	Message string           `json:"message"`
	DebugID string           `json:"debug_id"`
	Details []APIErrorDetail `json:"details"`

	Code        string `json:"error"`
	Description string `json:"error_description"`
}

type APIErrorDetail struct {
	Field       string `json:"field"`
	Value       string `json:"value"`
	Issue       string `json:"issue"`
	Description string `json:"description"`
}

// Detail composes a human-readable message, falling back to the
// error/error_description pair when message is blank.
func (e *APIError) Detail() string {
	if d := strings.TrimSpace(e.Message); d != "" {
		return d
	}
	return e.Code + " - " + e.Description
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.HTTPStatus, e.Detail())
}

// AuthError marks missing credentials or a failed token exchange. It is
// terminal for a synchronization run.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
