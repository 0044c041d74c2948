package services

import (
	"encoding/json"
	"fmt"
)

// ServiceError carries a stable error code plus, for upstream failures, the
// raw provider payload for diagnostics.
type ServiceError struct {
	Err     error
	Message string
	Code    string
	Raw     json.RawMessage
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Error codes. The HTTP layer maps these onto status codes; no_credits is a
// business outcome (402) rather than a fault, so clients can route to the
// upgrade flow instead of showing a generic failure.
const (
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeMissingImages   = "missing_images"
	ErrCodeNoCredits       = "no_credits"
	ErrCodeNoImage         = "upstream_no_image"
	ErrCodeUpstreamFailed  = "upstream_failed"
	ErrCodeAccountNotFound = "account_not_found"
	ErrCodeInternal        = "server_error"
)
