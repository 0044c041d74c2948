package models

import (
	"fmt"
	"strings"
)

// TryOnRequest is the body of POST /api/tryon. Both images are
// data-URI-encoded (data:image/...;base64,...), matching what the web and
// mobile clients produce from file uploads.
type TryOnRequest struct {
	ModelImage    string `json:"modelImage"`
	TshirtImage   string `json:"tshirtImage"`
	GenerateVideo bool   `json:"generateVideo"`
}

// Validate rejects malformed bodies at the boundary so downstream code only
// ever sees a well-formed request.
func (r *TryOnRequest) Validate() error {
	if r.ModelImage == "" || r.TshirtImage == "" {
		return fmt.Errorf("modelImage and tshirtImage are required")
	}
	if err := validateImagePayload("modelImage", r.ModelImage); err != nil {
		return err
	}
	if err := validateImagePayload("tshirtImage", r.TshirtImage); err != nil {
		return err
	}
	return nil
}

func validateImagePayload(field, value string) error {
	if !strings.HasPrefix(value, "data:image/") {
		return fmt.Errorf("%s must be a data-URI-encoded image", field)
	}
	if !strings.Contains(value, ";base64,") {
		return fmt.Errorf("%s must be base64 encoded", field)
	}
	return nil
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
