package models

import "encoding/json"

type TryOnResponse struct {
	ImageURL         string  `json:"imageUrl"`
	VideoURL         *string `json:"videoUrl"`
	GenerationTimeMs int64   `json:"generationTimeMs,omitempty"`
	CreditsRemaining int     `json:"creditsRemaining"`
}

type CreditsResponse struct {
	Credits int `json:"credits"`
}

type SessionResponse struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
	Credits     int    `json:"credits"`
}

type ErrorResponse struct {
	Error   string          `json:"error"`
	Message string          `json:"message,omitempty"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
