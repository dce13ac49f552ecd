package dto

import "time"

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Page      any       `json:"page"`
}

type NavigateRequest struct {
	Page      string `json:"page"`
	ProductID *int   `json:"productId,omitempty"`
}

type LocalStateRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ErrorResponse struct {
	Error   bool    `json:"error"`
	Message string  `json:"message"`
	Notice  *Notice `json:"notice,omitempty"`
}

// Notice is the toast a failed form submit shows.
type Notice struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Sessions  int    `json:"sessions"`
}
