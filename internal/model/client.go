package model

import "time"

// Client represents a brokerage client from the database.
type Client struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"` // short unique account code, e.g. "AC-1042"
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ClientFilter for querying clients.
type ClientFilter struct {
	Code string
}
