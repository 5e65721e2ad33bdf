package model

import "time"

// User is a local identity keyed by name. The name is a free-text label,
// not a credential: logging in with an existing name reuses that user's
// record, any other name creates a new one.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
