package models

import "time"

// User is the roster entry the admin panel renders. The user service owns
// the real record; no password material ever reaches this tier's storage.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}
