package models

import "time"

// Identity is a user as seen by the identity provider.
type Identity struct {
	ExternalID    string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	EmailVerified bool   `json:"email_verified"`
}

// Credential is a password record owned by the local identity provider.
type Credential struct {
	ExternalID    string    `db:"external_id"`
	Email         string    `db:"email"`
	Name          string    `db:"name"`
	PasswordHash  string    `db:"password_hash"`
	EmailVerified bool      `db:"email_verified"`
	CreatedAt     time.Time `db:"created_at"`
}
