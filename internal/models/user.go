package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the user type.
type Role string

const (
	RoleStudent Role = "student"
	RoleOwner   Role = "owner"
)

// ParseRole accepts the canonical names and the legacy spanish aliases.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "student", "estudiante":
		return RoleStudent, nil
	case "owner", "propietario":
		return RoleOwner, nil
	default:
		return "", fmt.Errorf("unknown user type %q", s)
	}
}

// User represents a user record in the database
type User struct {
	ID         int64     `json:"id" db:"id"`                  // Primary key
	Name       string    `json:"name" db:"name"`              // Display name
	Email      string    `json:"email" db:"email"`            // Unique email
	ExternalID string    `json:"externalId" db:"external_id"` // Identity provider subject
	Role       Role      `json:"type" db:"role"`              // student or owner
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`   // Creation timestamp
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`   // Last update timestamp
}

// Summary projects the public fields embedded in other resources.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserSummary is the author/owner projection attached to reads.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterInput carries a registration after decoding.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     Role
}

// UserPatch is the profile update. Role may only change through it.
type UserPatch struct {
	Email string
	Name  string
	Role  Role
}

// Session is returned by a successful login.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
