package domain

import "time"

// Canonical role labels as stored and exchanged over the wire. The first
// entry of a member's Roles slice is the effective role.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// KnownRole reports whether the given label is one of the canonical roles.
func KnownRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// Member is the server-side user resource managed through the API.
type Member struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	Roles        []string  `json:"roles"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
