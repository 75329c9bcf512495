package domain

import "time"

// Credential stores sign-in material for an account. Its ID is shared with the profile.
type Credential struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session describes an issued, still-valid access token.
type Session struct {
	TokenID   string
	ProfileID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
