package dto

import (
	"time"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
)

// SignUpRequest payload for new students.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"notblank,max=120"`
}

// LoginRequest payload for sign-in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileResponse describes the signed-in user.
type ProfileResponse struct {
	ID       string      `json:"id"`
	FullName string      `json:"full_name"`
	Role     domain.Role `json:"role"`
}

// AuthResponse standard response for sign-up and sign-in.
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   ProfileResponse `json:"profile"`
	Redirect  string          `json:"redirect"`
}

// SessionResponse describes the current session.
type SessionResponse struct {
	Profile   ProfileResponse `json:"profile"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// ShellResponse tells the client where to go from the landing page.
type ShellResponse struct {
	Authenticated bool    `json:"authenticated"`
	Redirect      *string `json:"redirect"`
}
