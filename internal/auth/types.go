// Package auth talks to the GoTrue identity service that fronts the
// resume backend and manages the locally persisted session.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// Credentials is an email/password pair for signup and sign-in.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// User is the identity record returned by the auth service.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is the token bundle issued on sign-in. ExpiresAt is an absolute
// Unix timestamp; the relative ExpiresIn is only meaningful at issue time.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}
