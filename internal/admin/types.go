package admin

import "time"

// User is a back-office operator account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ResetToken is a persisted single-use password-reset token. Only the hash of
// the secret half is stored.
type ResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Session is what a successful signup or login returns to the client: the
// public view of the user plus a bearer token. The client persists it whole.
type Session struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
