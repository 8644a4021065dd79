package admin

import "context"

// Store describes persistence required by the admin subsystem.
type Store interface {
	CreateUser(ctx context.Context, u *User) error
	FindUser(ctx context.Context, id string) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	CreateResetToken(ctx context.Context, tok *ResetToken) error
	FindResetToken(ctx context.Context, id string) (*ResetToken, error)
	MarkResetTokenUsed(ctx context.Context, id string) error
}
