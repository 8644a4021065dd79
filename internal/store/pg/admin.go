package pg

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"manasa.shop/internal/admin"
)

// AdminStore persists operator accounts and password-reset tokens.
type AdminStore struct {
	db *sql.DB
}

var _ admin.Store = (*AdminStore)(nil)

func (s *AdminStore) CreateUser(ctx context.Context, u *admin.User) error {
	_, err := s.db.ExecContext(ctx, `
		insert into users(id, name, email, password_hash, status, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7)
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.Status, u.CreatedAt, u.UpdatedAt)
	if err != nil && strings.Contains(err.Error(), "users_email_key") {
		return admin.ErrEmailTaken
	}
	return err
}

const userColumns = `id, name, email, password_hash, status, created_at, updated_at`

func (s *AdminStore) FindUser(ctx context.Context, id string) (*admin.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
		select `+userColumns+` from users where id = $1
	`, id))
}

func (s *AdminStore) FindUserByEmail(ctx context.Context, email string) (*admin.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
		select `+userColumns+` from users where lower(email) = lower($1)
	`, email))
}

func (s *AdminStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res, err := s.db.ExecContext(ctx, `
		update users set password_hash = $2, updated_at = now() where id = $1
	`, userID, passwordHash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return admin.ErrNotFound
	}
	return nil
}

func (s *AdminStore) CreateResetToken(ctx context.Context, tok *admin.ResetToken) error {
	_, err := s.db.ExecContext(ctx, `
		insert into password_reset_tokens(id, user_id, token_hash, expires_at, used, created_at)
		values ($1,$2,$3,$4,$5,$6)
	`, tok.ID, tok.UserID, tok.TokenHash, tok.ExpiresAt, tok.Used, tok.CreatedAt)
	return err
}

func (s *AdminStore) FindResetToken(ctx context.Context, id string) (*admin.ResetToken, error) {
	var tok admin.ResetToken
	err := s.db.QueryRowContext(ctx, `
		select id, user_id, token_hash, expires_at, used, created_at
		from password_reset_tokens where id = $1
	`, id).Scan(&tok.ID, &tok.UserID, &tok.TokenHash, &tok.ExpiresAt, &tok.Used, &tok.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, admin.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

func (s *AdminStore) MarkResetTokenUsed(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		update password_reset_tokens set used = true where id = $1
	`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return admin.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*admin.User, error) {
	var u admin.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, admin.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
