package admin

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"manasa.shop/internal/ids"
)

const (
	defaultTokenTTL = 24 * time.Hour
	resetTokenTTL   = 30 * time.Minute
)

// Service implements signup, login and password reset for operator accounts.
type Service struct {
	store    Store
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// ServiceOption customizes Service construction.
type ServiceOption func(*Service)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTokenTTL overrides the access token lifetime.
func WithTokenTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// NewService builds a Service. The secret signs access tokens and must not be
// empty.
func NewService(store Store, secret []byte, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("admin: store is nil")
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("admin: signing secret is empty")
	}
	s := &Service{
		store:    store,
		secret:   secret,
		tokenTTL: defaultTokenTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Signup registers a new account and returns a ready session so the client
// does not need a second login round trip.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	u := &User{
		ID:           ids.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return s.sessionFor(u, now)
}

// Login verifies credentials and returns a session.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	u, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if err := VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrUnauthorized
	}
	return s.sessionFor(u, s.now().UTC())
}

func (s *Service) sessionFor(u *User, now time.Time) (*Session, error) {
	token, expiresAt, err := s.generateToken(u, now)
	if err != nil {
		return nil, err
	}
	return &Session{
		Name:      u.Name,
		Email:     u.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// RequestPasswordReset issues a single-use reset token for the account. The
// returned string is "<id>.<secret>"; only a hash of the secret is stored.
// When the email is unknown it still succeeds with an empty token so the
// endpoint does not leak which addresses exist.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	u, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return "", nil
		}
		return "", err
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return "", err
	}
	secretHex := hex.EncodeToString(secret)
	now := s.now().UTC()
	tok := &ResetToken{
		ID:        ids.New(),
		UserID:    u.ID,
		TokenHash: hashSecret(secretHex),
		ExpiresAt: now.Add(resetTokenTTL),
		CreatedAt: now,
	}
	if err := s.store.CreateResetToken(ctx, tok); err != nil {
		return "", err
	}
	return tok.ID + "." + secretHex, nil
}

// ResetPassword consumes a reset token and sets the new password. The
// confirmation must match exactly.
func (s *Service) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	id, secret, err := splitResetToken(token)
	if err != nil {
		return err
	}
	tok, err := s.store.FindResetToken(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return ErrInvalidToken
		}
		return err
	}
	if tok.Used {
		return ErrInvalidToken
	}
	if s.now().UTC().After(tok.ExpiresAt) {
		return ErrInvalidToken
	}
	if !secureCompareHash(tok.TokenHash, hashSecret(secret)) {
		return ErrInvalidToken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.store.UpdatePassword(ctx, tok.UserID, hash); err != nil {
		return err
	}
	return s.store.MarkResetTokenUsed(ctx, tok.ID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func splitResetToken(token string) (id, secret string, err error) {
	token = strings.TrimSpace(token)
	i := strings.IndexByte(token, '.')
	if i <= 0 || i == len(token)-1 {
		return "", "", ErrInvalidToken
	}
	return token[:i], token[i+1:], nil
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

func secureCompareHash(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
