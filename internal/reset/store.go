// Package reset implements the password-reset token lifecycle: opaque
// single-use tokens bound to an email, persisted in the injected key-value
// store and redeemed exactly once before expiry.
package reset

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"formserver/internal/kvstore"
	"formserver/internal/validation"
)

var (
	ErrNotFound         = errors.New("no account for that email")
	ErrInvalidOrExpired = errors.New("invalid or expired token")
	ErrWeakPassword     = errors.New("weak password")
	ErrMismatch         = errors.New("passwords do not match")
	ErrIdentityMismatch = errors.New("token invalid for this user")
)

// Identities is the account store reset tokens are bound against, keyed by
// email rather than a single latest-user record.
type Identities interface {
	Exists(ctx context.Context, email string) (bool, error)
	SetPassword(ctx context.Context, email string, newPassword string) error
}

type tokenEntry struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires"`
}

type Store struct {
	kv  kvstore.Store
	ids Identities
	ttl time.Duration

	// BaseURL is the origin embedded in reset links.
	BaseURL string
	// Now is the clock; overridable in tests.
	Now func() time.Time
}

func NewStore(kv kvstore.Store, ids Identities, ttl time.Duration, baseURL string) *Store {
	return &Store{
		kv:      kv,
		ids:     ids,
		ttl:     ttl,
		BaseURL: baseURL,
		Now:     time.Now,
	}
}

// RequestReset generates a token for email and returns the reset link
// embedding it. Fails with ErrNotFound when no account matches.
func (s *Store) RequestReset(ctx context.Context, email string) (string, error) {
	exists, err := s.ids.Exists(ctx, email)
	if err != nil {
		return "", fmt.Errorf("lookup identity: %w", err)
	}
	if !exists {
		return "", ErrNotFound
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	tokens, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	tokens[token] = tokenEntry{Email: email, ExpiresAt: s.Now().Add(s.ttl)}
	if err := s.save(ctx, tokens); err != nil {
		return "", err
	}

	return s.BaseURL + "/reset-password/" + token, nil
}

// Redeem validates token and, on success, updates the bound identity's
// password and deletes the token so it cannot be used again. Expired entries
// are removed when touched; there is no background sweep.
func (s *Store) Redeem(ctx context.Context, token string, newPassword string, confirmPassword string) error {
	tokens, err := s.load(ctx)
	if err != nil {
		return err
	}

	entry, ok := tokens[token]
	if !ok {
		return ErrInvalidOrExpired
	}
	if !s.Now().Before(entry.ExpiresAt) {
		delete(tokens, token)
		_ = s.save(ctx, tokens)
		return ErrInvalidOrExpired
	}

	if !validation.ResetPasswordOK(newPassword) {
		return ErrWeakPassword
	}
	if newPassword != confirmPassword {
		return ErrMismatch
	}

	exists, err := s.ids.Exists(ctx, entry.Email)
	if err != nil {
		return fmt.Errorf("lookup identity: %w", err)
	}
	if !exists {
		return ErrIdentityMismatch
	}

	if err := s.ids.SetPassword(ctx, entry.Email, newPassword); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	delete(tokens, token)
	return s.save(ctx, tokens)
}

func (s *Store) load(ctx context.Context) (map[string]tokenEntry, error) {
	b, err := s.kv.Get(ctx, kvstore.KeyResetTokens)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return map[string]tokenEntry{}, nil
		}
		return nil, err
	}
	tokens := map[string]tokenEntry{}
	if err := json.Unmarshal(b, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *Store) save(ctx context.Context, tokens map[string]tokenEntry) error {
	b, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, kvstore.KeyResetTokens, b)
}

// generateToken returns 128 bits from crypto/rand, hex encoded.
func generateToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
