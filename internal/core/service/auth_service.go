package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mindhaven/clinic-api/internal/core/domain"
	"github.com/mindhaven/clinic-api/internal/core/ports"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// dummyHash is compared against when the account does not exist, so a login
// probe costs the same whether or not the email is registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements credential verification and the session lifecycle.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionRepository
	sessionTTL time.Duration
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{users: users, sessions: sessions, sessionTTL: sessionTTL}
}

// Login verifies the credentials and issues a new session token. Every
// failure mode surfaces as domain.ErrInvalidCredentials; a missing account is
// never distinguishable from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	now := time.Now().UTC()
	session := &domain.Session{
		Token:     token,
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	return token, user, nil
}

// Resolve maps a session token to its user. An expired session is deleted on
// first use and treated as nonexistent from then on.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	if session.Expired(time.Now().UTC()) {
		_ = s.sessions.Delete(ctx, session.Token)
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	return user, nil
}

// Logout revokes the session. Revoking an unknown or already-revoked token
// succeeds silently.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// ChangePassword re-verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	return s.users.UpdatePasswordHash(ctx, userID, string(hash))
}

// HashPassword produces a bcrypt hash for seeding and registration flows.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// newSessionToken returns 32 random bytes hex-encoded. The token is an opaque
// capability; all its entropy comes from crypto/rand.
func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
