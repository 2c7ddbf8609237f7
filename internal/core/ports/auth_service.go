package ports

import (
	"context"

	"github.com/mindhaven/clinic-api/internal/core/domain"
)

// AuthService owns credential verification and the session token lifecycle.
type AuthService interface {
	// Login verifies credentials and issues a fresh session token. A missing
	// account and a wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Resolve maps a token to its user. Expired sessions are purged as a side
	// effect and reported as domain.ErrUnauthenticated.
	Resolve(ctx context.Context, token string) (*domain.User, error)
	// Logout revokes the session; revoking an unknown token is a no-op.
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
