package ports

import (
	"context"

	"github.com/mindhaven/clinic-api/internal/core/domain"
)

// UserRepository defines the interface for user identity persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}

// SessionRepository persists opaque login sessions keyed by token.
type SessionRepository interface {
	Insert(ctx context.Context, session *domain.Session) error
	// FindByToken returns domain.ErrUnauthenticated when no session exists.
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
	// Delete removes the session if present; deleting a missing token is not an error.
	Delete(ctx context.Context, token string) error
}
