package ports

import (
	"context"

	"github.com/mindhaven/clinic-api/internal/core/domain"
)

// SpecialistRepository defines persistence operations for specialist records.
type SpecialistRepository interface {
	Insert(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error)
	FindByID(ctx context.Context, id string) (*domain.Specialist, error)
	List(ctx context.Context) ([]*domain.Specialist, error)
	Update(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error)
	Delete(ctx context.Context, id string) error
}
