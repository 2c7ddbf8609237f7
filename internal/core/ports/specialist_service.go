package ports

import (
	"context"

	"github.com/mindhaven/clinic-api/internal/core/domain"
)

// SpecialistInput carries the editable fields of a specialist record.
type SpecialistInput struct {
	Name      string
	Specialty string
	Bio       string
	Fee       int64
	Photo     string
	Status    string
}

// SpecialistService covers the public roster, admin management, and a
// specialist's own profile.
type SpecialistService interface {
	List(ctx context.Context) ([]*domain.Specialist, error)
	Get(ctx context.Context, id string) (*domain.Specialist, error)
	Create(ctx context.Context, input SpecialistInput) (*domain.Specialist, error)
	Update(ctx context.Context, id string, input SpecialistInput) (*domain.Specialist, error)
	Delete(ctx context.Context, id string) error
	// UpdateProfile is the owner-scoped variant: status is not self-editable.
	UpdateProfile(ctx context.Context, specialistID string, input SpecialistInput) (*domain.Specialist, error)
}
