package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindhaven/clinic-api/internal/core/domain"
	"github.com/mindhaven/clinic-api/internal/core/ports"
)

// SpecialistService covers the public roster, admin management of specialist
// records, and a specialist's own profile edits.
type SpecialistService struct {
	repo ports.SpecialistRepository
	log  zerolog.Logger
}

func NewSpecialistService(repo ports.SpecialistRepository, log zerolog.Logger) *SpecialistService {
	return &SpecialistService{repo: repo, log: log}
}

func (s *SpecialistService) List(ctx context.Context) ([]*domain.Specialist, error) {
	return s.repo.List(ctx)
}

func (s *SpecialistService) Get(ctx context.Context, id string) (*domain.Specialist, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SpecialistService) Create(ctx context.Context, input ports.SpecialistInput) (*domain.Specialist, error) {
	if input.Name == "" || input.Specialty == "" || input.Fee < 0 {
		return nil, domain.ErrInvalidInput
	}
	status, err := parseSpecialistStatus(input.Status, domain.SpecialistActive)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	specialist := &domain.Specialist{
		Name:      input.Name,
		Specialty: input.Specialty,
		Bio:       input.Bio,
		Fee:       input.Fee,
		Photo:     input.Photo,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, specialist)
	if err != nil {
		return nil, fmt.Errorf("create specialist: %w", err)
	}

	s.log.Info().Str("specialist_id", created.ID).Str("name", created.Name).Msg("specialist created")
	return created, nil
}

func (s *SpecialistService) Update(ctx context.Context, id string, input ports.SpecialistInput) (*domain.Specialist, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Fee < 0 {
		return nil, domain.ErrInvalidInput
	}
	status, err := parseSpecialistStatus(input.Status, existing.Status)
	if err != nil {
		return nil, err
	}

	applySpecialistInput(existing, input)
	existing.Status = status

	return s.repo.Update(ctx, existing)
}

func (s *SpecialistService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("specialist_id", id).Msg("specialist deleted")
	return nil
}

// UpdateProfile is the owner-scoped edit: a specialist may change their own
// display fields and fee, but not their availability status.
func (s *SpecialistService) UpdateProfile(ctx context.Context, specialistID string, input ports.SpecialistInput) (*domain.Specialist, error) {
	existing, err := s.repo.FindByID(ctx, specialistID)
	if err != nil {
		return nil, err
	}
	if input.Fee < 0 {
		return nil, domain.ErrInvalidInput
	}

	applySpecialistInput(existing, input)
	return s.repo.Update(ctx, existing)
}

func applySpecialistInput(dst *domain.Specialist, input ports.SpecialistInput) {
	if input.Name != "" {
		dst.Name = input.Name
	}
	if input.Specialty != "" {
		dst.Specialty = input.Specialty
	}
	dst.Bio = input.Bio
	dst.Fee = input.Fee
	if input.Photo != "" {
		dst.Photo = input.Photo
	}
	dst.UpdatedAt = time.Now().UTC()
}

func parseSpecialistStatus(raw string, fallback domain.SpecialistStatus) (domain.SpecialistStatus, error) {
	switch domain.SpecialistStatus(raw) {
	case domain.SpecialistActive, domain.SpecialistOnLeave:
		return domain.SpecialistStatus(raw), nil
	case "":
		return fallback, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, raw)
	}
}
