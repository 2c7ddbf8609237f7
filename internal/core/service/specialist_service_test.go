package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mindhaven/clinic-api/internal/core/domain"
	"github.com/mindhaven/clinic-api/internal/core/ports"
)

type stubSpecialistRepo struct {
	specialists map[string]*domain.Specialist
	seq         int
}

func newStubSpecialistRepo() *stubSpecialistRepo {
	return &stubSpecialistRepo{specialists: make(map[string]*domain.Specialist)}
}

func cloneSpecialist(s *domain.Specialist) *domain.Specialist {
	clone := *s
	return &clone
}

func (r *stubSpecialistRepo) Insert(_ context.Context, s *domain.Specialist) (*domain.Specialist, error) {
	r.seq++
	clone := cloneSpecialist(s)
	clone.ID = fmt.Sprintf("sp_%d", r.seq)
	r.specialists[clone.ID] = clone
	return cloneSpecialist(clone), nil
}

func (r *stubSpecialistRepo) FindByID(_ context.Context, id string) (*domain.Specialist, error) {
	if s, ok := r.specialists[id]; ok {
		return cloneSpecialist(s), nil
	}
	return nil, domain.ErrSpecialistNotFound
}

func (r *stubSpecialistRepo) List(_ context.Context) ([]*domain.Specialist, error) {
	var out []*domain.Specialist
	for _, s := range r.specialists {
		out = append(out, cloneSpecialist(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubSpecialistRepo) Update(_ context.Context, s *domain.Specialist) (*domain.Specialist, error) {
	if _, ok := r.specialists[s.ID]; !ok {
		return nil, domain.ErrSpecialistNotFound
	}
	r.specialists[s.ID] = cloneSpecialist(s)
	return cloneSpecialist(s), nil
}

func (r *stubSpecialistRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.specialists[id]; !ok {
		return domain.ErrSpecialistNotFound
	}
	delete(r.specialists, id)
	return nil
}

func TestSpecialistService_Create(t *testing.T) {
	svc := NewSpecialistService(newStubSpecialistRepo(), zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.SpecialistInput{
		Name:      "Dr. Lakshmi Nair",
		Specialty: "Clinical Psychologist",
		Bio:       "Postpartum depression and women's mental health.",
		Fee:       1500,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.SpecialistActive {
		t.Fatalf("expected default status Active, got %s", created.Status)
	}

	if _, err := svc.Create(context.Background(), ports.SpecialistInput{Name: "X", Specialty: "Y", Fee: -1}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative fee: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.SpecialistInput{Name: "", Specialty: "Y", Fee: 100}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.SpecialistInput{Name: "X", Specialty: "Y", Fee: 100, Status: "Retired"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown status: expected ErrInvalidInput, got %v", err)
	}
}

func TestSpecialistService_Update(t *testing.T) {
	repo := newStubSpecialistRepo()
	svc := NewSpecialistService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.SpecialistInput{Name: "Dr. Priya Kumar", Specialty: "Psychiatrist", Fee: 2000})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, ports.SpecialistInput{
		Name: "Dr. Priya Kumar", Specialty: "Psychiatrist", Fee: 2500, Status: "OnLeave",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Fee != 2500 || updated.Status != domain.SpecialistOnLeave {
		t.Fatalf("update not applied: %+v", updated)
	}

	if _, err := svc.Update(context.Background(), "missing", ports.SpecialistInput{Fee: 100}); !errors.Is(err, domain.ErrSpecialistNotFound) {
		t.Fatalf("expected ErrSpecialistNotFound, got %v", err)
	}
}

func TestSpecialistService_UpdateProfile_KeepsStatus(t *testing.T) {
	repo := newStubSpecialistRepo()
	svc := NewSpecialistService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.SpecialistInput{
		Name: "Dr. Priya Kumar", Specialty: "Psychiatrist", Fee: 2000, Status: "OnLeave",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), created.ID, ports.SpecialistInput{
		Name: "Dr. Priya Kumar", Specialty: "Psychiatrist", Bio: "Adolescent mental health.", Fee: 2200,
		Status: "Active", // ignored: status is not self-editable
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Status != domain.SpecialistOnLeave {
		t.Fatalf("profile update must not change status, got %s", updated.Status)
	}
	if updated.Fee != 2200 || updated.Bio != "Adolescent mental health." {
		t.Fatalf("profile fields not applied: %+v", updated)
	}
}

func TestSpecialistService_Delete(t *testing.T) {
	repo := newStubSpecialistRepo()
	svc := NewSpecialistService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.SpecialistInput{Name: "Dr. X", Specialty: "Counselor", Fee: 900})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrSpecialistNotFound) {
		t.Fatalf("expected ErrSpecialistNotFound, got %v", err)
	}
}
