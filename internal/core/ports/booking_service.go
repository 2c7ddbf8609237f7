package ports

import (
	"context"

	"github.com/mindhaven/clinic-api/internal/core/domain"
)

// CreateBookingInput carries all data needed to create a new booking.
// Booking creation is a public action; there is no actor.
type CreateBookingInput struct {
	SpecialistID string
	Service      string
	Date         string // domain.DateLayout
	TimeSlot     string
	ClientName   string
	ClientEmail  string
	ClientPhone  string
	Notes        string
	// IdempotencyKey, when non-empty, suppresses duplicate submissions.
	IdempotencyKey string
}

// TransitionBookingInput carries a status change request.
// Role and SpecialistID identify the acting user: admins may transition any
// booking, specialists only their own.
type TransitionBookingInput struct {
	BookingID    string
	Target       domain.BookingStatus
	Role         string
	SpecialistID string
}

// AttachNoteInput carries a session note to append. Notes are always
// owner-scoped; there is no admin bypass.
type AttachNoteInput struct {
	BookingID    string
	SpecialistID string
	Text         string
}

// ListNotesInput scopes note listing to the booking's owner.
type ListNotesInput struct {
	BookingID    string
	SpecialistID string
}

// BookingService defines use-case operations for the booking lifecycle.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Transition(ctx context.Context, input TransitionBookingInput) (*domain.Booking, error)
	AttachNote(ctx context.Context, input AttachNoteInput) (*domain.SessionNote, error)
	ListNotes(ctx context.Context, input ListNotesInput) ([]*domain.SessionNote, error)
	// ListForSpecialist returns the specialist's own bookings.
	ListForSpecialist(ctx context.Context, specialistID string) ([]*domain.Booking, error)
	// ListRecent returns the newest bookings platform-wide (admin view).
	ListRecent(ctx context.Context, limit int) ([]*domain.Booking, error)
}
