package ports

import (
	"context"

	"github.com/mindhaven/clinic-api/internal/core/domain"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Insert(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	// ListBySpecialist returns all bookings owned by the specialist, newest date first.
	ListBySpecialist(ctx context.Context, specialistID string) ([]*domain.Booking, error)
	// ListRecent returns the most recently created bookings across all specialists.
	ListRecent(ctx context.Context, limit int) ([]*domain.Booking, error)
	// UpdateStatus applies a compare-and-swap on the status field: the update
	// only matches when the stored status still equals from. Returns
	// domain.ErrTransitionConflict when the record exists but the CAS missed,
	// domain.ErrBookingNotFound when it does not exist.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error)
}

// NoteRepository persists append-only session notes.
type NoteRepository interface {
	Insert(ctx context.Context, n *domain.SessionNote) (*domain.SessionNote, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*domain.SessionNote, error)
}
