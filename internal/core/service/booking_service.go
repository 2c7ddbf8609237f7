package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindhaven/clinic-api/internal/core/domain"
	"github.com/mindhaven/clinic-api/internal/core/ports"
)

const defaultRecentLimit = 50
const maxRecentLimit = 200

// IdempotencyChecker abstracts the duplicate-submission store (Redis).
// Get returns the booking id previously recorded for the key, or "" when the
// key has not been seen.
type IdempotencyChecker interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, bookingID string) error
}

// BookingService owns the booking lifecycle from public creation to a
// terminal status, plus the append-only session notes.
type BookingService struct {
	bookings ports.BookingRepository
	notes    ports.NoteRepository
	idem     IdempotencyChecker
	log      zerolog.Logger
}

func NewBookingService(bookings ports.BookingRepository, notes ports.NoteRepository, idem IdempotencyChecker, log zerolog.Logger) *BookingService {
	return &BookingService{bookings: bookings, notes: notes, idem: idem, log: log}
}

// Create accepts a public booking request. The initial status is always
// pending. Contact fields must be non-empty and the date parseable; past
// dates and overlapping slots are accepted.
func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	if input.IdempotencyKey != "" && s.idem != nil {
		id, err := s.idem.Get(ctx, input.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Msg("idempotency lookup failed, processing anyway")
		} else if id != "" {
			existing, err := s.bookings.FindByID(ctx, id)
			if err == nil {
				s.log.Info().Str("idempotency_key", input.IdempotencyKey).Str("booking_id", id).Msg("idempotent replay")
				return existing, nil
			}
		}
	}

	if input.SpecialistID == "" || input.Service == "" || input.TimeSlot == "" ||
		input.ClientName == "" || input.ClientEmail == "" || input.ClientPhone == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := time.Parse(domain.DateLayout, input.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be %s", domain.ErrInvalidInput, domain.DateLayout)
	}

	booking := &domain.Booking{
		SpecialistID: input.SpecialistID,
		Service:      input.Service,
		Date:         input.Date,
		TimeSlot:     input.TimeSlot,
		ClientName:   input.ClientName,
		ClientEmail:  input.ClientEmail,
		ClientPhone:  input.ClientPhone,
		Notes:        input.Notes,
		Status:       domain.StatusPending,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.bookings.Insert(ctx, booking)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create booking")
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Set(ctx, input.IdempotencyKey, created.ID); err != nil {
			s.log.Warn().Err(err).Msg("failed to record idempotency key")
		}
	}

	s.log.Info().Str("booking_id", created.ID).Str("specialist_id", created.SpecialistID).Str("date", created.Date).Msg("booking created")
	return created, nil
}

// Transition moves a booking along the status graph. Specialists may only
// transition bookings they own; admins may transition any booking. The update
// is a compare-and-swap, so of two concurrent transitions at most one applies.
func (s *BookingService) Transition(ctx context.Context, input ports.TransitionBookingInput) (*domain.Booking, error) {
	if !input.Target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, input.Target)
	}

	booking, err := s.bookings.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	if input.Role != domain.RoleAdmin && booking.SpecialistID != input.SpecialistID {
		return nil, domain.ErrForbidden
	}

	if !booking.Status.CanTransitionTo(input.Target) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, booking.Status, input.Target)
	}

	updated, err := s.bookings.UpdateStatus(ctx, booking.ID, booking.Status, input.Target)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("booking_id", updated.ID).
		Str("from", string(booking.Status)).
		Str("to", string(updated.Status)).
		Msg("booking transitioned")

	return updated, nil
}

// AttachNote appends an immutable session note to an owned booking. Any
// booking status is acceptable, terminal states included.
func (s *BookingService) AttachNote(ctx context.Context, input ports.AttachNoteInput) (*domain.SessionNote, error) {
	if input.Text == "" {
		return nil, domain.ErrInvalidInput
	}

	booking, err := s.bookings.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.SpecialistID != input.SpecialistID {
		return nil, domain.ErrForbidden
	}

	note := &domain.SessionNote{
		BookingID:    booking.ID,
		SpecialistID: input.SpecialistID,
		Text:         input.Text,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.notes.Insert(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("attach note: %w", err)
	}

	s.log.Info().Str("booking_id", booking.ID).Str("note_id", created.ID).Msg("session note attached")
	return created, nil
}

// ListNotes returns the notes on an owned booking, oldest first.
func (s *BookingService) ListNotes(ctx context.Context, input ports.ListNotesInput) ([]*domain.SessionNote, error) {
	booking, err := s.bookings.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.SpecialistID != input.SpecialistID {
		return nil, domain.ErrForbidden
	}
	return s.notes.ListByBooking(ctx, booking.ID)
}

// ListForSpecialist returns all bookings owned by the specialist.
func (s *BookingService) ListForSpecialist(ctx context.Context, specialistID string) ([]*domain.Booking, error) {
	return s.bookings.ListBySpecialist(ctx, specialistID)
}

// ListRecent returns the newest bookings across all specialists.
func (s *BookingService) ListRecent(ctx context.Context, limit int) ([]*domain.Booking, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return s.bookings.ListRecent(ctx, limit)
}
