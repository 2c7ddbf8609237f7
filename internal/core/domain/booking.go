package domain

import (
	"errors"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// DateLayout is the calendar-date format used on booking records.
const DateLayout = "2006-01-02"

// validTransitions defines the allowed state machine transitions.
// completed and cancelled are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrInvalidInput = errors.New("missing or malformed required fields")
var ErrBookingNotFound = errors.New("booking not found")
var ErrTransitionConflict = errors.New("booking was modified concurrently")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is one of the known booking statuses.
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is the core aggregate root: a client's scheduled session with a specialist.
// Date is a calendar date in DateLayout; TimeSlot is a display label ("10:00 AM").
type Booking struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	SpecialistID string        `json:"specialist_id" bson:"specialist_id"`
	Service      string        `json:"service" bson:"service"`
	Date         string        `json:"date" bson:"date"`
	TimeSlot     string        `json:"time_slot" bson:"time_slot"`
	ClientName   string        `json:"client_name" bson:"client_name"`
	ClientEmail  string        `json:"client_email" bson:"client_email"`
	ClientPhone  string        `json:"client_phone" bson:"client_phone"`
	Notes        string        `json:"notes,omitempty" bson:"notes,omitempty"`
	Status       BookingStatus `json:"status" bson:"status"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
}

// SessionNote is an append-only record a specialist attaches to a booking.
// Notes are never edited or deleted.
type SessionNote struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	BookingID    string    `json:"booking_id" bson:"booking_id"`
	SpecialistID string    `json:"specialist_id" bson:"specialist_id"`
	Text         string    `json:"text" bson:"text"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
