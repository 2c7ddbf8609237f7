package handler

import "time"

// --- Request / Response types ---

type createBookingRequest struct {
	SpecialistID string `json:"specialist_id" validate:"required"`
	Service      string `json:"service"       validate:"required"`
	Date         string `json:"date"          validate:"required,datetime=2006-01-02"`
	TimeSlot     string `json:"time_slot"     validate:"required"`
	ClientName   string `json:"client_name"   validate:"required"`
	ClientEmail  string `json:"client_email"  validate:"required,email"`
	ClientPhone  string `json:"client_phone"  validate:"required"`
	Notes        string `json:"notes"`
}

type transitionBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
}

type attachNoteRequest struct {
	Text string `json:"text" validate:"required"`
}

// Response-only types owned by the transport layer.
// These are intentionally separate from domain types so the JSON contract is
// not coupled to internal service changes.

type bookingResponse struct {
	ID           string    `json:"id"`
	SpecialistID string    `json:"specialist_id"`
	Service      string    `json:"service"`
	Date         string    `json:"date"`
	TimeSlot     string    `json:"time_slot"`
	ClientName   string    `json:"client_name"`
	ClientEmail  string    `json:"client_email"`
	ClientPhone  string    `json:"client_phone"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type listBookingsResponse struct {
	Data  []bookingResponse `json:"data"`
	Total int               `json:"total"`
}

type listNotesResponse struct {
	Data  []noteResponse `json:"data"`
	Total int            `json:"total"`
}
