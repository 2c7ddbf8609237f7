package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mindhaven/clinic-api/internal/core/domain"
	"github.com/mindhaven/clinic-api/internal/core/ports"
)

type stubBookingService struct {
	createFn     func(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error)
	transitionFn func(ctx context.Context, input ports.TransitionBookingInput) (*domain.Booking, error)
	listRecentFn func(ctx context.Context, limit int) ([]*domain.Booking, error)
}

func (s *stubBookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	return s.createFn(ctx, input)
}

func (s *stubBookingService) Transition(ctx context.Context, input ports.TransitionBookingInput) (*domain.Booking, error) {
	return s.transitionFn(ctx, input)
}

func (s *stubBookingService) AttachNote(ctx context.Context, input ports.AttachNoteInput) (*domain.SessionNote, error) {
	return &domain.SessionNote{ID: "n1", BookingID: input.BookingID, SpecialistID: input.SpecialistID, Text: input.Text}, nil
}

func (s *stubBookingService) ListNotes(ctx context.Context, input ports.ListNotesInput) ([]*domain.SessionNote, error) {
	return nil, nil
}

func (s *stubBookingService) ListForSpecialist(ctx context.Context, specialistID string) ([]*domain.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) ListRecent(ctx context.Context, limit int) ([]*domain.Booking, error) {
	return s.listRecentFn(ctx, limit)
}

func TestBookingHandler_Create_PassesIdempotencyKey(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
			if input.IdempotencyKey != "retry-key-1" {
				t.Fatalf("idempotency key not forwarded: %q", input.IdempotencyKey)
			}
			return &domain.Booking{
				ID:           "b1",
				SpecialistID: input.SpecialistID,
				Service:      input.Service,
				Date:         input.Date,
				TimeSlot:     input.TimeSlot,
				ClientName:   input.ClientName,
				ClientEmail:  input.ClientEmail,
				ClientPhone:  input.ClientPhone,
				Status:       domain.StatusPending,
				CreatedAt:    time.Now(),
			}, nil
		},
	}
	handler := NewBookingHandler(stub)

	body := strings.NewReader(`{
		"specialist_id": "sp1",
		"service": "Therapy Session",
		"date": "2026-09-15",
		"time_slot": "10:00 AM",
		"client_name": "Ana",
		"client_email": "ana@example.com",
		"client_phone": "555-0101"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Idempotency-Key", "retry-key-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "pending" {
		t.Fatalf("new booking must start pending, got %v", resp["status"])
	}
}

func TestBookingHandler_Create_RejectsBadDate(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewBookingHandler(stub)

	body := strings.NewReader(`{
		"specialist_id": "sp1",
		"service": "Therapy Session",
		"date": "15/09/2026",
		"time_slot": "10:00 AM",
		"client_name": "Ana",
		"client_email": "ana@example.com",
		"client_phone": "555-0101"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %v", err)
	}
}

func TestBookingHandler_Transition_UsesActorFromContext(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookingService{
		transitionFn: func(ctx context.Context, input ports.TransitionBookingInput) (*domain.Booking, error) {
			if input.BookingID != "b1" || input.Target != domain.StatusConfirmed {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.Role != domain.RoleSpecialist || input.SpecialistID != "sp1" {
				t.Fatalf("actor not taken from context: %+v", input)
			}
			return &domain.Booking{ID: "b1", SpecialistID: "sp1", Status: domain.StatusConfirmed}, nil
		},
	}
	handler := NewBookingHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/v1/specialist/bookings/b1/status", strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("b1")
	c.Set("user", &domain.User{ID: "u1", Role: domain.RoleSpecialist, SpecialistID: "sp1"})

	if err := handler.Transition(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBookingHandler_Transition_RejectsUnknownStatus(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookingService{
		transitionFn: func(ctx context.Context, input ports.TransitionBookingInput) (*domain.Booking, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewBookingHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/v1/specialist/bookings/b1/status", strings.NewReader(`{"status":"pending"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("b1")
	c.Set("user", &domain.User{ID: "u1", Role: domain.RoleSpecialist, SpecialistID: "sp1"})

	err := handler.Transition(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for status outside the allowed set, got %v", err)
	}
}

func TestBookingHandler_ListAll_ParsesLimit(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookingService{
		listRecentFn: func(ctx context.Context, limit int) ([]*domain.Booking, error) {
			if limit != 25 {
				t.Fatalf("expected limit 25, got %d", limit)
			}
			return []*domain.Booking{{ID: "b1", Status: domain.StatusPending}}, nil
		},
	}
	handler := NewBookingHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/bookings?limit=25", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ListAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(1) {
		t.Fatalf("unexpected total: %v", resp["total"])
	}
}

func TestBookingHandler_ListAll_RejectsBadLimit(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookingService{}
	handler := NewBookingHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/bookings?limit=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.ListAll(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric limit, got %v", err)
	}
}
