package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mindhaven/clinic-api/internal/api/metrics"
	"github.com/mindhaven/clinic-api/internal/core/domain"
	"github.com/mindhaven/clinic-api/internal/core/ports"
)

// BookingHandler handles HTTP requests for the booking lifecycle: public
// creation, status transitions, and session notes.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /v1/bookings — the public booking form. No auth.
// An optional Idempotency-Key header makes retried submissions safe.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                false  "Client-chosen key to dedupe retries"
// @Param        body             body      createBookingRequest  true   "Booking details"
// @Success      201              {object}  bookingResponse
// @Failure      400              {object}  map[string]string
// @Router       /v1/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		SpecialistID:   req.SpecialistID,
		Service:        req.Service,
		Date:           req.Date,
		TimeSlot:       req.TimeSlot,
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		ClientPhone:    req.ClientPhone,
		Notes:          req.Notes,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	metrics.BookingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toBookingResponse(booking))
}

// Transition handles PATCH /bookings/:id/status for both the specialist and
// admin groups. Ownership and the state machine are enforced by the service.
//
// @Summary      Transition a booking's status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      string                    true  "Booking id"
// @Param        body  body      transitionBookingRequest  true  "Target status"
// @Success      200   {object}  bookingResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/specialist/bookings/{id}/status [patch]
func (h *BookingHandler) Transition(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req transitionBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Transition(c.Request().Context(), ports.TransitionBookingInput{
		BookingID:    c.Param("id"),
		Target:       domain.BookingStatus(req.Status),
		Role:         user.Role,
		SpecialistID: user.SpecialistID,
	})
	if err != nil {
		metrics.BookingTransitionErrorsTotal.WithLabelValues(transitionErrorReason(err)).Inc()
		return err
	}

	metrics.BookingTransitionsTotal.WithLabelValues(string(booking.Status)).Inc()
	return c.JSON(http.StatusOK, toBookingResponse(booking))
}

// ListMine handles GET /v1/specialist/bookings.
//
// @Summary      List own bookings
// @Tags         bookings
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  listBookingsResponse
// @Router       /v1/specialist/bookings [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	bookings, err := h.service.ListForSpecialist(c.Request().Context(), user.SpecialistID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListBookingsResponse(bookings))
}

// ListAll handles GET /v1/admin/bookings with an optional ?limit= parameter.
//
// @Summary      List recent bookings platform-wide
// @Tags         bookings
// @Produce      json
// @Security     SessionAuth
// @Param        limit  query     int  false  "Max results (default 50, cap 200)"
// @Success      200    {object}  listBookingsResponse
// @Failure      400    {object}  map[string]string
// @Router       /v1/admin/bookings [get]
func (h *BookingHandler) ListAll(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	bookings, err := h.service.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListBookingsResponse(bookings))
}

// AttachNote handles POST /v1/specialist/bookings/:id/notes.
//
// @Summary      Append a session note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      string             true  "Booking id"
// @Param        body  body      attachNoteRequest  true  "Note text"
// @Success      201   {object}  noteResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/specialist/bookings/{id}/notes [post]
func (h *BookingHandler) AttachNote(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req attachNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.service.AttachNote(c.Request().Context(), ports.AttachNoteInput{
		BookingID:    c.Param("id"),
		SpecialistID: user.SpecialistID,
		Text:         req.Text,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

// ListNotes handles GET /v1/specialist/bookings/:id/notes.
//
// @Summary      List a booking's session notes
// @Tags         notes
// @Produce      json
// @Security     SessionAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  listNotesResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/specialist/bookings/{id}/notes [get]
func (h *BookingHandler) ListNotes(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	notes, err := h.service.ListNotes(c.Request().Context(), ports.ListNotesInput{
		BookingID:    c.Param("id"),
		SpecialistID: user.SpecialistID,
	})
	if err != nil {
		return err
	}

	resp := listNotesResponse{Data: make([]noteResponse, 0, len(notes)), Total: len(notes)}
	for _, n := range notes {
		resp.Data = append(resp.Data, toNoteResponse(n))
	}
	return c.JSON(http.StatusOK, resp)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:           b.ID,
		SpecialistID: b.SpecialistID,
		Service:      b.Service,
		Date:         b.Date,
		TimeSlot:     b.TimeSlot,
		ClientName:   b.ClientName,
		ClientEmail:  b.ClientEmail,
		ClientPhone:  b.ClientPhone,
		Notes:        b.Notes,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
	}
}

func toListBookingsResponse(bookings []*domain.Booking) listBookingsResponse {
	resp := listBookingsResponse{Data: make([]bookingResponse, 0, len(bookings)), Total: len(bookings)}
	for _, b := range bookings {
		resp.Data = append(resp.Data, toBookingResponse(b))
	}
	return resp
}

func toNoteResponse(n *domain.SessionNote) noteResponse {
	return noteResponse{
		ID:        n.ID,
		BookingID: n.BookingID,
		Text:      n.Text,
		CreatedAt: n.CreatedAt,
	}
}

func transitionErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrTransitionConflict):
		return "conflict"
	default:
		return "error"
	}
}
