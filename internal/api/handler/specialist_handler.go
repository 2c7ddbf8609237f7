package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mindhaven/clinic-api/internal/core/domain"
	"github.com/mindhaven/clinic-api/internal/core/ports"
)

// SpecialistHandler handles the public roster, admin management, and a
// specialist's own profile.
type SpecialistHandler struct {
	service ports.SpecialistService
}

func NewSpecialistHandler(service ports.SpecialistService) *SpecialistHandler {
	return &SpecialistHandler{service: service}
}

type specialistRequest struct {
	Name      string `json:"name"      validate:"required"`
	Specialty string `json:"specialty" validate:"required"`
	Bio       string `json:"bio"`
	Fee       int64  `json:"fee"       validate:"gte=0"`
	Photo     string `json:"photo"`
	Status    string `json:"status"    validate:"omitempty,oneof=Active OnLeave"`
}

// profileRequest is the owner-scoped variant; status is deliberately absent.
type profileRequest struct {
	Name      string `json:"name"      validate:"required"`
	Specialty string `json:"specialty" validate:"required"`
	Bio       string `json:"bio"`
	Fee       int64  `json:"fee"       validate:"gte=0"`
	Photo     string `json:"photo"`
}

type specialistResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Bio       string    `json:"bio"`
	Fee       int64     `json:"fee"`
	Photo     string    `json:"photo,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listSpecialistsResponse struct {
	Data  []specialistResponse `json:"data"`
	Total int                  `json:"total"`
}

// List handles GET /v1/specialists — the public roster. No auth.
//
// @Summary      List specialists
// @Tags         specialists
// @Produce      json
// @Success      200  {object}  listSpecialistsResponse
// @Router       /v1/specialists [get]
func (h *SpecialistHandler) List(c echo.Context) error {
	specialists, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := listSpecialistsResponse{Data: make([]specialistResponse, 0, len(specialists)), Total: len(specialists)}
	for _, s := range specialists {
		resp.Data = append(resp.Data, toSpecialistResponse(s))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /v1/admin/specialists.
//
// @Summary      Create a specialist
// @Tags         specialists
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      specialistRequest  true  "Specialist details"
// @Success      201   {object}  specialistResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/admin/specialists [post]
func (h *SpecialistHandler) Create(c echo.Context) error {
	var req specialistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	specialist, err := h.service.Create(c.Request().Context(), ports.SpecialistInput{
		Name:      req.Name,
		Specialty: req.Specialty,
		Bio:       req.Bio,
		Fee:       req.Fee,
		Photo:     req.Photo,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toSpecialistResponse(specialist))
}

// Update handles PUT /v1/admin/specialists/:id.
//
// @Summary      Update a specialist
// @Tags         specialists
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      string             true  "Specialist id"
// @Param        body  body      specialistRequest  true  "Specialist details"
// @Success      200   {object}  specialistResponse
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/specialists/{id} [put]
func (h *SpecialistHandler) Update(c echo.Context) error {
	var req specialistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	specialist, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.SpecialistInput{
		Name:      req.Name,
		Specialty: req.Specialty,
		Bio:       req.Bio,
		Fee:       req.Fee,
		Photo:     req.Photo,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSpecialistResponse(specialist))
}

// Delete handles DELETE /v1/admin/specialists/:id.
//
// @Summary      Delete a specialist
// @Tags         specialists
// @Security     SessionAuth
// @Param        id  path  string  true  "Specialist id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/specialists/{id} [delete]
func (h *SpecialistHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetProfile handles GET /v1/specialist/profile.
//
// @Summary      Get own specialist profile
// @Tags         specialists
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  specialistResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/specialist/profile [get]
func (h *SpecialistHandler) GetProfile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	specialist, err := h.service.Get(c.Request().Context(), user.SpecialistID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSpecialistResponse(specialist))
}

// UpdateProfile handles PUT /v1/specialist/profile. Status is not
// self-editable; only an admin can change it.
//
// @Summary      Update own specialist profile
// @Tags         specialists
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      profileRequest  true  "Profile details"
// @Success      200   {object}  specialistResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/specialist/profile [put]
func (h *SpecialistHandler) UpdateProfile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	specialist, err := h.service.UpdateProfile(c.Request().Context(), user.SpecialistID, ports.SpecialistInput{
		Name:      req.Name,
		Specialty: req.Specialty,
		Bio:       req.Bio,
		Fee:       req.Fee,
		Photo:     req.Photo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSpecialistResponse(specialist))
}

func toSpecialistResponse(s *domain.Specialist) specialistResponse {
	return specialistResponse{
		ID:        s.ID,
		Name:      s.Name,
		Specialty: s.Specialty,
		Bio:       s.Bio,
		Fee:       s.Fee,
		Photo:     s.Photo,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
