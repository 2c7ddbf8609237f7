package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mindhaven/clinic-api/internal/api/metrics"
	"github.com/mindhaven/clinic-api/internal/core/ports"
)

// StatsHandler serves the read-side projections derived from a specialist's
// booking history: dashboard, earnings, and patient rollup.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

type dashboardResponse struct {
	TodayAppointments int   `json:"today_appointments"`
	TotalPatients     int   `json:"total_patients"`
	MonthlyEarnings   int64 `json:"monthly_earnings"`
	CompletedSessions int   `json:"completed_sessions"`
}

type monthEarningsResponse struct {
	Month    int   `json:"month"`
	Sessions int   `json:"sessions"`
	Earnings int64 `json:"earnings"`
}

type earningsResponse struct {
	ThisMonth         int64                   `json:"this_month"`
	LastMonth         int64                   `json:"last_month"`
	ThisYear          int64                   `json:"this_year"`
	CompletedSessions int                     `json:"completed_sessions"`
	MonthlyBreakdown  []monthEarningsResponse `json:"monthly_breakdown"`
}

type patientResponse struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	TotalSessions int    `json:"total_sessions"`
	LastSession   string `json:"last_session"`
}

type listPatientsResponse struct {
	Data  []patientResponse `json:"data"`
	Total int               `json:"total"`
}

// Dashboard handles GET /v1/specialist/dashboard.
//
// @Summary      Dashboard summary
// @Tags         stats
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  dashboardResponse
// @Router       /v1/specialist/dashboard [get]
func (h *StatsHandler) Dashboard(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	timer := prometheus.NewTimer(metrics.AggregationDuration.WithLabelValues("dashboard"))
	stats, err := h.service.Dashboard(c.Request().Context(), user.SpecialistID)
	timer.ObserveDuration()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		TodayAppointments: stats.TodayAppointments,
		TotalPatients:     stats.TotalPatients,
		MonthlyEarnings:   stats.MonthlyEarnings,
		CompletedSessions: stats.CompletedSessions,
	})
}

// Earnings handles GET /v1/specialist/earnings.
//
// @Summary      Earnings report
// @Tags         stats
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  earningsResponse
// @Router       /v1/specialist/earnings [get]
func (h *StatsHandler) Earnings(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	timer := prometheus.NewTimer(metrics.AggregationDuration.WithLabelValues("earnings"))
	report, err := h.service.Earnings(c.Request().Context(), user.SpecialistID)
	timer.ObserveDuration()
	if err != nil {
		return err
	}

	resp := earningsResponse{
		ThisMonth:         report.ThisMonth,
		LastMonth:         report.LastMonth,
		ThisYear:          report.ThisYear,
		CompletedSessions: report.CompletedSessions,
		MonthlyBreakdown:  make([]monthEarningsResponse, 0, len(report.MonthlyBreakdown)),
	}
	for _, m := range report.MonthlyBreakdown {
		resp.MonthlyBreakdown = append(resp.MonthlyBreakdown, monthEarningsResponse{
			Month:    m.Month,
			Sessions: m.Sessions,
			Earnings: m.Earnings,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// Patients handles GET /v1/specialist/patients.
//
// @Summary      Patient rollup
// @Tags         stats
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  listPatientsResponse
// @Router       /v1/specialist/patients [get]
func (h *StatsHandler) Patients(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	timer := prometheus.NewTimer(metrics.AggregationDuration.WithLabelValues("patients"))
	patients, err := h.service.Patients(c.Request().Context(), user.SpecialistID)
	timer.ObserveDuration()
	if err != nil {
		return err
	}

	resp := listPatientsResponse{Data: make([]patientResponse, 0, len(patients)), Total: len(patients)}
	for _, p := range patients {
		resp.Data = append(resp.Data, patientResponse{
			Name:          p.Name,
			Email:         p.Email,
			Phone:         p.Phone,
			TotalSessions: p.TotalSessions,
			LastSession:   p.LastSession,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
