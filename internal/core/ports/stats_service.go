package ports

import "context"

// DashboardStats is the specialist's at-a-glance view, recomputed per request.
type DashboardStats struct {
	TodayAppointments int
	TotalPatients     int
	MonthlyEarnings   int64
	CompletedSessions int
}

// MonthEarnings is one slot of the twelve-month breakdown for the current year.
type MonthEarnings struct {
	Month    int // 1-12
	Sessions int
	Earnings int64
}

// EarningsReport summarizes completed-session earnings by calendar boundaries
// of the booking date (not creation time).
type EarningsReport struct {
	ThisMonth         int64
	LastMonth         int64
	ThisYear          int64
	CompletedSessions int
	MonthlyBreakdown  []MonthEarnings // always 12 entries, January first
}

// PatientSummary is the per-client rollup grouped by email.
type PatientSummary struct {
	Name          string
	Email         string
	Phone         string
	TotalSessions int
	LastSession   string // domain.DateLayout
}

// StatsService derives read-side projections from a specialist's booking
// history. It never mutates bookings and holds no state of its own.
type StatsService interface {
	Dashboard(ctx context.Context, specialistID string) (*DashboardStats, error)
	Earnings(ctx context.Context, specialistID string) (*EarningsReport, error)
	Patients(ctx context.Context, specialistID string) ([]PatientSummary, error)
}
