package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mindhaven/clinic-api/internal/core/domain"
	"github.com/mindhaven/clinic-api/internal/core/ports"
)

// StatsService derives dashboard, earnings, and patient projections from a
// specialist's booking history. Every query recomputes from the authoritative
// booking set; nothing here caches or mutates.
type StatsService struct {
	bookings    ports.BookingRepository
	specialists ports.SpecialistRepository
}

func NewStatsService(bookings ports.BookingRepository, specialists ports.SpecialistRepository) *StatsService {
	return &StatsService{bookings: bookings, specialists: specialists}
}

func (s *StatsService) Dashboard(ctx context.Context, specialistID string) (*ports.DashboardStats, error) {
	bookings, specialist, err := s.load(ctx, specialistID)
	if err != nil {
		return nil, err
	}
	stats := ComputeDashboard(bookings, specialist.Fee, time.Now().UTC())
	return &stats, nil
}

func (s *StatsService) Earnings(ctx context.Context, specialistID string) (*ports.EarningsReport, error) {
	bookings, specialist, err := s.load(ctx, specialistID)
	if err != nil {
		return nil, err
	}
	report := ComputeEarnings(bookings, specialist.Fee, time.Now().UTC())
	return &report, nil
}

func (s *StatsService) Patients(ctx context.Context, specialistID string) ([]ports.PatientSummary, error) {
	bookings, err := s.bookings.ListBySpecialist(ctx, specialistID)
	if err != nil {
		return nil, fmt.Errorf("patients: %w", err)
	}
	return ComputePatientRollup(bookings), nil
}

func (s *StatsService) load(ctx context.Context, specialistID string) ([]*domain.Booking, *domain.Specialist, error) {
	specialist, err := s.specialists.FindByID(ctx, specialistID)
	if err != nil {
		return nil, nil, fmt.Errorf("load stats inputs: %w", err)
	}
	bookings, err := s.bookings.ListBySpecialist(ctx, specialistID)
	if err != nil {
		return nil, nil, fmt.Errorf("load stats inputs: %w", err)
	}
	return bookings, specialist, nil
}

// ComputeDashboard is a pure projection over a booking snapshot. today fixes
// the calendar reference so identical inputs always yield identical output.
func ComputeDashboard(bookings []*domain.Booking, fee int64, today time.Time) ports.DashboardStats {
	todayStr := today.Format(domain.DateLayout)

	var stats ports.DashboardStats
	patients := make(map[string]struct{})

	for _, b := range bookings {
		patients[b.ClientEmail] = struct{}{}

		if b.Date == todayStr && b.Status != domain.StatusCancelled {
			stats.TodayAppointments++
		}
		if b.Status != domain.StatusCompleted {
			continue
		}
		stats.CompletedSessions++
		if d, ok := parseBookingDate(b); ok && d.Year() == today.Year() && d.Month() == today.Month() {
			stats.MonthlyEarnings += fee
		}
	}

	stats.TotalPatients = len(patients)
	return stats
}

// ComputeEarnings summarizes completed bookings by the calendar month and
// year of the booking date. December wraps to January of the previous year
// for the last-month figure.
func ComputeEarnings(bookings []*domain.Booking, fee int64, now time.Time) ports.EarningsReport {
	curYear, curMonth := now.Year(), now.Month()
	lastMonth := curMonth - 1
	lastMonthYear := curYear
	if curMonth == time.January {
		lastMonth = time.December
		lastMonthYear = curYear - 1
	}

	report := ports.EarningsReport{
		MonthlyBreakdown: make([]ports.MonthEarnings, 12),
	}
	for i := range report.MonthlyBreakdown {
		report.MonthlyBreakdown[i].Month = i + 1
	}

	for _, b := range bookings {
		if b.Status != domain.StatusCompleted {
			continue
		}
		report.CompletedSessions++

		d, ok := parseBookingDate(b)
		if !ok {
			continue
		}
		if d.Year() == curYear && d.Month() == curMonth {
			report.ThisMonth += fee
		}
		if d.Year() == lastMonthYear && d.Month() == lastMonth {
			report.LastMonth += fee
		}
		if d.Year() == curYear {
			report.ThisYear += fee
			slot := &report.MonthlyBreakdown[int(d.Month())-1]
			slot.Sessions++
			slot.Earnings += fee
		}
	}

	return report
}

// ComputePatientRollup groups bookings by client email, in first-seen order.
// TotalSessions counts every booking regardless of status; LastSession only
// ever advances to a later date, whatever the input order.
func ComputePatientRollup(bookings []*domain.Booking) []ports.PatientSummary {
	index := make(map[string]int)
	summaries := make([]ports.PatientSummary, 0)

	for _, b := range bookings {
		i, seen := index[b.ClientEmail]
		if !seen {
			index[b.ClientEmail] = len(summaries)
			summaries = append(summaries, ports.PatientSummary{
				Name:        b.ClientName,
				Email:       b.ClientEmail,
				Phone:       b.ClientPhone,
				LastSession: b.Date,
			})
			i = len(summaries) - 1
		}

		summaries[i].TotalSessions++
		// DateLayout strings order lexicographically as dates do.
		if b.Date > summaries[i].LastSession {
			summaries[i].LastSession = b.Date
		}
	}

	return summaries
}

func parseBookingDate(b *domain.Booking) (time.Time, bool) {
	d, err := time.Parse(domain.DateLayout, b.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
