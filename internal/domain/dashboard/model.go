package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// AdminDashboard is the clinic-wide summary for the admin landing page.
type AdminDashboard struct {
	TotalVisits     int     `json:"total_visits"`
	TotalPatients   int     `json:"total_patients"`
	TotalIncome     float64 `json:"total_income"`
	TotalDebt       float64 `json:"total_debt"`
	Income7d        float64 `json:"income_7d"`
	Income30d       float64 `json:"income_30d"`
	IncomeChangePct float64 `json:"income_change_pct"`
}

// FinanceRow is one day of the admin finance report.
type FinanceRow struct {
	Date         time.Time `json:"date"`
	Income       float64   `json:"income"`
	Debt         float64   `json:"debt"`
	VisitCount   int       `json:"visit_count"`
	PatientCount int       `json:"patient_count"`
}

// StaffMember is a row of the admin staff listing.
type StaffMember struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
	IsActive bool      `json:"is_active"`
}

// DayVisit is a visit joined with its patient's name, as shown on the
// dentist and manager schedule views.
type DayVisit struct {
	ID              uuid.UUID `json:"id"`
	PatientID       uuid.UUID `json:"patient_id"`
	PatientName     string    `json:"patient_name"`
	ProcedureName   *string   `json:"procedure_name,omitempty"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	VisitStatus     string    `json:"visit_status"`
	PaymentStatus   string    `json:"payment_status"`
	TotalAmount     *float64  `json:"total_amount,omitempty"`
	Remaining       float64   `json:"remaining"`
}

// DentistDashboard is the dentist's own daily view.
type DentistDashboard struct {
	TodayVisits     []*DayVisit `json:"today_visits"`
	ActiveVisit     *DayVisit   `json:"active_visit,omitempty"`
	Income7d        float64     `json:"income_7d"`
	Income30d       float64     `json:"income_30d"`
	IncomeChangePct float64     `json:"income_change_pct"`
}

// ManagerDashboard is the reception summary for today.
type ManagerDashboard struct {
	VisitsToday    int     `json:"visits_today"`
	PatientsToday  int     `json:"patients_today"`
	IncomeToday    float64 `json:"income_today"`
	TotalDebt      float64 `json:"total_debt"`
	ScheduledToday int     `json:"scheduled_today"`
	CompletedToday int     `json:"completed_today"`
}

// ScheduleDay is the manager's schedule for one day.
type ScheduleDay struct {
	Date   time.Time   `json:"date"`
	Visits []*DayVisit `json:"visits"`
}

// DayStats are per-day visit counters.
type DayStats struct {
	VisitCount     int
	PatientCount   int
	ScheduledCount int
	CompletedCount int
}
