package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository runs the read-only aggregate queries behind the dashboards.
type Repository interface {
	CountVisits(ctx context.Context) (int, error)
	CountPatients(ctx context.Context) (int, error)
	// SumPayments totals payment amounts, optionally bounded by paid_at and
	// narrowed to one dentist's visits. Nil bounds mean unbounded.
	SumPayments(ctx context.Context, from, to *time.Time, dentistID *uuid.UUID) (float64, error)
	// SumOutstanding totals the remaining balance across all visits.
	SumOutstanding(ctx context.Context) (float64, error)
	// FinanceByDay returns one row per calendar day in [from, to], days with
	// no activity included.
	FinanceByDay(ctx context.Context, from, to time.Time) ([]*FinanceRow, error)
	Staff(ctx context.Context) ([]*StaffMember, error)
	// VisitsForDay returns the visits starting within [dayStart, dayEnd),
	// joined with patient names, ordered by start time.
	VisitsForDay(ctx context.Context, dayStart, dayEnd time.Time, dentistID *uuid.UUID) ([]*DayVisit, error)
	DayStats(ctx context.Context, dayStart, dayEnd time.Time) (*DayStats, error)
}
