package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/domain/visit"
)

// PercentChange is the relative change from prev to curr in percent. A zero
// baseline reports 100 for any growth and 0 otherwise.
func PercentChange(curr, prev float64) float64 {
	if prev == 0 {
		if curr > 0 {
			return 100
		}
		return 0
	}
	return (curr - prev) / prev * 100
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

func (s *Service) Admin(ctx context.Context) (*AdminDashboard, error) {
	var d AdminDashboard
	var err error

	if d.TotalVisits, err = s.repo.CountVisits(ctx); err != nil {
		return nil, err
	}
	if d.TotalPatients, err = s.repo.CountPatients(ctx); err != nil {
		return nil, err
	}
	if d.TotalIncome, err = s.repo.SumPayments(ctx, nil, nil, nil); err != nil {
		return nil, err
	}
	if d.TotalDebt, err = s.repo.SumOutstanding(ctx); err != nil {
		return nil, err
	}

	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)
	twoMonthsAgo := now.AddDate(0, 0, -60)

	if d.Income7d, err = s.repo.SumPayments(ctx, &weekAgo, nil, nil); err != nil {
		return nil, err
	}
	if d.Income30d, err = s.repo.SumPayments(ctx, &monthAgo, nil, nil); err != nil {
		return nil, err
	}
	prev, err := s.repo.SumPayments(ctx, &twoMonthsAgo, &monthAgo, nil)
	if err != nil {
		return nil, err
	}
	d.IncomeChangePct = PercentChange(d.Income30d, prev)

	return &d, nil
}

// Finance returns the per-day finance rows for [from, to]. Zero bounds
// default to the last 30 days.
func (s *Service) Finance(ctx context.Context, from, to time.Time) ([]*FinanceRow, error) {
	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return s.repo.FinanceByDay(ctx, from, to)
}

func (s *Service) Staff(ctx context.Context) ([]*StaffMember, error) {
	return s.repo.Staff(ctx)
}

func (s *Service) Dentist(ctx context.Context, dentistID uuid.UUID) (*DentistDashboard, error) {
	var d DentistDashboard
	var err error

	now := s.now()
	dayStart, dayEnd := dayBounds(now)
	if d.TodayVisits, err = s.repo.VisitsForDay(ctx, dayStart, dayEnd, &dentistID); err != nil {
		return nil, err
	}
	for _, v := range d.TodayVisits {
		if v.VisitStatus == string(visit.StatusInProgress) {
			d.ActiveVisit = v
			break
		}
	}

	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)
	twoMonthsAgo := now.AddDate(0, 0, -60)

	if d.Income7d, err = s.repo.SumPayments(ctx, &weekAgo, nil, &dentistID); err != nil {
		return nil, err
	}
	if d.Income30d, err = s.repo.SumPayments(ctx, &monthAgo, nil, &dentistID); err != nil {
		return nil, err
	}
	prev, err := s.repo.SumPayments(ctx, &twoMonthsAgo, &monthAgo, &dentistID)
	if err != nil {
		return nil, err
	}
	d.IncomeChangePct = PercentChange(d.Income30d, prev)

	return &d, nil
}

func (s *Service) Manager(ctx context.Context) (*ManagerDashboard, error) {
	dayStart, dayEnd := dayBounds(s.now())

	st, err := s.repo.DayStats(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	income, err := s.repo.SumPayments(ctx, &dayStart, &dayEnd, nil)
	if err != nil {
		return nil, err
	}
	debt, err := s.repo.SumOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	return &ManagerDashboard{
		VisitsToday:    st.VisitCount,
		PatientsToday:  st.PatientCount,
		IncomeToday:    income,
		TotalDebt:      debt,
		ScheduledToday: st.ScheduledCount,
		CompletedToday: st.CompletedCount,
	}, nil
}

// Schedule returns every visit of the given day, ordered by start time.
func (s *Service) Schedule(ctx context.Context, day time.Time) (*ScheduleDay, error) {
	dayStart, dayEnd := dayBounds(day)
	visits, err := s.repo.VisitsForDay(ctx, dayStart, dayEnd, nil)
	if err != nil {
		return nil, err
	}
	return &ScheduleDay{Date: dayStart, Visits: visits}, nil
}
