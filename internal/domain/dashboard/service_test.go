package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name       string
		curr, prev float64
		want       float64
	}{
		{"growth", 150, 100, 50},
		{"decline", 50, 100, -50},
		{"flat", 100, 100, 0},
		{"zero baseline with income", 42, 0, 100},
		{"zero baseline no income", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentChange(tt.curr, tt.prev); got != tt.want {
				t.Errorf("PercentChange(%v, %v) = %v, want %v", tt.curr, tt.prev, got, tt.want)
			}
		})
	}
}

// -- Mock Repository --

type mockRepo struct {
	visits      int
	patients    int
	outstanding float64

	// sums keyed by the earliest bound's day offset from now, crude but
	// enough to tell the 7d/30d/prior-30d windows apart.
	sumFn func(from, to *time.Time, dentistID *uuid.UUID) float64

	dayVisits []*DayVisit
	stats     DayStats
	finance   []*FinanceRow

	financeFrom time.Time
	financeTo   time.Time
}

func (m *mockRepo) CountVisits(_ context.Context) (int, error)   { return m.visits, nil }
func (m *mockRepo) CountPatients(_ context.Context) (int, error) { return m.patients, nil }

func (m *mockRepo) SumPayments(_ context.Context, from, to *time.Time, dentistID *uuid.UUID) (float64, error) {
	if m.sumFn == nil {
		return 0, nil
	}
	return m.sumFn(from, to, dentistID), nil
}

func (m *mockRepo) SumOutstanding(_ context.Context) (float64, error) { return m.outstanding, nil }

func (m *mockRepo) FinanceByDay(_ context.Context, from, to time.Time) ([]*FinanceRow, error) {
	m.financeFrom, m.financeTo = from, to
	return m.finance, nil
}

func (m *mockRepo) Staff(_ context.Context) ([]*StaffMember, error) { return nil, nil }

func (m *mockRepo) VisitsForDay(_ context.Context, _, _ time.Time, _ *uuid.UUID) ([]*DayVisit, error) {
	return m.dayVisits, nil
}

func (m *mockRepo) DayStats(_ context.Context, _, _ time.Time) (*DayStats, error) {
	st := m.stats
	return &st, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
}

func newTestService(repo *mockRepo) *Service {
	svc := NewService(repo)
	svc.now = fixedNow
	return svc
}

func TestAdminDashboard(t *testing.T) {
	now := fixedNow()
	repo := &mockRepo{
		visits:      12,
		patients:    8,
		outstanding: 500,
		sumFn: func(from, to *time.Time, dentistID *uuid.UUID) float64 {
			switch {
			case from == nil:
				return 10000 // all time
			case to == nil && from.Equal(now.AddDate(0, 0, -7)):
				return 700 // last 7 days
			case to == nil:
				return 3000 // last 30 days
			default:
				return 1500 // the 30 days before that
			}
		},
	}

	d, err := newTestService(repo).Admin(context.Background())
	if err != nil {
		t.Fatalf("Admin failed: %v", err)
	}
	if d.TotalVisits != 12 || d.TotalPatients != 8 {
		t.Errorf("totals = %d/%d, want 12/8", d.TotalVisits, d.TotalPatients)
	}
	if d.TotalIncome != 10000 || d.TotalDebt != 500 {
		t.Errorf("money = %v/%v, want 10000/500", d.TotalIncome, d.TotalDebt)
	}
	if d.Income7d != 700 || d.Income30d != 3000 {
		t.Errorf("windows = %v/%v, want 700/3000", d.Income7d, d.Income30d)
	}
	if d.IncomeChangePct != 100 {
		t.Errorf("change = %v, want 100 (3000 vs 1500)", d.IncomeChangePct)
	}
}

func TestDentistDashboardActiveVisit(t *testing.T) {
	inProgress := &DayVisit{ID: uuid.New(), VisitStatus: "in_progress"}
	repo := &mockRepo{
		dayVisits: []*DayVisit{
			{ID: uuid.New(), VisitStatus: "completed"},
			inProgress,
			{ID: uuid.New(), VisitStatus: "scheduled"},
		},
	}

	d, err := newTestService(repo).Dentist(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Dentist failed: %v", err)
	}
	if len(d.TodayVisits) != 3 {
		t.Errorf("today visits = %d, want 3", len(d.TodayVisits))
	}
	if d.ActiveVisit == nil || d.ActiveVisit.ID != inProgress.ID {
		t.Error("expected the in_progress visit to be picked as active")
	}
}

func TestDentistDashboardNoActiveVisit(t *testing.T) {
	repo := &mockRepo{
		dayVisits: []*DayVisit{{ID: uuid.New(), VisitStatus: "scheduled"}},
	}

	d, err := newTestService(repo).Dentist(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Dentist failed: %v", err)
	}
	if d.ActiveVisit != nil {
		t.Error("expected no active visit")
	}
}

func TestManagerDashboard(t *testing.T) {
	repo := &mockRepo{
		outstanding: 900,
		stats:       DayStats{VisitCount: 6, PatientCount: 5, ScheduledCount: 4, CompletedCount: 2},
		sumFn: func(from, to *time.Time, _ *uuid.UUID) float64 {
			return 450
		},
	}

	d, err := newTestService(repo).Manager(context.Background())
	if err != nil {
		t.Fatalf("Manager failed: %v", err)
	}
	if d.VisitsToday != 6 || d.PatientsToday != 5 {
		t.Errorf("counts = %d/%d, want 6/5", d.VisitsToday, d.PatientsToday)
	}
	if d.ScheduledToday != 4 || d.CompletedToday != 2 {
		t.Errorf("stages = %d/%d, want 4/2", d.ScheduledToday, d.CompletedToday)
	}
	if d.IncomeToday != 450 || d.TotalDebt != 900 {
		t.Errorf("money = %v/%v, want 450/900", d.IncomeToday, d.TotalDebt)
	}
}

func TestFinanceDefaultsToLast30Days(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	if _, err := svc.Finance(context.Background(), time.Time{}, time.Time{}); err != nil {
		t.Fatalf("Finance failed: %v", err)
	}
	if !repo.financeTo.Equal(fixedNow()) {
		t.Errorf("to = %v, want now", repo.financeTo)
	}
	if !repo.financeFrom.Equal(fixedNow().AddDate(0, 0, -30)) {
		t.Errorf("from = %v, want now-30d", repo.financeFrom)
	}
}

func TestScheduleDayBounds(t *testing.T) {
	repo := &mockRepo{dayVisits: []*DayVisit{{ID: uuid.New()}}}
	svc := newTestService(repo)

	day := time.Date(2026, 3, 20, 17, 45, 0, 0, time.UTC)
	sched, err := svc.Schedule(context.Background(), day)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	wantDate := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	if !sched.Date.Equal(wantDate) {
		t.Errorf("date = %v, want midnight %v", sched.Date, wantDate)
	}
	if len(sched.Visits) != 1 {
		t.Errorf("visits = %d, want 1", len(sched.Visits))
	}
}
