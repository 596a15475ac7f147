package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) CountVisits(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM visits`).Scan(&n)
	return n, err
}

func (r *repoPG) CountPatients(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&n)
	return n, err
}

func (r *repoPG) SumPayments(ctx context.Context, from, to *time.Time, dentistID *uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(SUM(p.amount), 0) FROM payments p`
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if dentistID != nil {
		query += ` JOIN visits v ON v.id = p.visit_id`
		add("v.dentist_id = $%d", *dentistID)
	}
	if from != nil {
		add("p.paid_at >= $%d", *from)
	}
	if to != nil {
		add("p.paid_at < $%d", *to)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	var sum float64
	err := r.pool.QueryRow(ctx, query, args...).Scan(&sum)
	return sum, err
}

func (r *repoPG) SumOutstanding(ctx context.Context) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(remaining), 0) FROM visits`).Scan(&sum)
	return sum, err
}

func (r *repoPG) FinanceByDay(ctx context.Context, from, to time.Time) ([]*FinanceRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT gs.day::date,
			COALESCE(p.income, 0),
			COALESCE(v.debt, 0),
			COALESCE(v.visits, 0),
			COALESCE(v.patients, 0)
		FROM generate_series($1::date, $2::date, '1 day') AS gs(day)
		LEFT JOIN (
			SELECT paid_at::date AS day, SUM(amount) AS income
			FROM payments
			WHERE paid_at >= $1::date AND paid_at < $2::date + 1
			GROUP BY 1
		) p ON p.day = gs.day::date
		LEFT JOIN (
			SELECT starts_at::date AS day, SUM(remaining) AS debt,
				COUNT(*) AS visits, COUNT(DISTINCT patient_id) AS patients
			FROM visits
			WHERE starts_at >= $1::date AND starts_at < $2::date + 1
			GROUP BY 1
		) v ON v.day = gs.day::date
		ORDER BY gs.day`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*FinanceRow
	for rows.Next() {
		var fr FinanceRow
		if err := rows.Scan(&fr.Date, &fr.Income, &fr.Debt, &fr.VisitCount, &fr.PatientCount); err != nil {
			return nil, err
		}
		items = append(items, &fr)
	}
	return items, rows.Err()
}

func (r *repoPG) Staff(ctx context.Context) ([]*StaffMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, full_name, role, phone, email, is_active
		FROM users
		WHERE role IN ('dentist', 'manager')
		ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*StaffMember
	for rows.Next() {
		var m StaffMember
		if err := rows.Scan(&m.ID, &m.FullName, &m.Role, &m.Phone, &m.Email, &m.IsActive); err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}

func (r *repoPG) VisitsForDay(ctx context.Context, dayStart, dayEnd time.Time, dentistID *uuid.UUID) ([]*DayVisit, error) {
	query := `
		SELECT v.id, v.patient_id, pt.full_name, v.procedure_name, v.starts_at,
			v.duration_minutes, v.visit_status, v.payment_status,
			v.total_amount, v.remaining
		FROM visits v
		JOIN patients pt ON pt.id = v.patient_id
		WHERE v.starts_at >= $1 AND v.starts_at < $2`
	args := []interface{}{dayStart, dayEnd}
	if dentistID != nil {
		args = append(args, *dentistID)
		query += fmt.Sprintf(" AND v.dentist_id = $%d", len(args))
	}
	query += " ORDER BY v.starts_at"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*DayVisit
	for rows.Next() {
		var dv DayVisit
		if err := rows.Scan(&dv.ID, &dv.PatientID, &dv.PatientName, &dv.ProcedureName,
			&dv.StartsAt, &dv.DurationMinutes, &dv.VisitStatus, &dv.PaymentStatus,
			&dv.TotalAmount, &dv.Remaining); err != nil {
			return nil, err
		}
		items = append(items, &dv)
	}
	return items, rows.Err()
}

func (r *repoPG) DayStats(ctx context.Context, dayStart, dayEnd time.Time) (*DayStats, error) {
	var st DayStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(DISTINCT patient_id),
			COUNT(*) FILTER (WHERE visit_status = 'scheduled'),
			COUNT(*) FILTER (WHERE visit_status = 'completed')
		FROM visits
		WHERE starts_at >= $1 AND starts_at < $2`, dayStart, dayEnd).
		Scan(&st.VisitCount, &st.PatientCount, &st.ScheduledCount, &st.CompletedCount)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
