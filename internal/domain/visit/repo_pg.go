package visit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const visitCols = `id, patient_id, dentist_id, procedure_id, procedure_name, duration_minutes,
	starts_at, total_amount, paid_amount, remaining, payment_status, visit_status,
	created_at, updated_at`

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	err := row.Scan(&v.ID, &v.PatientID, &v.DentistID, &v.ProcedureID, &v.ProcedureName,
		&v.DurationMinutes, &v.StartsAt, &v.TotalAmount, &v.PaidAmount, &v.Remaining,
		&v.PaymentStatus, &v.VisitStatus, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	v.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visits (id, patient_id, dentist_id, procedure_id, procedure_name,
			duration_minutes, starts_at, total_amount, paid_amount, remaining,
			payment_status, visit_status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		v.ID, v.PatientID, v.DentistID, v.ProcedureID, v.ProcedureName,
		v.DurationMinutes, v.StartsAt, v.TotalAmount, v.PaidAmount, v.Remaining,
		v.PaymentStatus, v.VisitStatus)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Visit, error) {
	v, err := scanVisit(r.conn(ctx).QueryRow(ctx,
		`SELECT `+visitCols+` FROM visits WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

func (r *repoPG) Update(ctx context.Context, v *Visit) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE visits SET duration_minutes = $2, total_amount = $3, paid_amount = $4,
			remaining = $5, payment_status = $6, visit_status = $7, updated_at = NOW()
		WHERE id = $1`,
		v.ID, v.DurationMinutes, v.TotalAmount, v.PaidAmount,
		v.Remaining, v.PaymentStatus, v.VisitStatus)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status VisitStatus) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE visits SET visit_status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Visit, int, error) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.From != nil {
		add("starts_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("starts_at <= $%d", *f.To)
	}
	if f.DentistID != nil {
		add("dentist_id = $%d", *f.DentistID)
	}
	if f.PatientID != nil {
		add("patient_id = $%d", *f.PatientID)
	}
	if f.Status != nil {
		add("visit_status = $%d", *f.Status)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM visits`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+visitCols+` FROM visits`+where+
		` ORDER BY starts_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.conn(ctx).Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListByDentist(ctx context.Context, dentistID uuid.UUID, exclude *uuid.UUID) ([]*Visit, error) {
	query := `SELECT ` + visitCols + ` FROM visits WHERE dentist_id = $1`
	args := []interface{}{dentistID}
	if exclude != nil {
		query += ` AND id <> $2`
		args = append(args, *exclude)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM visits WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repoPG) ApplyPayment(ctx context.Context, id uuid.UUID, amount float64) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE visits SET
			paid_amount = paid_amount + $2,
			remaining = GREATEST(0, COALESCE(total_amount, 0) - (paid_amount + $2)),
			payment_status = CASE
				WHEN GREATEST(0, COALESCE(total_amount, 0) - (paid_amount + $2)) = 0 THEN 'paid'
				WHEN GREATEST(0, COALESCE(total_amount, 0) - (paid_amount + $2)) < COALESCE(total_amount, 0) THEN 'partial'
				ELSE 'unpaid'
			END,
			updated_at = NOW()
		WHERE id = $1`, id, amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
