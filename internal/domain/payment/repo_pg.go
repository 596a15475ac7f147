package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

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

const paymentCols = `id, visit_id, patient_id, amount, method, paid_at, payment_type, created_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.VisitID, &p.PatientID, &p.Amount, &p.Method,
		&p.PaidAt, &p.Type, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Payment) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO payments (id, visit_id, patient_id, amount, method, paid_at, payment_type)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.VisitID, p.PatientID, p.Amount, p.Method, p.PaidAt, p.Type)
	return err
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Payment, int, error) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.From != nil {
		add("paid_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("paid_at <= $%d", *f.To)
	}
	if f.PatientID != nil {
		add("patient_id = $%d", *f.PatientID)
	}
	if f.VisitID != nil {
		add("visit_id = $%d", *f.VisitID)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM payments`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+paymentCols+` FROM payments`+where+
		` ORDER BY paid_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.conn(ctx).Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListManagerView(ctx context.Context, from, to *time.Time) ([]*ManagerPayment, error) {
	var conds []string
	var args []interface{}

	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("p.paid_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("p.paid_at <= $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT p.id, p.visit_id, v.procedure_name, v.starts_at,
			v.total_amount, v.paid_amount, v.remaining, p.amount, p.method
		FROM payments p
		JOIN visits v ON v.id = p.visit_id`+where+`
		ORDER BY p.paid_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*ManagerPayment
	for rows.Next() {
		var mp ManagerPayment
		if err := rows.Scan(&mp.ID, &mp.VisitID, &mp.ProcedureName, &mp.VisitDate,
			&mp.Total, &mp.AlreadyPaid, &mp.Remaining, &mp.Amount, &mp.Method); err != nil {
			return nil, err
		}
		items = append(items, &mp)
	}
	return items, rows.Err()
}
