package patient

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	// Exists reports whether the patient is present without loading it.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// MarkVisit records the patient's most recent visit date.
	MarkVisit(ctx context.Context, id uuid.UUID, at time.Time) error
	// RecomputeDebt rederives total_debt and has_debt from the patient's
	// visit balances.
	RecomputeDebt(ctx context.Context, id uuid.UUID) error
}
