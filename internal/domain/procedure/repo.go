package procedure

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Procedure) error
	GetByID(ctx context.Context, id uuid.UUID) (*Procedure, error)
	Update(ctx context.Context, p *Procedure) error
	List(ctx context.Context, activeOnly bool) ([]*Procedure, error)
	// DurationMinutes returns the catalog default duration for a procedure,
	// or nil when the procedure has none.
	DurationMinutes(ctx context.Context, id uuid.UUID) (*int, error)
}
