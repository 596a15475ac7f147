package visit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter narrows visit listings.
type Filter struct {
	From      *time.Time
	To        *time.Time
	DentistID *uuid.UUID
	PatientID *uuid.UUID
	Status    *VisitStatus
}

type Repository interface {
	Create(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, id uuid.UUID) (*Visit, error)
	Update(ctx context.Context, v *Visit) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status VisitStatus) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Visit, int, error)
	// ListByDentist returns every visit of a dentist, optionally excluding
	// one visit id; used by the overlap check.
	ListByDentist(ctx context.Context, dentistID uuid.UUID, exclude *uuid.UUID) ([]*Visit, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// ApplyPayment atomically increments paid_amount and rederives remaining
	// and payment_status in a single statement, so concurrent payments
	// against the same visit serialize on the row lock.
	ApplyPayment(ctx context.Context, id uuid.UUID, amount float64) error
}
