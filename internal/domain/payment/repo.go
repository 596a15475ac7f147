package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter narrows payment listings.
type Filter struct {
	From      *time.Time
	To        *time.Time
	PatientID *uuid.UUID
	VisitID   *uuid.UUID
}

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Payment, int, error)
	// ListManagerView returns payments joined with their visit, newest first.
	ListManagerView(ctx context.Context, from, to *time.Time) ([]*ManagerPayment, error)
}
