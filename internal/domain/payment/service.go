package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/metrics"
)

var (
	ErrVisitNotFound   = errors.New("visit not found")
	ErrPatientNotFound = errors.New("patient not found")
)

// VisitLedger is the slice of the visit repository the payment service
// depends on.
type VisitLedger interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ApplyPayment(ctx context.Context, id uuid.UUID, amount float64) error
}

// PatientDirectory is the slice of the patient repository the payment
// service depends on.
type PatientDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	RecomputeDebt(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	payments Repository
	visits   VisitLedger
	patients PatientDirectory
	tx       db.TxRunner
}

func NewService(payments Repository, visits VisitLedger, patients PatientDirectory, tx db.TxRunner) *Service {
	return &Service{payments: payments, visits: visits, patients: patients, tx: tx}
}

// Create records a payment and rederives the visit's balance and the
// patient's debt. The three writes commit or roll back together.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Payment, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if !ValidMethod(in.Method) {
		return nil, fmt.Errorf("invalid payment method: %s", in.Method)
	}
	if !ValidType(in.Type) {
		return nil, fmt.Errorf("invalid payment type: %s", in.Type)
	}
	if in.PaidAt.IsZero() {
		in.PaidAt = time.Now()
	}

	p := &Payment{
		VisitID:   in.VisitID,
		PatientID: in.PatientID,
		Amount:    in.Amount,
		Method:    in.Method,
		PaidAt:    in.PaidAt,
		Type:      in.Type,
	}

	err := s.tx(ctx, func(ctx context.Context) error {
		ok, err := s.visits.Exists(ctx, in.VisitID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVisitNotFound
		}

		ok, err = s.patients.Exists(ctx, in.PatientID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrPatientNotFound
		}

		if err := s.payments.Create(ctx, p); err != nil {
			return err
		}
		if err := s.visits.ApplyPayment(ctx, in.VisitID, in.Amount); err != nil {
			return err
		}
		return s.patients.RecomputeDebt(ctx, in.PatientID)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPayment(string(in.Method), in.Amount)
	return p, nil
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Payment, int, error) {
	return s.payments.List(ctx, f, limit, offset)
}

func (s *Service) ListManagerView(ctx context.Context, from, to *time.Time) ([]*ManagerPayment, error) {
	return s.payments.ListManagerView(ctx, from, to)
}
