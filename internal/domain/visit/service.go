package visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/metrics"
)

var (
	ErrNotFound        = errors.New("visit not found")
	ErrPatientNotFound = errors.New("patient not found")
	ErrDentistInvalid  = errors.New("dentist not found or role is not dentist")
	ErrNotOwner        = errors.New("visit belongs to another dentist")
)

// ConflictError reports a scheduling overlap, naming the colliding visit.
type ConflictError struct {
	VisitID uuid.UUID
	Start   time.Time
	End     time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflict: visit %s from %s to %s",
		e.VisitID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// PatientDirectory is the slice of the patient repository the visit service
// depends on.
type PatientDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	MarkVisit(ctx context.Context, id uuid.UUID, at time.Time) error
	RecomputeDebt(ctx context.Context, id uuid.UUID) error
}

// StaffDirectory is the slice of the user repository the visit service
// depends on.
type StaffDirectory interface {
	IsDentist(ctx context.Context, id uuid.UUID) (bool, error)
	Lock(ctx context.Context, id uuid.UUID) error
}

// ProcedureDirectory resolves catalog durations for visits that have a
// procedure but no explicit duration.
type ProcedureDirectory interface {
	DurationMinutes(ctx context.Context, id uuid.UUID) (*int, error)
}

type Service struct {
	visits     Repository
	patients   PatientDirectory
	staff      StaffDirectory
	procedures ProcedureDirectory
	tx         db.TxRunner
}

func NewService(visits Repository, patients PatientDirectory, staff StaffDirectory, procedures ProcedureDirectory, tx db.TxRunner) *Service {
	return &Service{visits: visits, patients: patients, staff: staff, procedures: procedures, tx: tx}
}

// effectiveDuration resolves a visit's duration: explicit value first, then
// the procedure's catalog default, then DefaultDurationMinutes.
func (s *Service) effectiveDuration(ctx context.Context, durationMinutes *int, procedureID *uuid.UUID) (int, error) {
	if durationMinutes != nil && *durationMinutes > 0 {
		return *durationMinutes, nil
	}
	if procedureID != nil {
		d, err := s.procedures.DurationMinutes(ctx, *procedureID)
		if err != nil {
			return 0, err
		}
		if d != nil && *d > 0 {
			return *d, nil
		}
	}
	return DefaultDurationMinutes, nil
}

// checkOverlap rejects the candidate interval if it overlaps any of the
// dentist's other visits. The first conflict found aborts.
func (s *Service) checkOverlap(ctx context.Context, dentistID uuid.UUID, start, end time.Time, exclude *uuid.UUID) error {
	existing, err := s.visits.ListByDentist(ctx, dentistID, exclude)
	if err != nil {
		return err
	}

	for _, v := range existing {
		duration, err := s.effectiveDuration(ctx, v.DurationMinutes, v.ProcedureID)
		if err != nil {
			return err
		}
		vStart := v.StartsAt
		vEnd := v.StartsAt.Add(time.Duration(duration) * time.Minute)

		if start.Before(vEnd) && end.After(vStart) {
			metrics.RecordSchedulingConflict()
			return &ConflictError{VisitID: v.ID, Start: vStart, End: vEnd}
		}
	}
	return nil
}

// Create schedules a visit on behalf of a manager, who may pick any dentist
// and optionally set an upfront price.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Visit, error) {
	if in.StartsAt.IsZero() {
		return nil, fmt.Errorf("starts_at is required")
	}
	if in.PaidAmount < 0 {
		return nil, fmt.Errorf("paid_amount cannot be negative")
	}
	if in.TotalAmount != nil && *in.TotalAmount < 0 {
		return nil, fmt.Errorf("total_amount cannot be negative")
	}

	ok, err := s.patients.Exists(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPatientNotFound
	}

	isDentist, err := s.staff.IsDentist(ctx, in.DentistID)
	if err != nil {
		return nil, err
	}
	if !isDentist {
		return nil, ErrDentistInvalid
	}

	duration, err := s.effectiveDuration(ctx, in.DurationMinutes, in.ProcedureID)
	if err != nil {
		return nil, err
	}
	end := in.StartsAt.Add(time.Duration(duration) * time.Minute)

	status := in.VisitStatus
	if status == "" {
		status = StatusScheduled
	}
	if !ValidVisitStatus(status) {
		return nil, fmt.Errorf("invalid visit_status: %s", status)
	}

	var remaining float64
	paymentStatus := PaymentUnpaid
	if in.TotalAmount != nil {
		remaining, paymentStatus = SettleOnCompletion(in.TotalAmount, in.PaidAmount)
	}

	v := &Visit{
		PatientID:       in.PatientID,
		DentistID:       in.DentistID,
		ProcedureID:     in.ProcedureID,
		ProcedureName:   in.ProcedureName,
		DurationMinutes: in.DurationMinutes,
		StartsAt:        in.StartsAt,
		TotalAmount:     in.TotalAmount,
		PaidAmount:      in.PaidAmount,
		Remaining:       remaining,
		PaymentStatus:   paymentStatus,
		VisitStatus:     status,
	}

	err = s.tx(ctx, func(ctx context.Context) error {
		// The dentist row lock serializes concurrent scheduling for the
		// same dentist between the overlap read and the insert.
		if err := s.staff.Lock(ctx, in.DentistID); err != nil {
			return err
		}
		if err := s.checkOverlap(ctx, in.DentistID, in.StartsAt, end, nil); err != nil {
			return err
		}
		if err := s.visits.Create(ctx, v); err != nil {
			return err
		}
		return s.patients.MarkVisit(ctx, in.PatientID, in.StartsAt)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordVisitScheduled(auth.RoleManager)
	return v, nil
}

// CreateByDentist schedules a visit for the calling dentist with the price
// left open until examination. Past dates are allowed.
func (s *Service) CreateByDentist(ctx context.Context, dentistID uuid.UUID, in CreateByDentistInput) (*Visit, error) {
	if in.StartsAt.IsZero() {
		return nil, fmt.Errorf("starts_at is required")
	}

	ok, err := s.patients.Exists(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPatientNotFound
	}

	duration, err := s.effectiveDuration(ctx, in.DurationMinutes, in.ProcedureID)
	if err != nil {
		return nil, err
	}
	end := in.StartsAt.Add(time.Duration(duration) * time.Minute)

	v := &Visit{
		PatientID:       in.PatientID,
		DentistID:       dentistID,
		ProcedureID:     in.ProcedureID,
		ProcedureName:   in.ProcedureName,
		DurationMinutes: in.DurationMinutes,
		StartsAt:        in.StartsAt,
		TotalAmount:     nil,
		PaidAmount:      0,
		Remaining:       0,
		PaymentStatus:   PaymentUnpaid,
		VisitStatus:     StatusScheduled,
	}

	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.staff.Lock(ctx, dentistID); err != nil {
			return err
		}
		if err := s.checkOverlap(ctx, dentistID, in.StartsAt, end, nil); err != nil {
			return err
		}
		if err := s.visits.Create(ctx, v); err != nil {
			return err
		}
		return s.patients.MarkVisit(ctx, in.PatientID, in.StartsAt)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordVisitScheduled(auth.RoleDentist)
	return v, nil
}

// Complete finalizes a visit: the owning dentist supplies the price after
// examination, the balance is rederived and the visit is forced to
// completed. The patient's debt is recomputed in the same transaction.
func (s *Service) Complete(ctx context.Context, visitID, dentistID uuid.UUID, in CompleteInput) (*Visit, error) {
	if in.TotalAmount == nil {
		return nil, fmt.Errorf("total_amount is required")
	}
	if *in.TotalAmount < 0 {
		return nil, fmt.Errorf("total_amount cannot be negative")
	}
	if in.DurationMinutes != nil && *in.DurationMinutes <= 0 {
		return nil, fmt.Errorf("duration_minutes must be positive")
	}

	v, err := s.visits.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if v.DentistID != dentistID {
		return nil, ErrNotOwner
	}

	if in.DurationMinutes != nil {
		v.DurationMinutes = in.DurationMinutes
	}
	v.TotalAmount = in.TotalAmount
	v.Remaining, v.PaymentStatus = SettleOnCompletion(v.TotalAmount, v.PaidAmount)
	v.VisitStatus = StatusCompleted

	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.visits.Update(ctx, v); err != nil {
			return err
		}
		return s.patients.RecomputeDebt(ctx, v.PatientID)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordVisitCompleted()
	return v, nil
}

// UpdateStatus sets the workflow stage directly. Managers and admins may
// touch any visit; dentists only their own.
func (s *Service) UpdateStatus(ctx context.Context, visitID, actorID uuid.UUID, actorRole string, status VisitStatus) (*Visit, error) {
	if !ValidVisitStatus(status) {
		return nil, fmt.Errorf("invalid visit_status: %s", status)
	}

	v, err := s.visits.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if actorRole == auth.RoleDentist && v.DentistID != actorID {
		return nil, ErrNotOwner
	}

	if err := s.visits.UpdateStatus(ctx, visitID, status); err != nil {
		return nil, err
	}
	v.VisitStatus = status
	return v, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return s.visits.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Visit, int, error) {
	return s.visits.List(ctx, f, limit, offset)
}
