package visit

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the settlement state of a visit's balance.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// VisitStatus is the workflow stage of an appointment, distinct from its
// payment status.
type VisitStatus string

const (
	StatusScheduled  VisitStatus = "scheduled"
	StatusInProgress VisitStatus = "in_progress"
	StatusCompleted  VisitStatus = "completed"
)

// ValidVisitStatus reports whether s is a known workflow stage.
func ValidVisitStatus(s VisitStatus) bool {
	return s == StatusScheduled || s == StatusInProgress || s == StatusCompleted
}

// DefaultDurationMinutes applies when neither the visit nor its procedure
// carries an explicit duration.
const DefaultDurationMinutes = 30

// Visit maps to the visits table. TotalAmount stays nil until the dentist
// prices the visit at completion. Remaining and PaymentStatus are always
// kept consistent with TotalAmount and PaidAmount.
type Visit struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	PatientID       uuid.UUID     `db:"patient_id" json:"patient_id"`
	DentistID       uuid.UUID     `db:"dentist_id" json:"dentist_id"`
	ProcedureID     *uuid.UUID    `db:"procedure_id" json:"procedure_id,omitempty"`
	ProcedureName   *string       `db:"procedure_name" json:"procedure_name,omitempty"`
	DurationMinutes *int          `db:"duration_minutes" json:"duration_minutes,omitempty"`
	StartsAt        time.Time     `db:"starts_at" json:"starts_at"`
	TotalAmount     *float64      `db:"total_amount" json:"total_amount,omitempty"`
	PaidAmount      float64       `db:"paid_amount" json:"paid_amount"`
	Remaining       float64       `db:"remaining" json:"remaining"`
	PaymentStatus   PaymentStatus `db:"payment_status" json:"payment_status"`
	VisitStatus     VisitStatus   `db:"visit_status" json:"visit_status"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

// CreateInput is the payload for a manager scheduling a visit.
type CreateInput struct {
	PatientID       uuid.UUID   `json:"patient_id"`
	DentistID       uuid.UUID   `json:"dentist_id"`
	ProcedureID     *uuid.UUID  `json:"procedure_id,omitempty"`
	ProcedureName   *string     `json:"procedure_name,omitempty"`
	DurationMinutes *int        `json:"duration_minutes,omitempty"`
	StartsAt        time.Time   `json:"starts_at"`
	TotalAmount     *float64    `json:"total_amount,omitempty"`
	PaidAmount      float64     `json:"paid_amount"`
	VisitStatus     VisitStatus `json:"visit_status,omitempty"`
}

// CreateByDentistInput is the payload for a dentist scheduling a visit for
// themself. The price is always left open until examination.
type CreateByDentistInput struct {
	PatientID       uuid.UUID  `json:"patient_id"`
	ProcedureID     *uuid.UUID `json:"procedure_id,omitempty"`
	ProcedureName   *string    `json:"procedure_name,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	StartsAt        time.Time  `json:"starts_at"`
}

// CompleteInput is the payload for a dentist finalizing a visit.
type CompleteInput struct {
	TotalAmount     *float64 `json:"total_amount"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
}

// SettleAfterPayment derives the remaining balance and payment status after
// money has been applied to a visit. A nil total counts as zero.
func SettleAfterPayment(totalAmount *float64, paidAmount float64) (float64, PaymentStatus) {
	var total float64
	if totalAmount != nil {
		total = *totalAmount
	}
	remaining := total - paidAmount
	if remaining < 0 {
		remaining = 0
	}
	switch {
	case remaining == 0:
		return remaining, PaymentPaid
	case remaining < total:
		return remaining, PaymentPartial
	default:
		return remaining, PaymentUnpaid
	}
}

// SettleOnCompletion derives the remaining balance and payment status when a
// visit is priced. A zero-priced visit stays unpaid.
func SettleOnCompletion(totalAmount *float64, paidAmount float64) (float64, PaymentStatus) {
	var total float64
	if totalAmount != nil {
		total = *totalAmount
	}
	remaining := total - paidAmount
	if remaining < 0 {
		remaining = 0
	}
	switch {
	case remaining == 0 && total > 0:
		return remaining, PaymentPaid
	case remaining > 0 && remaining < total:
		return remaining, PaymentPartial
	default:
		return remaining, PaymentUnpaid
	}
}
