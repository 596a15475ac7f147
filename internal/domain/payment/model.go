package payment

import (
	"time"

	"github.com/google/uuid"
)

// Method is how the money arrived.
type Method string

const (
	MethodCash     Method = "cash"
	MethodCard     Method = "card"
	MethodTransfer Method = "transfer"
)

// ValidMethod reports whether m is a known payment method.
func ValidMethod(m Method) bool {
	return m == MethodCash || m == MethodCard || m == MethodTransfer
}

// Type marks whether the payment settled the visit in full.
type Type string

const (
	TypeFull    Type = "full"
	TypePartial Type = "partial"
)

// ValidType reports whether t is a known payment type.
func ValidType(t Type) bool {
	return t == TypeFull || t == TypePartial
}

// Payment is an immutable record of money received against one visit.
// Recording one is the sole trigger for rederiving the visit's and the
// patient's balance fields.
type Payment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	VisitID   uuid.UUID `db:"visit_id" json:"visit_id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Amount    float64   `db:"amount" json:"amount"`
	Method    Method    `db:"method" json:"method"`
	PaidAt    time.Time `db:"paid_at" json:"paid_at"`
	Type      Type      `db:"payment_type" json:"payment_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreateInput is the payload for recording a payment.
type CreateInput struct {
	VisitID   uuid.UUID `json:"visit_id"`
	PatientID uuid.UUID `json:"patient_id"`
	Amount    float64   `json:"amount"`
	Method    Method    `json:"method"`
	PaidAt    time.Time `json:"paid_at"`
	Type      Type      `json:"payment_type"`
}

// ManagerPayment is a payment row joined with its visit for the manager's
// payment listing.
type ManagerPayment struct {
	ID            uuid.UUID `json:"id"`
	VisitID       uuid.UUID `json:"visit_id"`
	ProcedureName *string   `json:"procedure_name,omitempty"`
	VisitDate     time.Time `json:"visit_date"`
	Total         *float64  `json:"total,omitempty"`
	AlreadyPaid   float64   `json:"already_paid"`
	Remaining     float64   `json:"remaining"`
	Amount        float64   `json:"amount"`
	Method        Method    `json:"method"`
}
