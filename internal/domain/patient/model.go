package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. TotalDebt and HasDebt are derived:
// TotalDebt is the sum of remaining balances across the patient's visits,
// HasDebt is TotalDebt > 0. Both are recomputed whenever a payment is
// recorded or a visit is priced at completion.
type Patient struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	FullName      string     `db:"full_name" json:"full_name"`
	Phone         string     `db:"phone" json:"phone"`
	Email         *string    `db:"email" json:"email,omitempty"`
	TotalDebt     float64    `db:"total_debt" json:"total_debt"`
	HasDebt       bool       `db:"has_debt" json:"has_debt"`
	LastVisitDate *time.Time `db:"last_visit_date" json:"last_visit_date,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
