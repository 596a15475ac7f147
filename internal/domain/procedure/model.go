package procedure

import (
	"time"

	"github.com/google/uuid"
)

// Procedure is a catalog entry. BasePrice and DurationMinutes are optional
// defaults that visits may inherit.
type Procedure struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	BasePrice       *float64  `db:"base_price" json:"base_price,omitempty"`
	DurationMinutes *int      `db:"duration_minutes" json:"duration_minutes,omitempty"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
