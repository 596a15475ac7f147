package clinic

import (
	"time"

	"github.com/google/uuid"
)

// Clinic is the single row of clinic-wide settings.
type Clinic struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Address    *string   `db:"address" json:"address,omitempty"`
	Phone      *string   `db:"phone" json:"phone,omitempty"`
	Email      *string   `db:"email" json:"email,omitempty"`
	Currency   string    `db:"currency" json:"currency"`
	AppVersion string    `db:"app_version" json:"app_version"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// UpdateInput is the payload for changing clinic settings.
type UpdateInput struct {
	Name     string  `json:"name"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Currency string  `json:"currency"`
}
