package user

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	ListStaff(ctx context.Context) ([]*User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// IsDentist reports whether the user exists and holds the dentist role.
	IsDentist(ctx context.Context, id uuid.UUID) (bool, error)
	// Lock takes a row lock on the user, serializing schedule writes for a
	// dentist for the duration of the surrounding transaction.
	Lock(ctx context.Context, id uuid.UUID) error
}
