package clinic

import "context"

type Repository interface {
	Get(ctx context.Context) (*Clinic, error)
	Update(ctx context.Context, in UpdateInput) (*Clinic, error)
}
