package clinic

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("clinic settings not found")

// DefaultCurrency applies when an update leaves the currency blank.
const DefaultCurrency = "KZT"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*Clinic, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Update(ctx context.Context, in UpdateInput) (*Clinic, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
	return s.repo.Update(ctx, in)
}
