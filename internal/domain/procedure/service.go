package procedure

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("procedure not found")
	ErrNameTaken = errors.New("procedure with this name already exists")
)

type Service struct {
	procedures Repository
}

func NewService(procedures Repository) *Service {
	return &Service{procedures: procedures}
}

func (s *Service) validate(p *Procedure) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.BasePrice != nil && *p.BasePrice < 0 {
		return fmt.Errorf("base_price cannot be negative")
	}
	if p.DurationMinutes != nil && *p.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *Procedure) error {
	if err := s.validate(p); err != nil {
		return err
	}
	p.IsActive = true
	return s.procedures.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Procedure, error) {
	return s.procedures.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Procedure) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.procedures.Update(ctx, p)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Procedure, error) {
	return s.procedures.List(ctx, activeOnly)
}
