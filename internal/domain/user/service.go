package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/auth"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrPhoneTaken         = errors.New("user with this phone already exists")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	users  Repository
	tokens *auth.TokenIssuer
}

func NewService(users Repository, tokens *auth.TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a staff user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if in.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	if in.Phone == "" {
		return nil, fmt.Errorf("phone is required")
	}
	if in.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if !auth.ValidRole(in.Role) {
		return nil, fmt.Errorf("invalid role: %s", in.Role)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		FullName:     in.FullName,
		Phone:        in.Phone,
		Email:        in.Email,
		Role:         in.Role,
		IsActive:     true,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies phone + password and returns the user with a signed
// access token.
func (s *Service) Authenticate(ctx context.Context, in LoginInput) (*User, string, error) {
	u, err := s.users.GetByPhone(ctx, in.Phone)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(in.Password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// ListStaff returns dentists and managers.
func (s *Service) ListStaff(ctx context.Context) ([]*User, error) {
	return s.users.ListStaff(ctx)
}

// SetActive toggles a user's active flag. Users are never deleted.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.users.SetActive(ctx, id, active)
}
