package clinic

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockClinicRepo struct {
	row *Clinic
}

func (m *mockClinicRepo) Get(_ context.Context) (*Clinic, error) {
	if m.row == nil {
		return nil, ErrNotFound
	}
	return m.row, nil
}

func (m *mockClinicRepo) Update(_ context.Context, in UpdateInput) (*Clinic, error) {
	if m.row == nil {
		return nil, ErrNotFound
	}
	m.row.Name = in.Name
	m.row.Address = in.Address
	m.row.Phone = in.Phone
	m.row.Email = in.Email
	m.row.Currency = in.Currency
	m.row.UpdatedAt = time.Now()
	return m.row, nil
}

func seeded() *mockClinicRepo {
	return &mockClinicRepo{row: &Clinic{
		ID:       uuid.New(),
		Name:     "Dental Clinic",
		Currency: DefaultCurrency,
	}}
}

func TestUpdateClinic(t *testing.T) {
	svc := NewService(seeded())

	c, err := svc.Update(context.Background(), UpdateInput{Name: "Smile Center", Currency: "usd"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if c.Name != "Smile Center" {
		t.Errorf("name = %s, want Smile Center", c.Name)
	}
	if c.Currency != "USD" {
		t.Errorf("currency = %s, want USD", c.Currency)
	}
}

func TestUpdateClinicDefaultsCurrency(t *testing.T) {
	svc := NewService(seeded())

	c, err := svc.Update(context.Background(), UpdateInput{Name: "Smile Center"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if c.Currency != DefaultCurrency {
		t.Errorf("currency = %s, want %s", c.Currency, DefaultCurrency)
	}
}

func TestUpdateClinicRequiresName(t *testing.T) {
	svc := NewService(seeded())

	if _, err := svc.Update(context.Background(), UpdateInput{Name: "   "}); err == nil {
		t.Error("expected error for blank name")
	}
}
