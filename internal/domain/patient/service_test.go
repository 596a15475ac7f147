package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockPatientRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockPatientRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return ErrNotFound
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) List(_ context.Context, _, _ int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockPatientRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.patients[id]
	return ok, nil
}

func (m *mockPatientRepo) MarkVisit(_ context.Context, id uuid.UUID, at time.Time) error {
	p, ok := m.patients[id]
	if !ok {
		return ErrNotFound
	}
	if p.LastVisitDate == nil || at.After(*p.LastVisitDate) {
		p.LastVisitDate = &at
	}
	return nil
}

func (m *mockPatientRepo) RecomputeDebt(_ context.Context, _ uuid.UUID) error { return nil }

func TestCreatePatient(t *testing.T) {
	svc := NewService(newMockPatientRepo())

	p := &Patient{FullName: "Dana Omarova", Phone: "+77017654321"}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("patient id not assigned")
	}
	if p.HasDebt || p.TotalDebt != 0 {
		t.Error("new patient must carry no debt")
	}
}

func TestCreatePatientValidation(t *testing.T) {
	svc := NewService(newMockPatientRepo())
	ctx := context.Background()

	if err := svc.Create(ctx, &Patient{Phone: "+77017654321"}); err == nil {
		t.Error("expected error for missing full_name")
	}
	if err := svc.Create(ctx, &Patient{FullName: "Dana Omarova"}); err == nil {
		t.Error("expected error for missing phone")
	}
}

func TestUpdatePatient(t *testing.T) {
	repo := newMockPatientRepo()
	svc := NewService(repo)
	ctx := context.Background()

	p := &Patient{FullName: "Dana Omarova", Phone: "+77017654321"}
	if err := svc.Create(ctx, p); err != nil {
		t.Fatal(err)
	}

	p.FullName = "Dana Omarova-Li"
	if err := svc.Update(ctx, p); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if repo.patients[p.ID].FullName != "Dana Omarova-Li" {
		t.Error("update not persisted")
	}

	if err := svc.Update(ctx, &Patient{ID: uuid.New(), FullName: "X", Phone: "Y"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
