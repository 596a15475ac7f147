package visit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
)

func newTestHandler() (*Handler, *fixture, *echo.Echo) {
	fx := newFixture()
	return NewHandler(fx.svc), fx, echo.New()
}

func authedContext(e *echo.Echo, req *http.Request, userID uuid.UUID, role string) (echo.Context, *httptest.ResponseRecorder) {
	ctx := req.Context()
	ctx = context.WithValue(ctx, auth.UserIDKey, userID)
	ctx = context.WithValue(ctx, auth.UserRoleKey, role)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestHandler_CreateVisit(t *testing.T) {
	h, fx, e := newTestHandler()

	body := fmt.Sprintf(`{"patient_id":%q,"dentist_id":%q,"starts_at":"2026-03-10T10:00:00Z"}`,
		fx.patientID, fx.dentistID)
	req := httptest.NewRequest(http.MethodPost, "/visits", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var v Visit
	json.Unmarshal(rec.Body.Bytes(), &v)
	if v.VisitStatus != StatusScheduled {
		t.Errorf("expected scheduled, got %s", v.VisitStatus)
	}
}

func TestHandler_CreateVisit_Conflict(t *testing.T) {
	h, fx, e := newTestHandler()

	body := fmt.Sprintf(`{"patient_id":%q,"dentist_id":%q,"starts_at":"2026-03-10T10:00:00Z"}`,
		fx.patientID, fx.dentistID)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/visits", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.Create(c)
		if i == 0 {
			if err != nil {
				t.Fatalf("first create failed: %v", err)
			}
			continue
		}
		if got := httpCode(t, err); got != http.StatusConflict {
			t.Errorf("expected 409, got %d", got)
		}
	}
}

func TestHandler_CreateVisit_PatientNotFound(t *testing.T) {
	h, fx, e := newTestHandler()

	body := fmt.Sprintf(`{"patient_id":%q,"dentist_id":%q,"starts_at":"2026-03-10T10:00:00Z"}`,
		uuid.New(), fx.dentistID)
	req := httptest.NewRequest(http.MethodPost, "/visits", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if got := httpCode(t, h.Create(c)); got != http.StatusNotFound {
		t.Errorf("expected 404, got %d", got)
	}
}

func TestHandler_CreateVisit_BadDentist(t *testing.T) {
	h, fx, e := newTestHandler()

	body := fmt.Sprintf(`{"patient_id":%q,"dentist_id":%q,"starts_at":"2026-03-10T10:00:00Z"}`,
		fx.patientID, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/visits", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if got := httpCode(t, h.Create(c)); got != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", got)
	}
}

func TestHandler_Complete(t *testing.T) {
	h, fx, e := newTestHandler()

	v, err := fx.svc.CreateByDentist(context.Background(), fx.dentistID, CreateByDentistInput{
		PatientID: fx.patientID,
		StartsAt:  time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"total_amount":250}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := authedContext(e, req, fx.dentistID, auth.RoleDentist)
	c.SetParamNames("id")
	c.SetParamValues(v.ID.String())

	if err := h.Complete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var done Visit
	json.Unmarshal(rec.Body.Bytes(), &done)
	if done.VisitStatus != StatusCompleted {
		t.Errorf("expected completed, got %s", done.VisitStatus)
	}
}

func TestHandler_Complete_Forbidden(t *testing.T) {
	h, fx, e := newTestHandler()

	v, err := fx.svc.CreateByDentist(context.Background(), fx.dentistID, CreateByDentistInput{
		PatientID: fx.patientID,
		StartsAt:  time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"total_amount":250}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, _ := authedContext(e, req, uuid.New(), auth.RoleDentist)
	c.SetParamNames("id")
	c.SetParamValues(v.ID.String())

	if got := httpCode(t, h.Complete(c)); got != http.StatusForbidden {
		t.Errorf("expected 403, got %d", got)
	}
}

func TestHandler_UpdateStatus(t *testing.T) {
	h, fx, e := newTestHandler()

	v, err := fx.svc.CreateByDentist(context.Background(), fx.dentistID, CreateByDentistInput{
		PatientID: fx.patientID,
		StartsAt:  time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"visit_status":"in_progress"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := authedContext(e, req, fx.dentistID, auth.RoleDentist)
	c.SetParamNames("id")
	c.SetParamValues(v.ID.String())

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	if got := httpCode(t, h.Get(c)); got != http.StatusNotFound {
		t.Errorf("expected 404, got %d", got)
	}
}

func TestHandler_List_BadFilter(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/visits?dentist_id=not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if got := httpCode(t, h.List(c)); got != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", got)
	}
}

func TestFilterFromQuery(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet,
		"/visits?date_from=2026-03-01&date_to=2026-03-31T23:00:00Z&visit_status=scheduled", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	f, err := filterFromQuery(c)
	if err != nil {
		t.Fatalf("filterFromQuery failed: %v", err)
	}
	if f.From == nil || !f.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v, want 2026-03-01", f.From)
	}
	if f.To == nil || f.To.Hour() != 23 {
		t.Errorf("to = %v, want RFC3339 value", f.To)
	}
	if f.Status == nil || *f.Status != StatusScheduled {
		t.Errorf("status = %v, want scheduled", f.Status)
	}

	req = httptest.NewRequest(http.MethodGet, "/visits?visit_status=cancelled", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	if _, err := filterFromQuery(c); err == nil {
		t.Error("expected error for unknown visit_status")
	}
}
