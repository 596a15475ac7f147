package payment

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *fixture, *echo.Echo) {
	fx := newFixture()
	return NewHandler(fx.svc), fx, echo.New()
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestHandler_CreatePayment(t *testing.T) {
	h, fx, e := newTestHandler()

	body := fmt.Sprintf(`{"visit_id":%q,"patient_id":%q,"amount":150,"method":"cash","payment_type":"partial"}`,
		fx.visitID, fx.patientID)
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var p Payment
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.Amount != 150 || p.Method != MethodCash {
		t.Errorf("unexpected payment: %+v", p)
	}
}

func TestHandler_CreatePayment_VisitNotFound(t *testing.T) {
	h, fx, e := newTestHandler()

	body := fmt.Sprintf(`{"visit_id":%q,"patient_id":%q,"amount":100,"method":"card","payment_type":"full"}`,
		uuid.New(), fx.patientID)
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if got := httpCode(t, h.Create(c)); got != http.StatusNotFound {
		t.Errorf("expected 404, got %d", got)
	}
}

func TestHandler_CreatePayment_BadAmount(t *testing.T) {
	h, fx, e := newTestHandler()

	body := fmt.Sprintf(`{"visit_id":%q,"patient_id":%q,"amount":0,"method":"cash","payment_type":"full"}`,
		fx.visitID, fx.patientID)
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if got := httpCode(t, h.Create(c)); got != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", got)
	}
}

func TestHandler_List(t *testing.T) {
	h, fx, e := newTestHandler()

	for i := 0; i < 3; i++ {
		fx.payments.payments[uuid.New()] = &Payment{Amount: float64(100 * (i + 1))}
	}

	req := httptest.NewRequest(http.MethodGet, "/payments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Total int `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
}

func TestHandler_List_BadFilter(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/payments?visit_id=nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if got := httpCode(t, h.List(c)); got != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", got)
	}
}

func TestDateRangeFromQuery(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/payments?date_from=2026-02-01&date_to=2026-02-28", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	from, to, err := dateRangeFromQuery(c)
	if err != nil {
		t.Fatalf("dateRangeFromQuery failed: %v", err)
	}
	if from == nil || !from.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v, want 2026-02-01", from)
	}
	// A bare date upper bound covers the whole day.
	if to == nil || to.Day() != 28 || to.Hour() != 23 {
		t.Errorf("to = %v, want end of 2026-02-28", to)
	}
}
