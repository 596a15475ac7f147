package payment

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/payments", h.List)

	managerGroup := g.Group("", auth.RequireRole(auth.RoleManager))
	managerGroup.POST("/payments", h.Create)
	managerGroup.GET("/payments/manager", h.ListManagerView)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrVisitNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "visit not found")
		case errors.Is(err, ErrPatientNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) List(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListManagerView(c echo.Context) error {
	from, to, err := dateRangeFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	items, err := h.svc.ListManagerView(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func filterFromQuery(c echo.Context) (Filter, error) {
	var f Filter

	from, to, err := dateRangeFromQuery(c)
	if err != nil {
		return f, err
	}
	f.From = from
	f.To = to

	if s := c.QueryParam("patient_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, errors.New("invalid patient_id")
		}
		f.PatientID = &id
	}
	if s := c.QueryParam("visit_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, errors.New("invalid visit_id")
		}
		f.VisitID = &id
	}

	return f, nil
}

// dateRangeFromQuery reads date_from/date_to. A bare date in date_to is
// widened to the end of that day.
func dateRangeFromQuery(c echo.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if s := c.QueryParam("date_from"); s != "" {
		t, _, err := parseDateParam(s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.QueryParam("date_to"); s != "" {
		t, dateOnly, err := parseDateParam(s)
		if err != nil {
			return nil, nil, err
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = &t
	}

	return from, to, nil
}

func parseDateParam(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false, errors.New("invalid time format, want RFC3339 or YYYY-MM-DD")
	}
	return t, true, nil
}
