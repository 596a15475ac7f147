package visit

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
	g.GET("/visits", h.List)
	g.GET("/visits/:id", h.Get)
	g.PATCH("/visits/:id/status", h.UpdateStatus)

	managerGroup := g.Group("", auth.RequireRole(auth.RoleManager))
	managerGroup.POST("/visits", h.Create)

	dentistGroup := g.Group("", auth.RequireRole(auth.RoleDentist))
	dentistGroup.POST("/visits/dentist", h.CreateByDentist)
	dentistGroup.PATCH("/visits/:id/complete", h.Complete)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return visitError(err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) CreateByDentist(c echo.Context) error {
	var in CreateByDentistInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	dentistID := auth.UserIDFromContext(c.Request().Context())
	v, err := h.svc.CreateByDentist(c.Request().Context(), dentistID, in)
	if err != nil {
		return visitError(err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) Complete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var in CompleteInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	dentistID := auth.UserIDFromContext(c.Request().Context())
	v, err := h.svc.Complete(c.Request().Context(), id, dentistID, in)
	if err != nil {
		return visitError(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		VisitStatus VisitStatus `json:"visit_status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	v, err := h.svc.UpdateStatus(ctx, id, auth.UserIDFromContext(ctx), auth.RoleFromContext(ctx), body.VisitStatus)
	if err != nil {
		return visitError(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	v, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return visitError(err)
	}
	return c.JSON(http.StatusOK, v)
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

func filterFromQuery(c echo.Context) (Filter, error) {
	var f Filter

	if s := c.QueryParam("date_from"); s != "" {
		t, err := parseTime(s)
		if err != nil {
			return f, err
		}
		f.From = &t
	}
	if s := c.QueryParam("date_to"); s != "" {
		t, err := parseTime(s)
		if err != nil {
			return f, err
		}
		f.To = &t
	}
	if s := c.QueryParam("dentist_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, errors.New("invalid dentist_id")
		}
		f.DentistID = &id
	}
	if s := c.QueryParam("patient_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, errors.New("invalid patient_id")
		}
		f.PatientID = &id
	}
	if s := c.QueryParam("visit_status"); s != "" {
		status := VisitStatus(s)
		if !ValidVisitStatus(status) {
			return f, errors.New("invalid visit_status")
		}
		f.Status = &status
	}

	return f, nil
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, errors.New("invalid time format, want RFC3339 or YYYY-MM-DD")
	}
	return t, nil
}

// visitError maps service errors to HTTP responses.
func visitError(err error) error {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		return echo.NewHTTPError(http.StatusConflict, conflict.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	case errors.Is(err, ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	case errors.Is(err, ErrDentistInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
