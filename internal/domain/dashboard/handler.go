package dashboard

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	adminGroup := g.Group("", auth.RequireRole(auth.RoleAdmin))
	adminGroup.GET("/dashboard/admin", h.Admin)
	adminGroup.GET("/dashboard/admin/finance", h.Finance)
	adminGroup.GET("/dashboard/admin/staff", h.Staff)

	g.GET("/dashboard/dentist", h.Dentist, auth.RequireRole(auth.RoleDentist))

	managerGroup := g.Group("", auth.RequireRole(auth.RoleManager))
	managerGroup.GET("/dashboard/manager", h.Manager)
	managerGroup.GET("/dashboard/manager/schedule", h.Schedule)
}

func (h *Handler) Admin(c echo.Context) error {
	d, err := h.svc.Admin(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Finance(c echo.Context) error {
	var from, to time.Time
	if s := c.QueryParam("date_from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date_from, want YYYY-MM-DD")
		}
		from = t
	}
	if s := c.QueryParam("date_to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date_to, want YYYY-MM-DD")
		}
		to = t
	}

	rows, err := h.svc.Finance(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) Staff(c echo.Context) error {
	staff, err := h.svc.Staff(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, staff)
}

func (h *Handler) Dentist(c echo.Context) error {
	dentistID := auth.UserIDFromContext(c.Request().Context())
	d, err := h.svc.Dentist(c.Request().Context(), dentistID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Manager(c echo.Context) error {
	d, err := h.svc.Manager(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Schedule(c echo.Context) error {
	day := time.Now()
	if s := c.QueryParam("date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		}
		day = t
	}

	sched, err := h.svc.Schedule(c.Request().Context(), day)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sched)
}
