package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/promarket/marketplace-api/internal/core/ports"
)

// StatsHandler serves dashboard and reporting KPI endpoints.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// ProDashboard handles GET /v1/pro/dashboard-stats. The window is fixed at one
// month.
//
// @Summary      Pro dashboard KPIs
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ProStats
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/pro/dashboard-stats [get]
func (h *StatsHandler) ProDashboard(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	stats, err := h.service.ProDashboard(c.Request().Context(), actor.UserID, ports.PeriodOneMonth)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ProReporting handles GET /v1/pro/reporting-stats?period=. An unknown period
// selector is rejected rather than silently defaulted.
//
// @Summary      Pro reporting KPIs over a selectable window
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        period  query     string  false  "1month|3months|6months|1year (default 1month)"
// @Success      200     {object}  ports.ProStats
// @Failure      400     {object}  errorResponse
// @Router       /v1/pro/reporting-stats [get]
func (h *StatsHandler) ProReporting(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	period := ports.Period(c.QueryParam("period"))
	if period == "" {
		period = ports.PeriodOneMonth
	}
	if !period.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown period")
	}

	stats, err := h.service.ProDashboard(c.Request().Context(), actor.UserID, period)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// AdminOverview handles GET /v1/admin/stats.
//
// @Summary      Platform-wide KPIs
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AdminStats
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/stats [get]
func (h *StatsHandler) AdminOverview(c echo.Context) error {
	stats, err := h.service.AdminOverview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
