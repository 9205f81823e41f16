package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/ksiegowo/ksiegowo_backend/internal/middleware"
)

// fiscalHandler handles HTTP requests for fiscal years and accounting periods.
type fiscalHandler struct {
	fiscalService portssvc.FiscalSvcFacade
}

func newFiscalHandler(s portssvc.FiscalSvcFacade) *fiscalHandler {
	return &fiscalHandler{fiscalService: s}
}

// registerFiscalRoutes registers fiscal calendar routes under an organization
// group.
func registerFiscalRoutes(rg *gin.RouterGroup, fiscalService portssvc.FiscalSvcFacade) {
	h := newFiscalHandler(fiscalService)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/:fiscal_year_id", h.getFiscalYear)
		years.DELETE("/:fiscal_year_id", h.deleteFiscalYear)
		years.POST("/:fiscal_year_id/open", h.openFiscalYear)
		years.POST("/:fiscal_year_id/close", h.closeFiscalYear)
		years.POST("/:fiscal_year_id/lock", h.lockFiscalYear)
		years.POST("/:fiscal_year_id/current", h.setCurrentFiscalYear)
		years.GET("/:fiscal_year_id/periods", h.listPeriods)
	}

	periods := rg.Group("/periods")
	{
		periods.GET("/:period_id", h.getPeriod)
		periods.POST("/:period_id/transition", h.transitionPeriod)
	}
}

// createFiscalYear godoc
// @Summary Create a fiscal year
// @Description Creates a draft fiscal year and generates its monthly accounting periods, gap-free across the date range.
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   fiscalYear body dto.CreateFiscalYearRequest true "Fiscal year details"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Duplicate code"
// @Security BearerAuth
// @Router /organizations/{organization_id}/fiscal-years [post]
func (h *fiscalHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateFiscalYearRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	year, err := h.fiscalService.CreateFiscalYear(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create fiscal year")
		return
	}

	logger.Info("fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID), slog.String("code", year.Code))
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(year))
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Tags fiscal
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {array} dto.FiscalYearResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/fiscal-years [get]
func (h *fiscalHandler) listFiscalYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	years, err := h.fiscalService.ListFiscalYears(c.Request.Context(), organizationID)
	if err != nil {
		respondError(c, logger, err, "Failed to list fiscal years")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponses(years))
}

// getFiscalYear godoc
// @Summary Get a fiscal year
// @Tags fiscal
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   fiscal_year_id path string true "Fiscal Year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/fiscal-years/{fiscal_year_id} [get]
func (h *fiscalHandler) getFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	fiscalYearID := c.Param("fiscal_year_id")

	year, err := h.fiscalService.GetFiscalYearByID(c.Request.Context(), organizationID, fiscalYearID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// deleteFiscalYear godoc
// @Summary Delete a draft fiscal year
// @Description Removes a draft fiscal year and its periods. Years with journal entries are refused.
// @Tags fiscal
// @Param   organization_id path string true "Organization ID"
// @Param   fiscal_year_id path string true "Fiscal Year ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 422 {object} map[string]string "Year is not draft or has entries"
// @Security BearerAuth
// @Router /organizations/{organization_id}/fiscal-years/{fiscal_year_id} [delete]
func (h *fiscalHandler) deleteFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	fiscalYearID := c.Param("fiscal_year_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.fiscalService.DeleteFiscalYear(c.Request.Context(), organizationID, fiscalYearID, userID); err != nil {
		respondError(c, logger, err, "Failed to delete fiscal year")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *fiscalHandler) transitionYear(c *gin.Context, op func(ctx *gin.Context, organizationID, fiscalYearID, userID string) (*domain.FiscalYear, error), genericMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	fiscalYearID := c.Param("fiscal_year_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	year, err := op(c, organizationID, fiscalYearID, userID)
	if err != nil {
		respondError(c, logger, err, genericMsg)
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// openFiscalYear godoc
// @Summary Open a fiscal year
// @Tags fiscal
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   fiscal_year_id path string true "Fiscal Year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 422 {object} map[string]string "Year is not draft"
// @Security BearerAuth
// @Router /organizations/{organization_id}/fiscal-years/{fiscal_year_id}/open [post]
func (h *fiscalHandler) openFiscalYear(c *gin.Context) {
	h.transitionYear(c, func(ctx *gin.Context, organizationID, fiscalYearID, userID string) (*domain.FiscalYear, error) {
		return h.fiscalService.OpenFiscalYear(ctx.Request.Context(), organizationID, fiscalYearID, userID)
	}, "Failed to open fiscal year")
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Transitions an open year to CLOSED. Every child period must already be closed.
// @Tags fiscal
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   fiscal_year_id path string true "Fiscal Year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 422 {object} map[string]string "Open periods remain"
// @Security BearerAuth
// @Router /organizations/{organization_id}/fiscal-years/{fiscal_year_id}/close [post]
func (h *fiscalHandler) closeFiscalYear(c *gin.Context) {
	h.transitionYear(c, func(ctx *gin.Context, organizationID, fiscalYearID, userID string) (*domain.FiscalYear, error) {
		return h.fiscalService.CloseFiscalYear(ctx.Request.Context(), organizationID, fiscalYearID, userID)
	}, "Failed to close fiscal year")
}

// lockFiscalYear godoc
// @Summary Lock a fiscal year
// @Description Locks a closed year irreversibly and closes any remaining periods.
// @Tags fiscal
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   fiscal_year_id path string true "Fiscal Year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 422 {object} map[string]string "Year is not closed"
// @Security BearerAuth
// @Router /organizations/{organization_id}/fiscal-years/{fiscal_year_id}/lock [post]
func (h *fiscalHandler) lockFiscalYear(c *gin.Context) {
	h.transitionYear(c, func(ctx *gin.Context, organizationID, fiscalYearID, userID string) (*domain.FiscalYear, error) {
		return h.fiscalService.LockFiscalYear(ctx.Request.Context(), organizationID, fiscalYearID, userID)
	}, "Failed to lock fiscal year")
}

// setCurrentFiscalYear godoc
// @Summary Mark a fiscal year as current
// @Tags fiscal
// @Param   organization_id path string true "Organization ID"
// @Param   fiscal_year_id path string true "Fiscal Year ID"
// @Success 204 "No Content"
// @Failure 422 {object} map[string]string "Year is not open"
// @Security BearerAuth
// @Router /organizations/{organization_id}/fiscal-years/{fiscal_year_id}/current [post]
func (h *fiscalHandler) setCurrentFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	fiscalYearID := c.Param("fiscal_year_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.fiscalService.SetCurrentFiscalYear(c.Request.Context(), organizationID, fiscalYearID, userID); err != nil {
		respondError(c, logger, err, "Failed to set current fiscal year")
		return
	}
	c.Status(http.StatusNoContent)
}

// listPeriods godoc
// @Summary List the periods of a fiscal year
// @Tags fiscal
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   fiscal_year_id path string true "Fiscal Year ID"
// @Success 200 {array} dto.PeriodResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/fiscal-years/{fiscal_year_id}/periods [get]
func (h *fiscalHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	fiscalYearID := c.Param("fiscal_year_id")

	periods, err := h.fiscalService.ListPeriods(c.Request.Context(), organizationID, fiscalYearID)
	if err != nil {
		respondError(c, logger, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// getPeriod godoc
// @Summary Get an accounting period
// @Tags fiscal
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/periods/{period_id} [get]
func (h *fiscalHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	periodID := c.Param("period_id")

	period, err := h.fiscalService.GetPeriodByID(c.Request.Context(), organizationID, periodID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// transitionPeriod godoc
// @Summary Transition an accounting period
// @Description Moves a period between OPEN, SOFT_CLOSED and CLOSED. CLOSED is terminal; reopening is only allowed from SOFT_CLOSED.
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   period_id path string true "Period ID"
// @Param   transition body dto.TransitionPeriodRequest true "Target status"
// @Success 200 {object} dto.PeriodResponse
// @Failure 422 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /organizations/{organization_id}/periods/{period_id}/transition [post]
func (h *fiscalHandler) transitionPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	periodID := c.Param("period_id")

	var req dto.TransitionPeriodRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	period, err := h.fiscalService.TransitionPeriod(c.Request.Context(), organizationID, periodID, domain.PeriodStatus(req.Status), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to transition period")
		return
	}

	logger.Info("period transitioned", slog.String("period_id", periodID), slog.String("status", req.Status))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}
