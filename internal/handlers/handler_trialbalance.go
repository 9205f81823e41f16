package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/ksiegowo/ksiegowo_backend/internal/middleware"
)

// trialBalanceHandler handles on-demand trial balance generation and the
// persisted working trial balance workspaces.
type trialBalanceHandler struct {
	trialBalanceService portssvc.TrialBalanceSvcFacade
}

func newTrialBalanceHandler(s portssvc.TrialBalanceSvcFacade) *trialBalanceHandler {
	return &trialBalanceHandler{trialBalanceService: s}
}

// registerTrialBalanceRoutes registers trial balance routes under an
// organization group.
func registerTrialBalanceRoutes(rg *gin.RouterGroup, trialBalanceService portssvc.TrialBalanceSvcFacade) {
	h := newTrialBalanceHandler(trialBalanceService)

	rg.GET("/trial-balance", h.generateTrialBalance)
	rg.POST("/trial-balance/comparative", h.generateComparativeTrialBalance)

	workspaces := rg.Group("/working-trial-balances")
	{
		workspaces.POST("", h.createWorkingTrialBalance)
		workspaces.GET("", h.listWorkingTrialBalances)
		workspaces.GET("/:wtb_id", h.getWorkingTrialBalance)
		workspaces.POST("/:wtb_id/columns", h.addAdjustmentColumn)
		workspaces.POST("/:wtb_id/adjustments", h.recordAdjustment)
		workspaces.POST("/:wtb_id/lock", h.lockWorkingTrialBalance)
	}
}

// generateTrialBalance godoc
// @Summary Generate a trial balance
// @Description Computes a point-in-time trial balance across the chart of accounts. Total debits always equal total credits; accounts sitting on the wrong side of their normal balance are flagged.
// @Tags trial-balance
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   asOfDate query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Param   accountType query string false "Restrict to one account type" Enums(ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE)
// @Param   groupByType query bool false "Insert subtotal rows per account type"
// @Param   omitZeroRows query bool false "Drop rows with zero activity and balance"
// @Success 200 {object} domain.TrialBalanceReport
// @Security BearerAuth
// @Router /organizations/{organization_id}/trial-balance [get]
func (h *trialBalanceHandler) generateTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.TrialBalanceParams
	if !bindQuery(c, logger, &params) {
		return
	}

	report, err := h.trialBalanceService.GenerateTrialBalance(c.Request.Context(), organizationID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

// generateComparativeTrialBalance godoc
// @Summary Generate a comparative trial balance
// @Description Repeats the trial balance computation for several as-of dates and reports absolute and percent variance per account.
// @Tags trial-balance
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   params body dto.ComparativeTrialBalanceParams true "Comparison dates and significance threshold"
// @Success 200 {object} domain.ComparativeTrialBalance
// @Failure 400 {object} map[string]string "No comparison dates"
// @Security BearerAuth
// @Router /organizations/{organization_id}/trial-balance/comparative [post]
func (h *trialBalanceHandler) generateComparativeTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.ComparativeTrialBalanceParams
	if !bindJSON(c, logger, &params) {
		return
	}

	report, err := h.trialBalanceService.GenerateComparativeTrialBalance(c.Request.Context(), organizationID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to generate comparative trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

// createWorkingTrialBalance godoc
// @Summary Create a working trial balance
// @Description Seeds a persisted audit workspace from a freshly generated trial balance. Lines snapshot the unadjusted balances.
// @Tags trial-balance
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   workspace body dto.CreateWorkingTrialBalanceRequest true "Workspace name and as-of date"
// @Success 201 {object} domain.WorkingTrialBalance
// @Security BearerAuth
// @Router /organizations/{organization_id}/working-trial-balances [post]
func (h *trialBalanceHandler) createWorkingTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateWorkingTrialBalanceRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	wtb, err := h.trialBalanceService.CreateWorkingTrialBalance(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create working trial balance")
		return
	}

	logger.Info("working trial balance created", slog.String("wtb_id", wtb.WorkingTrialBalanceID))
	c.JSON(http.StatusCreated, wtb)
}

// listWorkingTrialBalances godoc
// @Summary List working trial balances
// @Tags trial-balance
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {array} domain.WorkingTrialBalance
// @Security BearerAuth
// @Router /organizations/{organization_id}/working-trial-balances [get]
func (h *trialBalanceHandler) listWorkingTrialBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	workspaces, err := h.trialBalanceService.ListWorkingTrialBalances(c.Request.Context(), organizationID)
	if err != nil {
		respondError(c, logger, err, "Failed to list working trial balances")
		return
	}
	c.JSON(http.StatusOK, workspaces)
}

// getWorkingTrialBalance godoc
// @Summary Get a working trial balance
// @Description Retrieves the workspace with its lines, adjustment columns and recorded adjustments. Adjusted balances are computed on read.
// @Tags trial-balance
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   wtb_id path string true "Working trial balance ID"
// @Success 200 {object} domain.WorkingTrialBalance
// @Failure 404 {object} map[string]string "Workspace not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/working-trial-balances/{wtb_id} [get]
func (h *trialBalanceHandler) getWorkingTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	workingTrialBalanceID := c.Param("wtb_id")

	wtb, err := h.trialBalanceService.GetWorkingTrialBalanceByID(c.Request.Context(), organizationID, workingTrialBalanceID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve working trial balance")
		return
	}
	c.JSON(http.StatusOK, wtb)
}

// addAdjustmentColumn godoc
// @Summary Add an adjustment column
// @Tags trial-balance
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   wtb_id path string true "Working trial balance ID"
// @Param   column body dto.AddAdjustmentColumnRequest true "Column name"
// @Success 201 {object} domain.AdjustmentColumn
// @Failure 422 {object} map[string]string "Workspace is locked"
// @Security BearerAuth
// @Router /organizations/{organization_id}/working-trial-balances/{wtb_id}/columns [post]
func (h *trialBalanceHandler) addAdjustmentColumn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	workingTrialBalanceID := c.Param("wtb_id")

	var req dto.AddAdjustmentColumnRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	column, err := h.trialBalanceService.AddAdjustmentColumn(c.Request.Context(), organizationID, workingTrialBalanceID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to add adjustment column")
		return
	}
	c.JSON(http.StatusCreated, column)
}

// recordAdjustment godoc
// @Summary Record an adjustment
// @Description Records or overwrites one adjustment cell. The workspace must be open.
// @Tags trial-balance
// @Accept  json
// @Param   organization_id path string true "Organization ID"
// @Param   wtb_id path string true "Working trial balance ID"
// @Param   adjustment body dto.RecordAdjustmentRequest true "Column, line and amounts"
// @Success 204 "No Content"
// @Failure 422 {object} map[string]string "Workspace is locked or amounts invalid"
// @Security BearerAuth
// @Router /organizations/{organization_id}/working-trial-balances/{wtb_id}/adjustments [post]
func (h *trialBalanceHandler) recordAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	workingTrialBalanceID := c.Param("wtb_id")

	var req dto.RecordAdjustmentRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.trialBalanceService.RecordAdjustment(c.Request.Context(), organizationID, workingTrialBalanceID, req, userID); err != nil {
		respondError(c, logger, err, "Failed to record adjustment")
		return
	}
	c.Status(http.StatusNoContent)
}

// lockWorkingTrialBalance godoc
// @Summary Lock a working trial balance
// @Description Freezes the workspace against further adjustments. Terminal.
// @Tags trial-balance
// @Param   organization_id path string true "Organization ID"
// @Param   wtb_id path string true "Working trial balance ID"
// @Success 204 "No Content"
// @Failure 422 {object} map[string]string "Workspace already locked"
// @Security BearerAuth
// @Router /organizations/{organization_id}/working-trial-balances/{wtb_id}/lock [post]
func (h *trialBalanceHandler) lockWorkingTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	workingTrialBalanceID := c.Param("wtb_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.trialBalanceService.LockWorkingTrialBalance(c.Request.Context(), organizationID, workingTrialBalanceID, userID); err != nil {
		respondError(c, logger, err, "Failed to lock working trial balance")
		return
	}

	logger.Info("working trial balance locked", slog.String("wtb_id", workingTrialBalanceID))
	c.Status(http.StatusNoContent)
}
