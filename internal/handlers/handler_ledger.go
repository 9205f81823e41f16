package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/ksiegowo/ksiegowo_backend/internal/middleware"
)

// ledgerHandler handles ledger-wide reports and maintained period balances.
// Per-account ledger reads live on the account handler.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(s portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: s}
}

// registerLedgerRoutes registers ledger report and balance routes under an
// organization group.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.GET("/ledger/report", h.getLedgerReport)

	periods := rg.Group("/periods/:period_id/balances")
	{
		periods.GET("", h.getPeriodBalances)
		periods.POST("/:account_id/recalculate", h.recalculateBalance)
	}
}

// getLedgerReport godoc
// @Summary Build the full ledger report
// @Description Computes opening balance, period movements and closing balance for every account over a period, fiscal year or date range.
// @Tags ledger
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   periodID query string false "Accounting period ID"
// @Param   fiscalYearID query string false "Fiscal year ID"
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Param   groupByType query bool false "Group rows by account type"
// @Param   omitZeroRows query bool false "Drop rows with no movements and zero balances"
// @Success 200 {object} dto.LedgerReportResponse
// @Failure 400 {object} map[string]string "Invalid scope"
// @Security BearerAuth
// @Router /organizations/{organization_id}/ledger/report [get]
func (h *ledgerHandler) getLedgerReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.LedgerReportParams
	if !bindQuery(c, logger, &params) {
		return
	}

	report, err := h.ledgerService.GetLedgerReport(c.Request.Context(), organizationID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to build ledger report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getPeriodBalances godoc
// @Summary List the maintained balances of a period
// @Tags ledger
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {array} domain.AccountBalance
// @Failure 404 {object} map[string]string "Period not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/periods/{period_id}/balances [get]
func (h *ledgerHandler) getPeriodBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	periodID := c.Param("period_id")

	balances, err := h.ledgerService.GetPeriodBalances(c.Request.Context(), organizationID, periodID)
	if err != nil {
		respondError(c, logger, err, "Failed to list period balances")
		return
	}
	c.JSON(http.StatusOK, balances)
}

// recalculateBalance godoc
// @Summary Rebuild one account's period balance from the ledger
// @Description Recomputes the maintained balance row from ledger records and overwrites it. Idempotent consistency repair.
// @Tags ledger
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   period_id path string true "Period ID"
// @Param   account_id path string true "Account ID"
// @Success 200 {object} domain.AccountBalance
// @Failure 404 {object} map[string]string "Period or account not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/periods/{period_id}/balances/{account_id}/recalculate [post]
func (h *ledgerHandler) recalculateBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	periodID := c.Param("period_id")
	accountID := c.Param("account_id")

	balance, err := h.ledgerService.RecalculatePeriodBalances(c.Request.Context(), organizationID, accountID, periodID)
	if err != nil {
		respondError(c, logger, err, "Failed to recalculate balance")
		return
	}

	logger.Info("balance recalculated", slog.String("account_id", accountID), slog.String("period_id", periodID))
	c.JSON(http.StatusOK, balance)
}
