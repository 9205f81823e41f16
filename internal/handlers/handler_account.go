package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/ksiegowo/ksiegowo_backend/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService, ledgerService: ledgerService}
}

// registerAccountRoutes registers account routes under an organization group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(accountService, ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PUT("/:account_id", h.updateAccount)
		accounts.DELETE("/:account_id", h.deactivateAccount)
		accounts.GET("/:account_id/ledger", h.getAccountLedger)
		accounts.GET("/:account_id/balance", h.getAccountBalance)
	}
}

// createAccount godoc
// @Summary Create an account
// @Description Creates an account in the organization's chart of accounts. Normal balance defaults from the account type; level and path derive from the parent.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Duplicate code"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateAccountRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   includeInactive query bool false "Include inactive accounts"
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	includeInactive := c.Query("includeInactive") == "true"

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), organizationID, includeInactive)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// getAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	accountID := c.Param("account_id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), organizationID, accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates mutable account details. Code, type and normal balance are immutable.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   account_id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	accountID := c.Param("account_id")

	var req dto.UpdateAccountRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), organizationID, accountID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks an account inactive. Accounts with a nonzero net balance are refused.
// @Tags accounts
// @Param   organization_id path string true "Organization ID"
// @Param   account_id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Account carries a balance"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	accountID := c.Param("account_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), organizationID, accountID, userID); err != nil {
		respondError(c, logger, err, "Failed to deactivate account")
		return
	}
	c.Status(http.StatusNoContent)
}

// getAccountLedger godoc
// @Summary Get an account's ledger
// @Description Retrieves the account's general-ledger rows with token pagination. Running balances are included for chronological reads.
// @Tags accounts
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   account_id path string true "Account ID"
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Param   includeRunningBalance query bool false "Annotate rows with running balances"
// @Success 200 {object} dto.AccountLedgerResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id}/ledger [get]
func (h *accountHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	accountID := c.Param("account_id")

	var params dto.AccountLedgerParams
	if !bindQuery(c, logger, &params) {
		return
	}

	ledger, err := h.ledgerService.GetAccountLedger(c.Request.Context(), organizationID, accountID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// getAccountBalance godoc
// @Summary Get an account's as-of balance
// @Tags accounts
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   account_id path string true "Account ID"
// @Param   asOfDate query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	accountID := c.Param("account_id")

	asOf := time.Now().UTC()
	if raw := c.Query("asOfDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOfDate, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	balance, err := h.ledgerService.CalculateAccountBalance(c.Request.Context(), organizationID, accountID, asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to calculate account balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}
