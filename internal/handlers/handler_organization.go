package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/ksiegowo/ksiegowo_backend/internal/middleware"
)

// organizationHandler handles HTTP requests related to organizations.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

func newOrganizationHandler(s portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{organizationService: s}
}

// registerOrganizationRoutes registers routes for managing organizations and
// nests every organization-scoped resource below /organizations/:organization_id.
func registerOrganizationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newOrganizationHandler(services.Organization)

	organizations := rg.Group("/organizations")
	{
		organizations.POST("", h.createOrganization)
		organizations.GET("", h.listOrganizations)
	}

	orgSpecific := rg.Group("/organizations/:organization_id")
	{
		orgSpecific.GET("", h.getOrganization)
		orgSpecific.PUT("", h.updateOrganization)
		orgSpecific.DELETE("", h.deactivateOrganization)

		registerAccountRoutes(orgSpecific, services.Account, services.Ledger)
		registerFiscalRoutes(orgSpecific, services.Fiscal)
		registerJournalRoutes(orgSpecific, services.Journal)
		registerReversalRoutes(orgSpecific, services.Reversal)
		registerLedgerRoutes(orgSpecific, services.Ledger)
		registerTrialBalanceRoutes(orgSpecific, services.TrialBalance)
		registerExchangeRateRoutes(orgSpecific, services.ExchangeRate)
		registerCostCenterRoutes(orgSpecific, services.CostCenter)
	}
}

// createOrganization godoc
// @Summary Create a new organization
// @Description Creates a new bookkeeping client organization. The base currency defaults to the platform default when omitted.
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrganizationRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	org, err := h.organizationService.CreateOrganization(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create organization")
		return
	}

	logger.Info("organization created", slog.String("organization_id", org.OrganizationID))
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// listOrganizations godoc
// @Summary List organizations
// @Description Retrieves the organizations visible to the caller.
// @Tags organizations
// @Produce  json
// @Success 200 {array} dto.OrganizationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listOrganizations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	orgs, err := h.organizationService.ListOrganizations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list organizations")
		return
	}

	responses := make([]dto.OrganizationResponse, len(orgs))
	for i := range orgs {
		responses[i] = dto.ToOrganizationResponse(&orgs[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getOrganization godoc
// @Summary Get an organization
// @Tags organizations
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organization_id} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	org, err := h.organizationService.GetOrganizationByID(c.Request.Context(), organizationID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// updateOrganization godoc
// @Summary Update an organization
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   organization body dto.UpdateOrganizationRequest true "Fields to update"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organization_id} [put]
func (h *organizationHandler) updateOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.UpdateOrganizationRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	org, err := h.organizationService.UpdateOrganization(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// deactivateOrganization godoc
// @Summary Deactivate an organization
// @Tags organizations
// @Param   organization_id path string true "Organization ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 409 {object} map[string]string "Already inactive"
// @Security BearerAuth
// @Router /organizations/{organization_id} [delete]
func (h *organizationHandler) deactivateOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.organizationService.DeactivateOrganization(c.Request.Context(), organizationID, userID); err != nil {
		respondError(c, logger, err, "Failed to deactivate organization")
		return
	}
	c.Status(http.StatusNoContent)
}
