package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/ksiegowo/ksiegowo_backend/internal/middleware"
)

// costCenterHandler handles cost center management.
type costCenterHandler struct {
	costCenterService portssvc.CostCenterSvcFacade
}

func newCostCenterHandler(s portssvc.CostCenterSvcFacade) *costCenterHandler {
	return &costCenterHandler{costCenterService: s}
}

// registerCostCenterRoutes registers cost center routes under an organization
// group.
func registerCostCenterRoutes(rg *gin.RouterGroup, costCenterService portssvc.CostCenterSvcFacade) {
	h := newCostCenterHandler(costCenterService)

	costCenters := rg.Group("/cost-centers")
	{
		costCenters.POST("", h.createCostCenter)
		costCenters.GET("", h.listCostCenters)
		costCenters.GET("/:cost_center_id", h.getCostCenter)
		costCenters.PUT("/:cost_center_id", h.updateCostCenter)
	}
}

// createCostCenter godoc
// @Summary Create a cost center
// @Tags cost-centers
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   costCenter body dto.CreateCostCenterRequest true "Cost center details"
// @Success 201 {object} dto.CostCenterResponse
// @Failure 409 {object} map[string]string "Duplicate code"
// @Security BearerAuth
// @Router /organizations/{organization_id}/cost-centers [post]
func (h *costCenterHandler) createCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateCostCenterRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	costCenter, err := h.costCenterService.CreateCostCenter(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create cost center")
		return
	}

	logger.Info("cost center created", slog.String("cost_center_id", costCenter.CostCenterID))
	c.JSON(http.StatusCreated, dto.ToCostCenterResponse(costCenter))
}

// listCostCenters godoc
// @Summary List cost centers
// @Tags cost-centers
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   includeInactive query bool false "Include inactive cost centers"
// @Success 200 {array} dto.CostCenterResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/cost-centers [get]
func (h *costCenterHandler) listCostCenters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	includeInactive := c.Query("includeInactive") == "true"

	costCenters, err := h.costCenterService.ListCostCenters(c.Request.Context(), organizationID, includeInactive)
	if err != nil {
		respondError(c, logger, err, "Failed to list cost centers")
		return
	}
	c.JSON(http.StatusOK, dto.ToCostCenterResponses(costCenters))
}

// getCostCenter godoc
// @Summary Get a cost center
// @Tags cost-centers
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   cost_center_id path string true "Cost center ID"
// @Success 200 {object} dto.CostCenterResponse
// @Failure 404 {object} map[string]string "Cost center not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/cost-centers/{cost_center_id} [get]
func (h *costCenterHandler) getCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	costCenterID := c.Param("cost_center_id")

	costCenter, err := h.costCenterService.GetCostCenterByID(c.Request.Context(), organizationID, costCenterID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve cost center")
		return
	}
	c.JSON(http.StatusOK, dto.ToCostCenterResponse(costCenter))
}

// updateCostCenter godoc
// @Summary Update a cost center
// @Tags cost-centers
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   cost_center_id path string true "Cost center ID"
// @Param   costCenter body dto.UpdateCostCenterRequest true "Fields to update"
// @Success 200 {object} dto.CostCenterResponse
// @Failure 404 {object} map[string]string "Cost center not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/cost-centers/{cost_center_id} [put]
func (h *costCenterHandler) updateCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	costCenterID := c.Param("cost_center_id")

	var req dto.UpdateCostCenterRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	costCenter, err := h.costCenterService.UpdateCostCenter(c.Request.Context(), organizationID, costCenterID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update cost center")
		return
	}
	c.JSON(http.StatusOK, dto.ToCostCenterResponse(costCenter))
}
