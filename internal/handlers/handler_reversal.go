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

// reversalHandler handles reversal, correction and auto-reversal requests.
type reversalHandler struct {
	reversalService portssvc.ReversalSvc
}

func newReversalHandler(s portssvc.ReversalSvc) *reversalHandler {
	return &reversalHandler{reversalService: s}
}

// registerReversalRoutes registers reversal routes under an organization
// group. The per-entry operations live under /entries to keep the resource
// hierarchy flat.
func registerReversalRoutes(rg *gin.RouterGroup, reversalService portssvc.ReversalSvc) {
	h := newReversalHandler(reversalService)

	entries := rg.Group("/entries/:entry_id")
	{
		entries.POST("/reverse", h.reverseEntry)
		entries.POST("/correct", h.correctEntry)
		entries.POST("/schedule-reversal", h.scheduleAutoReversal)
		entries.DELETE("/schedule-reversal", h.cancelAutoReversal)
	}
	rg.POST("/reversals/process-due", h.processDueReversals)
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Creates a reversing entry with every line's debit and credit swapped and links both entries. An entry can be reversed once.
// @Tags reversals
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reversal date and reason"
// @Success 201 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Already reversed"
// @Failure 422 {object} map[string]string "Entry is not posted or date not in an open period"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id}/reverse [post]
func (h *reversalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	var req dto.ReverseEntryRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	reversing, err := h.reversalService.ReverseEntry(c.Request.Context(), organizationID, entryID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reverse entry")
		return
	}

	logger.Info("entry reversed", slog.String("entry_id", entryID), slog.String("reversing_entry_id", reversing.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversing))
}

// correctEntry godoc
// @Summary Create a correcting entry
// @Description Creates an adjusting entry carrying only the correcting delta, linked to the original posted entry.
// @Tags reversals
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Param   correction body dto.CreateCorrectionRequest true "Correction lines and reason"
// @Success 201 {object} dto.EntryResponse
// @Failure 422 {object} map[string]string "Original entry is not posted"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id}/correct [post]
func (h *reversalHandler) correctEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	var req dto.CreateCorrectionRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	correction, err := h.reversalService.CreateCorrection(c.Request.Context(), organizationID, entryID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create correction")
		return
	}

	logger.Info("correction created", slog.String("entry_id", entryID), slog.String("correction_entry_id", correction.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(correction))
}

// scheduleAutoReversal godoc
// @Summary Schedule an automatic reversal
// @Description Annotates a posted entry so the sweep reverses it on the given date. Typical for accruals reversed at the start of the next period.
// @Tags reversals
// @Accept  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Param   schedule body dto.ScheduleAutoReversalRequest true "Reversal date"
// @Success 204 "No Content"
// @Failure 422 {object} map[string]string "Entry is not posted or date not after the entry date"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id}/schedule-reversal [post]
func (h *reversalHandler) scheduleAutoReversal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	var req dto.ScheduleAutoReversalRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.reversalService.ScheduleAutoReversal(c.Request.Context(), organizationID, entryID, req.ReverseOn, userID); err != nil {
		respondError(c, logger, err, "Failed to schedule auto-reversal")
		return
	}
	c.Status(http.StatusNoContent)
}

// cancelAutoReversal godoc
// @Summary Cancel a scheduled automatic reversal
// @Description Clears the auto-reverse date so the sweep no longer picks the entry up.
// @Tags reversals
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "No auto-reversal scheduled"
// @Failure 422 {object} map[string]string "Entry is not posted"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id}/schedule-reversal [delete]
func (h *reversalHandler) cancelAutoReversal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.reversalService.CancelAutoReversal(c.Request.Context(), organizationID, entryID, userID); err != nil {
		respondError(c, logger, err, "Failed to cancel auto-reversal")
		return
	}
	c.Status(http.StatusNoContent)
}

// processDueReversals godoc
// @Summary Run the auto-reversal sweep
// @Description Reverses every posted entry whose auto-reverse date has arrived. Idempotent; one failing entry never aborts the rest.
// @Tags reversals
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   sweep body dto.ProcessDueReversalsRequest false "As-of date, defaults to today"
// @Success 200 {object} dto.ReversalSweepResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/reversals/process-due [post]
func (h *reversalHandler) processDueReversals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.ProcessDueReversalsRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	// Zero asOf lets the service supply its own clock, keeping the sweep
	// deterministic under an injected clock.
	var asOf time.Time
	if req.AsOfDate != nil {
		asOf = *req.AsOfDate
	}

	result, err := h.reversalService.ProcessDueReversals(c.Request.Context(), organizationID, asOf, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to process due reversals")
		return
	}

	logger.Info("reversal sweep finished", slog.Int("processed", result.Processed), slog.Int("failed", result.Failed))
	c.JSON(http.StatusOK, result)
}
