package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/ksiegowo/ksiegowo_backend/internal/middleware"
)

// journalHandler handles HTTP requests for journal entries and their
// lifecycle: draft editing, the approval workflow, and posting.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(s portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: s}
}

// registerJournalRoutes registers journal entry routes under an organization
// group.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.POST("/bulk-post", h.bulkPostEntries)
		entries.POST("/bulk-delete", h.bulkDeleteEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
		entries.POST("/:entry_id/submit", h.submitEntry)
		entries.POST("/:entry_id/approve", h.approveEntry)
		entries.POST("/:entry_id/reject", h.rejectEntry)
		entries.POST("/:entry_id/post", h.postEntry)
		entries.GET("/:entry_id/validate", h.validateEntry)
	}
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates a balanced draft entry. The entry number is assigned at creation and never reused. Foreign-currency lines are converted at the supplied or looked-up rate.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry body dto.CreateEntryRequest true "Entry with at least two lines"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Unbalanced or invalid entry"
// @Failure 422 {object} map[string]string "No open period covers the date"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateEntryRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create entry")
		return
	}

	logger.Info("entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Tags entries
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   status query string false "Filter by status" Enums(DRAFT, PENDING, POSTED, REVERSED)
// @Param   entryType query string false "Filter by type" Enums(STANDARD, OPENING, REVERSING, ADJUSTING)
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Param   includeLines query bool false "Hydrate lines"
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListEntriesResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.ListEntriesParams
	if !bindQuery(c, logger, &params) {
		return
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), organizationID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags entries
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), organizationID, entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a draft or pending entry
// @Description Rewrites an editable entry. Posted and reversed entries are immutable; corrections go through reversal or adjustment.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Fields to update; lines replace the whole set"
// @Success 200 {object} dto.EntryResponse
// @Failure 422 {object} map[string]string "Entry is not editable"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	var req dto.UpdateEntryRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), organizationID, entryID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft entry
// @Description Removes a draft entry. Its entry number is consumed and never reassigned.
// @Tags entries
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 422 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.journalService.DeleteEntry(c.Request.Context(), organizationID, entryID, userID); err != nil {
		respondError(c, logger, err, "Failed to delete entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// submitEntry godoc
// @Summary Submit an entry for approval
// @Tags entries
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 422 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id}/submit [post]
func (h *journalHandler) submitEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.SubmitEntry(c.Request.Context(), organizationID, entryID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to submit entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// approveEntry godoc
// @Summary Approve a pending entry
// @Description Records approval. The submitter cannot approve their own entry.
// @Tags entries
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 422 {object} map[string]string "Entry is not pending or self-approval"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id}/approve [post]
func (h *journalHandler) approveEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.ApproveEntry(c.Request.Context(), organizationID, entryID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to approve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// rejectEntry godoc
// @Summary Reject a pending entry
// @Description Sends a pending entry back to draft with the reviewer's reason.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Param   rejection body dto.RejectEntryRequest true "Rejection reason"
// @Success 200 {object} dto.EntryResponse
// @Failure 422 {object} map[string]string "Entry is not pending"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id}/reject [post]
func (h *journalHandler) rejectEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	var req dto.RejectEntryRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.RejectEntry(c.Request.Context(), organizationID, entryID, req.Reason, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reject entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry godoc
// @Summary Post an entry to the general ledger
// @Description Validates and posts the entry atomically: ledger records are appended, balances incremented, and the entry becomes immutable.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Param   posting body dto.PostEntryRequest false "Posting options"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Already posted"
// @Failure 422 {object} map[string]string "Validation failed or period closed"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	var req dto.PostEntryRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), organizationID, entryID, userID, req.BypassApproval)
	if err != nil {
		respondError(c, logger, err, "Failed to post entry")
		return
	}

	logger.Info("entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// bulkPostEntries godoc
// @Summary Post a batch of entries
// @Description Posts each entry independently; one failure never aborts the rest. Returns per-item outcomes.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   batch body dto.BulkEntryRequest true "Entry IDs to post"
// @Success 200 {object} dto.BulkOperationResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/bulk-post [post]
func (h *journalHandler) bulkPostEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.BulkEntryRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	result, err := h.journalService.PostEntries(c.Request.Context(), organizationID, req.EntryIDs, userID, req.BypassApproval)
	if err != nil {
		respondError(c, logger, err, "Failed to post entries")
		return
	}

	logger.Info("bulk post finished", slog.Int("succeeded", result.Succeeded), slog.Int("failed", result.Failed))
	c.JSON(http.StatusOK, result)
}

// bulkDeleteEntries godoc
// @Summary Delete a batch of draft entries
// @Description Deletes each draft entry independently; non-draft entries fail in place without aborting the rest. Returns per-item outcomes.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   batch body dto.BulkEntryRequest true "Entry IDs to delete"
// @Success 200 {object} dto.BulkOperationResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/bulk-delete [post]
func (h *journalHandler) bulkDeleteEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.BulkEntryRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	result, err := h.journalService.DeleteEntries(c.Request.Context(), organizationID, req.EntryIDs, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to delete entries")
		return
	}

	logger.Info("bulk delete finished", slog.Int("succeeded", result.Succeeded), slog.Int("failed", result.Failed))
	c.JSON(http.StatusOK, result)
}

// validateEntry godoc
// @Summary Dry-run the posting rules against an entry
// @Description Runs the full posting rule set without side effects and returns every outcome, not just the first failure.
// @Tags entries
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.ValidationResultResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id}/validate [get]
func (h *journalHandler) validateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	result, err := h.journalService.ValidateEntry(c.Request.Context(), organizationID, entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to validate entry")
		return
	}
	c.JSON(http.StatusOK, result)
}
