package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/ksiegowo/ksiegowo_backend/internal/middleware"
)

// exchangeRateHandler handles organization-scoped exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(s portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: s}
}

// registerExchangeRateRoutes registers exchange rate routes under an
// organization group.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("", h.listExchangeRates)
		rates.GET("/lookup", h.lookupRate)
	}
}

// createExchangeRate godoc
// @Summary Record an exchange rate
// @Description Records a rate effective from the given date. Conversion lookups pick the latest rate not after the entry date.
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   rate body dto.CreateExchangeRateRequest true "Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid rate"
// @Security BearerAuth
// @Router /organizations/{organization_id}/exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateExchangeRateRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create exchange rate")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Tags exchange-rates
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {array} dto.ExchangeRateResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), organizationID)
	if err != nil {
		respondError(c, logger, err, "Failed to list exchange rates")
		return
	}

	responses := make([]dto.ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = dto.ToExchangeRateResponse(&rates[i])
	}
	c.JSON(http.StatusOK, responses)
}

// lookupRate godoc
// @Summary Look up the rate effective on a date
// @Tags exchange-rates
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   from query string true "From currency code"
// @Param   to query string true "To currency code"
// @Param   onDate query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} map[string]string "No rate effective on the date"
// @Security BearerAuth
// @Router /organizations/{organization_id}/exchange-rates/lookup [get]
func (h *exchangeRateHandler) lookupRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	from := strings.ToUpper(c.Query("from"))
	to := strings.ToUpper(c.Query("to"))
	if len(from) != 3 || len(to) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be 3-letter currency codes"})
		return
	}

	onDate := time.Now().UTC()
	if raw := c.Query("onDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid onDate, expected YYYY-MM-DD"})
			return
		}
		onDate = parsed
	}

	rate, err := h.exchangeRateService.GetRateForDate(c.Request.Context(), organizationID, from, to, onDate)
	if err != nil {
		respondError(c, logger, err, "Failed to look up exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
