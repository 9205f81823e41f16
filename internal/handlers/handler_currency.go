package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/ksiegowo/ksiegowo_backend/internal/middleware"
)

// currencyHandler handles the platform-wide currency dictionary.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newCurrencyHandler(s portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: s}
}

// registerCurrencyRoutes registers currency routes. Currencies are global,
// not organization-scoped.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:currency_code", h.getCurrency)
	}
}

// createCurrency godoc
// @Summary Add a currency
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 409 {object} map[string]string "Currency already exists"
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCurrencyRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create currency")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List currencies
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list currencies")
		return
	}

	responses := make([]dto.CurrencyResponse, len(currencies))
	for i := range currencies {
		responses[i] = dto.ToCurrencyResponse(&currencies[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getCurrency godoc
// @Summary Get a currency by ISO code
// @Tags currencies
// @Produce  json
// @Param   currency_code path string true "ISO 4217 code"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{currency_code} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := strings.ToUpper(c.Param("currency_code"))

	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}
