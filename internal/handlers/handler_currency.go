package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/dto"
	"github.com/fintrack/fintrack_backend/internal/middleware"
	"github.com/fintrack/fintrack_backend/internal/money"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests for currency reference data and
// offline conversions against the injected rate table.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
	rates           *money.Rates
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade, rates *money.Rates) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
		rates:           rates,
	}
}

// registerCurrencyRoutes registers currency reference and conversion routes.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade, rates *money.Rates) {
	h := newCurrencyHandler(currencyService, rates)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrency)
	}
	rg.GET("/rates", h.convert)
}

func (h *currencyHandler) getCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get currency", slog.String("currency_code", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve currency"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list currencies", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list currencies"})
		return
	}

	out := make([]dto.CurrencyResponse, len(currencies))
	for i := range currencies {
		out[i] = dto.ToCurrencyResponse(&currencies[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *currencyHandler) convert(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	amountStr := c.Query("amount")
	if from == "" || to == "" || amountStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from, to, and amount query parameters are required"})
		return
	}

	if !money.IsValid(amountStr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a finite decimal"})
		return
	}
	amount := money.ToDecimal(amountStr)

	rate, ok := h.rates.ExchangeRate(from, to)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No exchange rate for " + from + "/" + to})
		return
	}
	converted, ok := h.rates.Convert(amount, from, to, nil)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No exchange rate for " + from + "/" + to})
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		From:      from,
		To:        to,
		Amount:    money.FormatForCurrency(amount, from),
		Rate:      rate.String(),
		Converted: converted.String(),
	})
}
