package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/dto"
	"github.com/fintrack/fintrack_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// analyticsHandler handles HTTP requests for derived balance views: replay
// based series from the balance service and snapshot based charts from the
// snapshot service.
type analyticsHandler struct {
	balanceService  portssvc.BalanceSvcFacade
	snapshotService portssvc.SnapshotSvcFacade
}

// newAnalyticsHandler creates a new analyticsHandler.
func newAnalyticsHandler(bs portssvc.BalanceSvcFacade, ss portssvc.SnapshotSvcFacade) *analyticsHandler {
	return &analyticsHandler{
		balanceService:  bs,
		snapshotService: ss,
	}
}

// registerAnalyticsRoutes registers derived balance view routes.
func registerAnalyticsRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade, snapshotService portssvc.SnapshotSvcFacade) {
	h := newAnalyticsHandler(balanceService, snapshotService)

	accounts := rg.Group("/accounts/:id")
	{
		accounts.GET("/balance", h.getBalanceAtDate)
		accounts.GET("/balances", h.getDailyBalances)
		accounts.GET("/burndown", h.getBurndown)
		accounts.GET("/snapshot-chart", h.getSnapshotChart)
	}
}

func (h *analyticsHandler) getBalanceAtDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	balance, err := h.balanceService.GetBalanceAtDate(c.Request.Context(), accountID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to derive balance at date", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive balance"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"accountID": accountID, "date": date, "balance": balance.String()})
}

func (h *analyticsHandler) getDailyBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	start, ok := parseDateQuery(c, "start")
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end")
	if !ok {
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must not be before start"})
		return
	}

	series, err := h.balanceService.GetDailyBalances(c.Request.Context(), accountID, start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to derive daily balances", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive daily balances"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyBalanceResponses(series))
}

func (h *analyticsHandler) getBurndown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}
	months := 3
	if monthsStr := c.Query("months"); monthsStr != "" {
		n, err := strconv.Atoi(monthsStr)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be a positive integer"})
			return
		}
		months = n
	}

	data, err := h.balanceService.GetBurndownData(c.Request.Context(), accountID, year, month, months)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to build burndown data", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build burndown data"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBurndownResponse(data))
}

func (h *analyticsHandler) getSnapshotChart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	data, err := h.snapshotService.GetSnapshotChart(c.Request.Context(), accountID, year, month)
	if err != nil {
		logger.Error("Failed to build snapshot chart", slog.String("account_id", accountID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build snapshot chart"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotChartResponse(data))
}

// parseYearMonth reads required year and month query parameters, writing the
// error response itself when absent or out of range.
func parseYearMonth(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a positive integer"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
		return 0, 0, false
	}
	return year, time.Month(month), true
}
