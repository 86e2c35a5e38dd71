package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/dto"
	"github.com/fintrack/fintrack_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// snapshotHandler handles HTTP requests related to manual balance snapshots.
type snapshotHandler struct {
	snapshotService portssvc.SnapshotSvcFacade
}

// newSnapshotHandler creates a new snapshotHandler.
func newSnapshotHandler(ss portssvc.SnapshotSvcFacade) *snapshotHandler {
	return &snapshotHandler{
		snapshotService: ss,
	}
}

// registerSnapshotRoutes registers routes related to balance snapshots.
func registerSnapshotRoutes(rg *gin.RouterGroup, snapshotService portssvc.SnapshotSvcFacade) {
	h := newSnapshotHandler(snapshotService)

	snapshots := rg.Group("/accounts/:id/snapshots")
	{
		snapshots.PUT("", h.upsertSnapshot)
		snapshots.GET("", h.listSnapshots)
		snapshots.DELETE("", h.deleteSnapshot)
	}
}

func (h *snapshotHandler) upsertSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.UpsertSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertSnapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	snapshot, err := h.snapshotService.UpsertSnapshot(c.Request.Context(), accountID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upsert snapshot", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save snapshot"})
		}
		return
	}

	logger.Info("Snapshot saved", slog.String("account_id", accountID), slog.Time("date", snapshot.Date))
	c.JSON(http.StatusOK, dto.ToSnapshotResponse(snapshot))
}

func (h *snapshotHandler) listSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	snapshots, err := h.snapshotService.ListSnapshots(c.Request.Context(), accountID, from, to)
	if err != nil {
		logger.Error("Failed to list snapshots", slog.String("account_id", accountID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list snapshots"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotResponses(snapshots))
}

func (h *snapshotHandler) deleteSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	err = h.snapshotService.DeleteSnapshot(c.Request.Context(), accountID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Snapshot not found"})
		} else {
			logger.Error("Failed to delete snapshot", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete snapshot"})
		}
		return
	}

	logger.Info("Snapshot deleted", slog.String("account_id", accountID), slog.String("date", dateStr))
	c.Status(http.StatusNoContent)
}

// parseDateQuery reads a required YYYY-MM-DD query parameter, writing the
// error response itself when absent or malformed.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " query parameter is required"})
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be formatted as YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}
