package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/dto"
	"github.com/fintrack/fintrack_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// operationHandler handles HTTP requests related to ledger operations.
type operationHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newOperationHandler creates a new operationHandler.
func newOperationHandler(ls portssvc.LedgerSvcFacade) *operationHandler {
	return &operationHandler{
		ledgerService: ls,
	}
}

// registerOperationRoutes registers routes related to ledger operations.
func registerOperationRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newOperationHandler(ledgerService)

	operations := rg.Group("/operations")
	{
		operations.POST("", h.createOperation)
		operations.GET("", h.listOperations)
		operations.GET("/:id", h.getOperation)
		operations.PUT("/:id", h.updateOperation)
		operations.DELETE("/:id", h.deleteOperation)
	}
}

func (h *operationHandler) createOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOperation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create operation",
		slog.String("type", req.Type),
		slog.String("account_id", req.AccountID.String()))

	op, err := h.ledgerService.CreateOperation(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating operation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create operation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create operation"})
		}
		return
	}

	logger.Info("Operation created successfully", slog.String("operation_id", op.OperationID))
	c.JSON(http.StatusCreated, dto.ToOperationResponse(op))
}

func (h *operationHandler) getOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operationID := c.Param("id")

	op, err := h.ledgerService.GetOperationByID(c.Request.Context(), operationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Operation not found"})
		} else {
			logger.Error("Failed to get operation", slog.String("operation_id", operationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve operation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOperationResponse(op))
}

func (h *operationHandler) listOperations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID := c.Query("accountId")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountId query parameter is required"})
		return
	}

	params := dto.ListOperationsParams{}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	page, err := h.ledgerService.ListOperationsByAccount(c.Request.Context(), accountID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list operations", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list operations"})
		}
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *operationHandler) updateOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operationID := c.Param("id")

	var req dto.UpdateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateOperation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	op, err := h.ledgerService.UpdateOperation(c.Request.Context(), operationID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Operation not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating operation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update operation", slog.String("operation_id", operationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update operation"})
		}
		return
	}

	logger.Info("Operation updated successfully", slog.String("operation_id", operationID))
	c.JSON(http.StatusOK, dto.ToOperationResponse(op))
}

func (h *operationHandler) deleteOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operationID := c.Param("id")

	err := h.ledgerService.DeleteOperation(c.Request.Context(), operationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Operation not found"})
		} else {
			logger.Error("Failed to delete operation", slog.String("operation_id", operationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete operation"})
		}
		return
	}

	logger.Info("Operation deleted successfully", slog.String("operation_id", operationID))
	c.Status(http.StatusNoContent)
}
