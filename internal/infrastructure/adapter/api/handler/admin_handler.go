package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	adminUseCase "github.com/amirhossein-jamali/shift-monitor/internal/domain/usecase/admin"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles administrative override HTTP requests
type AdminHandler struct {
	adminService *adminUseCase.Service
	logger       coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(adminService *adminUseCase.Service, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// ForceRelease handles the DELETE /admin/reservations endpoint
func (h *AdminHandler) ForceRelease(c *gin.Context) {
	var req dto.ForceReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	key, err := entity.NewSlotKey(req.PortfolioID, *req.Hour)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	if _, err := h.adminService.ForceRelease(c.Request.Context(), key, req.Actor); err != nil {
		if errors.Is(err, domainerr.ErrInvalidOwnerName) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(err),
				Message: "Actor name cannot be empty",
			})
			return
		}
		h.logger.Error("Force release failed", map[string]any{
			"portfolio_id": req.PortfolioID,
			"actor":        req.Actor,
			"error":        err.Error(),
		})
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Reservation store unavailable",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListAudit handles the GET /admin/audit endpoint
func (h *AdminHandler) ListAudit(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.adminService.ListAudit(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Error listing audit entries", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Reservation store unavailable",
		})
		return
	}

	responses := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, dto.AuditEntryResponse{
			ID:          e.ID,
			Actor:       e.Actor,
			Action:      e.Action,
			PortfolioID: e.PortfolioID,
			Hour:        e.Hour,
			Detail:      e.Detail,
			CreatedAt:   e.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, responses)
}
