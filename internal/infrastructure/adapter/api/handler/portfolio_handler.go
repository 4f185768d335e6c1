package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	"github.com/amirhossein-jamali/shift-monitor/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// PortfolioHandler handles catalog, completion and observation HTTP requests
type PortfolioHandler struct {
	catalogUseCase usecase.CatalogUseCase
	logger         coreport.Logger
}

// NewPortfolioHandler creates a new portfolio handler instance
func NewPortfolioHandler(catalogUseCase usecase.CatalogUseCase, logger coreport.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		catalogUseCase: catalogUseCase,
		logger:         logger,
	}
}

// List handles the GET /portfolios endpoint
func (h *PortfolioHandler) List(c *gin.Context) {
	portfolios, err := h.catalogUseCase.ListPortfolios(c.Request.Context())
	if err != nil {
		h.logger.Error("Error listing portfolios", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Reservation store unavailable",
		})
		return
	}

	responses := make([]dto.PortfolioResponse, 0, len(portfolios))
	for _, p := range portfolios {
		responses = append(responses, dto.PortfolioResponse{
			ID:     p.ID,
			Name:   p.Name,
			Active: p.Active,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// MarkCompleted handles the POST /portfolios/:portfolioId/completions endpoint
func (h *PortfolioHandler) MarkCompleted(c *gin.Context) {
	portfolioID, ok := h.portfolioIDParam(c)
	if !ok {
		return
	}

	var req dto.CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	key, err := entity.NewSlotKey(portfolioID, *req.Hour)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	if err := h.catalogUseCase.MarkCompleted(c.Request.Context(), key, req.SessionID, req.MarkedBy); err != nil {
		h.respondCatalogError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RecordObservation handles the POST /portfolios/:portfolioId/observations endpoint
func (h *PortfolioHandler) RecordObservation(c *gin.Context) {
	portfolioID, ok := h.portfolioIDParam(c)
	if !ok {
		return
	}

	var req dto.ObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	key, err := entity.NewSlotKey(portfolioID, *req.Hour)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	observation, err := h.catalogUseCase.RecordObservation(
		c.Request.Context(), key, req.SessionID, req.RecordedBy, *req.IssuePresent)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ObservationResponse{
		ID:           observation.ID,
		PortfolioID:  observation.PortfolioID,
		Hour:         observation.Hour,
		IssuePresent: observation.IssuePresent,
		RecordedBy:   observation.RecordedBy,
	})
}

// portfolioIDParam extracts and validates the :portfolioId path parameter
func (h *PortfolioHandler) portfolioIDParam(c *gin.Context) (uint64, bool) {
	idParam := c.Param("portfolioId")
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidPortfolioID,
			Message: "Invalid portfolio ID format",
		})
		return 0, false
	}
	return id, true
}

// respondCatalogError maps catalog failures to HTTP responses
func (h *PortfolioHandler) respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerr.ErrPortfolioNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Code:    domainerr.CodePortfolioNotFound,
			Message: "Portfolio not found",
		})
	case errors.Is(err, domainerr.ErrNotHolder):
		c.JSON(http.StatusLocked, dto.ErrorResponse{
			Code:    domainerr.CodeNotHolder,
			Message: "Session does not hold the slot reservation",
		})
	case errors.Is(err, domainerr.ErrHourRolledOver):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidHour,
			Message: "Hour has rolled over; refresh and work the current hour",
		})
	case errors.Is(err, domainerr.ErrInvalidOwnerName),
		errors.Is(err, domainerr.ErrInvalidSessionID),
		errors.Is(err, domainerr.ErrInvalidHour),
		errors.Is(err, domainerr.ErrInvalidPortfolioID):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
	case errors.Is(err, domainerr.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Code:    domainerr.CodeStoreUnavailable,
			Message: "Reservation store unavailable",
		})
	default:
		h.logger.Error("Catalog operation failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Internal server error",
		})
	}
}
