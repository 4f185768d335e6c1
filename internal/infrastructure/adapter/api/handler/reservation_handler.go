package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	lockUseCase "github.com/amirhossein-jamali/shift-monitor/internal/domain/usecase/lock"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ReservationHandler handles slot reservation HTTP requests
type ReservationHandler struct {
	lockService *lockUseCase.Service
	logger      coreport.Logger
}

// NewReservationHandler creates a new reservation handler instance
func NewReservationHandler(lockService *lockUseCase.Service, logger coreport.Logger) *ReservationHandler {
	return &ReservationHandler{
		lockService: lockService,
		logger:      logger,
	}
}

// Acquire handles the POST /reservations endpoint
func (h *ReservationHandler) Acquire(c *gin.Context) {
	var req dto.AcquireRequest
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

	reservation, err := h.lockService.Acquire(c.Request.Context(), key, req.OwnerName, req.SessionID)
	if err != nil {
		h.respondAcquireError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toReservationResponse(reservation))
}

// respondAcquireError maps acquisition failures to HTTP responses
func (h *ReservationHandler) respondAcquireError(c *gin.Context, err error) {
	var slotLocked *domainerr.SlotLockedError
	if errors.As(err, &slotLocked) {
		hour := slotLocked.Hour
		c.JSON(http.StatusConflict, dto.ConflictResponse{
			Code:        domainerr.CodeSlotLocked,
			Message:     "Slot is locked by another operator",
			OwnerName:   slotLocked.OwnerName,
			PortfolioID: slotLocked.PortfolioID,
			Hour:        &hour,
		})
		return
	}

	var operatorBusy *domainerr.OperatorBusyError
	if errors.As(err, &operatorBusy) {
		hour := operatorBusy.HeldHour
		c.JSON(http.StatusConflict, dto.ConflictResponse{
			Code:        domainerr.CodeOperatorBusy,
			Message:     "Finish the slot you hold before claiming another",
			PortfolioID: operatorBusy.HeldPortfolioID,
			Hour:        &hour,
		})
		return
	}

	switch {
	case errors.Is(err, domainerr.ErrSlotLocked):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Code:    domainerr.CodeSlotLocked,
			Message: "Slot is locked by another operator",
		})
	case errors.Is(err, domainerr.ErrHourRolledOver):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidHour,
			Message: "Hour has rolled over; refresh and claim the current hour",
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
		h.logger.Error("Error acquiring reservation", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Internal server error",
		})
	}
}

// Release handles the DELETE /reservations endpoint
func (h *ReservationHandler) Release(c *gin.Context) {
	var req dto.ReleaseRequest
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

	if err := h.lockService.Release(c.Request.Context(), key, req.SessionID); err != nil {
		if errors.Is(err, domainerr.ErrInvalidSessionID) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(err),
				Message: err.Error(),
			})
			return
		}
		h.logger.Error("Error releasing reservation", map[string]any{
			"portfolio_id": req.PortfolioID,
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

// ListLive handles the GET /reservations?hour=n endpoint
func (h *ReservationHandler) ListLive(c *gin.Context) {
	hourParam := c.DefaultQuery("hour", strconv.Itoa(h.lockService.CurrentHour()))
	hour, err := strconv.Atoi(hourParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidHour,
			Message: "Invalid hour format",
		})
		return
	}

	reservations, err := h.lockService.ListLive(c.Request.Context(), hour)
	if err != nil {
		if errors.Is(err, domainerr.ErrInvalidHour) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.CodeInvalidHour,
				Message: err.Error(),
			})
			return
		}
		h.logger.Error("Error listing reservations", map[string]any{
			"hour":  hour,
			"error": err.Error(),
		})
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Reservation store unavailable",
		})
		return
	}

	responses := make([]dto.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		responses = append(responses, toReservationResponse(&reservations[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// toReservationResponse converts a domain reservation to its API view
func toReservationResponse(r *entity.Reservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:          r.ID,
		PortfolioID: r.PortfolioID,
		Hour:        r.Hour,
		OwnerName:   r.OwnerName,
		SessionID:   r.SessionID,
		AcquiredAt:  r.AcquiredAt,
		ExpiresAt:   r.ExpiresAt,
	}
}
