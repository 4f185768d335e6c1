package handler

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	"github.com/amirhossein-jamali/shift-monitor/internal/domain/usecase/lock"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// SessionHandler issues opaque session tokens to dashboard clients
type SessionHandler struct {
	logger coreport.Logger
}

// NewSessionHandler creates a new session handler instance
func NewSessionHandler(logger coreport.Logger) *SessionHandler {
	return &SessionHandler{logger: logger}
}

// CreateSession handles the POST /session endpoint
func (h *SessionHandler) CreateSession(c *gin.Context) {
	sessionID, err := lock.NewSessionID()
	if err != nil {
		h.logger.Error("Failed to generate session ID", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
			Message: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusCreated, dto.SessionResponse{SessionID: sessionID})
}
