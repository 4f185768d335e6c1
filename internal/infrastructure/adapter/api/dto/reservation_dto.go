package dto

import "time"

// AcquireRequest is the body for POST /reservations
type AcquireRequest struct {
	PortfolioID uint64 `json:"portfolioId" binding:"required"`
	Hour        *int   `json:"hour" binding:"required"`
	OwnerName   string `json:"ownerName" binding:"required"`
	SessionID   string `json:"sessionId" binding:"required"`
}

// ReleaseRequest is the body for DELETE /reservations
type ReleaseRequest struct {
	PortfolioID uint64 `json:"portfolioId" binding:"required"`
	Hour        *int   `json:"hour" binding:"required"`
	SessionID   string `json:"sessionId" binding:"required"`
}

// ReservationResponse represents one live reservation
type ReservationResponse struct {
	ID          uint64    `json:"id"`
	PortfolioID uint64    `json:"portfolioId"`
	Hour        int       `json:"hour"`
	OwnerName   string    `json:"ownerName"`
	SessionID   string    `json:"sessionId"`
	AcquiredAt  time.Time `json:"acquiredAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ConflictResponse reports who holds a contested slot
type ConflictResponse struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	OwnerName   string `json:"ownerName,omitempty"`
	PortfolioID uint64 `json:"portfolioId,omitempty"`
	Hour        *int   `json:"hour,omitempty"`
}
