package dto

import "time"

// ForceReleaseRequest is the body for DELETE /admin/reservations
type ForceReleaseRequest struct {
	PortfolioID uint64 `json:"portfolioId" binding:"required"`
	Hour        *int   `json:"hour" binding:"required"`
	Actor       string `json:"actor" binding:"required"`
}

// AuditEntryResponse represents one administrative audit entry
type AuditEntryResponse struct {
	ID          uint64    `json:"id"`
	Actor       string    `json:"actor"`
	Action      string    `json:"action"`
	PortfolioID uint64    `json:"portfolioId"`
	Hour        int       `json:"hour"`
	Detail      string    `json:"detail"`
	CreatedAt   time.Time `json:"createdAt"`
}
