package dto

// PortfolioResponse represents one entry of the monitored catalog
type PortfolioResponse struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// CompletionRequest is the body for POST /portfolios/:portfolioId/completions
type CompletionRequest struct {
	Hour      *int   `json:"hour" binding:"required"`
	SessionID string `json:"sessionId" binding:"required"`
	MarkedBy  string `json:"markedBy" binding:"required"`
}

// ObservationRequest is the body for POST /portfolios/:portfolioId/observations
type ObservationRequest struct {
	Hour         *int   `json:"hour" binding:"required"`
	SessionID    string `json:"sessionId" binding:"required"`
	RecordedBy   string `json:"recordedBy" binding:"required"`
	IssuePresent *bool  `json:"issuePresent" binding:"required"`
}

// ObservationResponse represents one recorded observation
type ObservationResponse struct {
	ID           uint64 `json:"id"`
	PortfolioID  uint64 `json:"portfolioId"`
	Hour         int    `json:"hour"`
	IssuePresent bool   `json:"issuePresent"`
	RecordedBy   string `json:"recordedBy"`
}
