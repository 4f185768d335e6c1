package dto

// SessionResponse carries a freshly issued operator session token
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}
