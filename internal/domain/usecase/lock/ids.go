package lock

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewSessionID generates the opaque client session token. A browser session
// requests one once and persists it locally; it distinguishes two operators
// sharing a display name and two tabs of the same operator.
func NewSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
