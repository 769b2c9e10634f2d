package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateConnectionID returns a short random id used to tell websocket
// connections apart in logs and in the connection registry.
func GenerateConnectionID() (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate connection ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
