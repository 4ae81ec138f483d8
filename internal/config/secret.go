package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("config: generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
