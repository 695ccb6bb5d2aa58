package code

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// New generates a 6-character uppercase hexadecimal verification code from
// 3 bytes of cryptographically secure randomness. Each call is independent.
func New() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}
