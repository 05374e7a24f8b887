// File: internal/services/otp/generator.go
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeMin  = 100000
	codeSpan = 900000
)

// GenerateCode draws a 6-digit code uniformly from [100000, 999999]. The
// lower bound keeps the rendered string at exactly six digits with no
// leading-zero handling.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generating code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+codeMin), nil
}
