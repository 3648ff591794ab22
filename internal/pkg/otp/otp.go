package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generate returns a numeric one-time code of the given length, drawn from
// crypto/rand. Lengths outside 4..10 fall back to 6 digits.
func Generate(length int) (string, error) {
	if length < 4 || length > 10 {
		length = 6
	}
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate otp: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
