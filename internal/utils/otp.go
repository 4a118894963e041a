package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP — равномерно случайный 6-значный код, ведущие нули сохраняются.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
