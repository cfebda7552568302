// Package codes generates the short numeric codes shown next to captured
// photos so guests can pull them up on their own devices.
package codes

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the number of decimal digits in a share code.
const Length = 6

// New returns a random share code of Length decimal digits, zero-padded.
func New() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < Length; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generating share code: %w", err)
	}

	return fmt.Sprintf("%0*d", Length, n), nil
}
