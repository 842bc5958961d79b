package testutil

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// RandomIntString generates a random positive integer string with the given
// number of digits and no leading zero, mimicking on-chain token amounts
// that exceed the float64 safe-integer range.
func RandomIntString(digits int) (string, error) {
	const charset = "0123456789"

	if digits <= 0 {
		return "", fmt.Errorf("digits must be greater than 0")
	}

	randomString := make([]byte, digits)
	for i := range randomString {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		randomString[i] = charset[num.Int64()]
	}
	// avoid a leading zero so the string round-trips through big.Int intact
	if randomString[0] == '0' {
		randomString[0] = '1'
	}

	return string(randomString), nil
}
