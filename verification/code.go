package verification

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// GenerateCode returns a fresh 6-digit decimal code in [100000, 999999].
// The range itself guarantees the length, so no padding is needed. A new
// code must be drawn for every registration attempt.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
