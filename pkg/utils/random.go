package utils

import (
	"crypto/rand"
	"math/big"
)

// Public ids are read aloud and typed by players, so the charset
// drops the lookalikes (0/O, 1/l/I).
const charset = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateRandomID generates a random string of length n
func GenerateRandomID(n int) string {
	b := make([]byte, n)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			// Fallback to less secure random if crypto rand fails (highly unlikely)
			return ""
		}
		b[i] = charset[num.Int64()]
	}
	return string(b)
}
