// utils/respond.go
package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/gin-gonic/gin"
)

// RespondWithError sends a JSON error body with the given status code
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

const randomChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns a random alphanumeric string of length n,
// used as the suffix of invoice numbers
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(randomChars))))
		if err != nil {
			panic("failed to generate random string")
		}
		b[i] = randomChars[idx.Int64()]
	}
	return string(b)
}
