package sharing

import (
	"crypto/rand"
	"math/big"
)

const passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultPasswordLength matches the secret length the share dialog has
// always generated.
const DefaultPasswordLength = 8

// GeneratePassword produces a random alphanumeric shared secret of n
// characters (DefaultPasswordLength if n <= 0). The password is an opaque
// bearer-style string granting future edit access to a shared notebook; it
// is not a vetted authentication scheme and is stored and transmitted
// as-is.
func GeneratePassword(n int) string {
	if n <= 0 {
		n = DefaultPasswordLength
	}
	out := make([]byte, n)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken.
			panic("sharing: random source unavailable: " + err.Error())
		}
		out[i] = passwordCharset[idx.Int64()]
	}
	return string(out)
}
