package sharing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		p := GeneratePassword(0)
		assert.Len(t, p, DefaultPasswordLength)
		for _, r := range p {
			assert.True(t, strings.ContainsRune(passwordCharset, r), "unexpected rune %q", r)
		}
		seen[p] = true
	}
	// 32 draws from a 62^8 space colliding would mean a broken generator.
	assert.Greater(t, len(seen), 1)

	assert.Len(t, GeneratePassword(16), 16)
}
