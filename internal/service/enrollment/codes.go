package enrollment

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeSpace is the number of possible verification codes (000000–999999).
var codeSpace = big.NewInt(1000000)

// generateCode returns a uniformly random 6-digit verification code,
// zero-padded so "004217" is as likely as "994217".
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// validCodeFormat reports whether the submitted code is exactly 6 ASCII
// digits. Checked locally before any challenge lookup.
func validCodeFormat(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
