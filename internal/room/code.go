package room

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
)

const (
	// codeLength is the length of suggested room codes
	codeLength = 6

	// codeChars excludes characters that read ambiguously on a shared screen
	codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateCode creates a random room code.
func GenerateCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(codeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = codeChars[rand.Intn(len(codeChars))]
			continue
		}
		code[i] = codeChars[n.Int64()]
	}
	return string(code)
}

// UniqueCode generates a room code not currently in use.
func (r *Registry) UniqueCode() string {
	for {
		code := GenerateCode()
		if !r.Exists(code) {
			return code
		}
	}
}
