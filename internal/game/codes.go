package game

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// newJoinCode returns a short human-enterable code. The alphabet drops
// characters that read ambiguously on a shared screen (0/O, 1/I).
func newJoinCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "AAAAAA"
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}

// newDisplayToken returns the opaque token addressing the read-only
// projection for one game.
func newDisplayToken() string {
	return uuid.NewString()
}
