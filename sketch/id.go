package sketch

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID returns a random node or document identifier.
//
// IDs come from a crypto-sourced UUID when the system random source is
// available, otherwise from a short low-collision fallback ("node-xxxxxxxx").
// They are not guaranteed unique across documents or repeated parses.
func NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fallbackID()
	}
	return id.String()
}

func fallbackID() string {
	buf := make([]byte, 8)
	for i := range buf {
		buf[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return "node-" + string(buf)
}
