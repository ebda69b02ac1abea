package usecase

import (
	"crypto/rand"
	"strings"
)

// Alphabet for challenge codes. Visually ambiguous characters (I, O, 0, 1)
// are excluded; 32 characters so a random byte maps uniformly via modulo.
const challengeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const challengeLength = 4

func newChallengeCode() string {
	buf := make([]byte, challengeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in a bad state anyway
		panic(err)
	}
	for i, b := range buf {
		buf[i] = challengeAlphabet[int(b)%len(challengeAlphabet)]
	}
	return string(buf)
}

// challengeMatches compares user input against the code, ignoring case and
// surrounding whitespace.
func challengeMatches(code, input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(code))
}
