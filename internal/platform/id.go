package platform

import (
	"crypto/rand"

	"github.com/google/uuid"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// tokenLength keeps prefixed tokens within ACM's 32 character idempotency
// token limit.
const tokenLength = 16

// NewID returns a random UUID string.
func NewID() string {
	return uuid.New().String()
}

// NewToken returns prefix followed by random lowercase alphanumerics.
func NewToken(prefix string) string {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	for i := range b {
		b[i] = tokenAlphabet[b[i]%byte(len(tokenAlphabet))]
	}
	return prefix + string(b)
}

// WorkflowID builds a workflow ID from a kind and a random suffix.
func WorkflowID(kind string) string {
	return kind + "-" + NewID()
}
