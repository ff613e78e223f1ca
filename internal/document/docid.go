package document

import (
	"math/rand"
)

// IDLength is the fixed length of a generated document id.
const IDLength = 10

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewDocumentID returns a random candidate id of IDLength letters. Uniqueness
// against the store is the caller's job; candidates collide with probability
// ~n/52^10 so retries are effectively never needed in practice.
func NewDocumentID() string {
	b := make([]byte, IDLength)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}
