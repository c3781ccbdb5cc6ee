// Package common provides small helpers shared by the MedMate client packages.
package common

import "crypto/rand"

// WipeByteArray overwrites b with zeros. Used for password buffers once they
// have been handed to the gateway. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// GenerateRandByteArray returns size bytes from crypto/rand.
// It panics if the system random source fails.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
