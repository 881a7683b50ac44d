package common

import (
	"crypto/rand"
	"crypto/subtle"
)

// GenerateRandByteArray returns size bytes read from crypto/rand, which
// does not fail on supported platforms.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	_, _ = rand.Read(b)
	return b
}

// WipeByteArray overwrites b with zeros. It is used for passwords and key
// material before the last reference to them is dropped.
//
// subtle.ConstantTimeCopy keeps the compiler from eliding the write.
// A nil or empty slice is a no-op.
func WipeByteArray(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}
