package mypubsub

import "crypto/sha256"

func checksum(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return sum[:8]
}
