package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит составной хеш: H( base || part1 || part2 ... ).
// Порядок частей должен быть детерминированным.
func Combine(base Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(base[:])
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
