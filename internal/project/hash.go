package project

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine hashes content followed by parts, each length-prefixed so that
// ("ab","c") and ("a","bc") differ. Cache keys are built this way.
func Combine(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	var n []byte
	for _, p := range parts {
		n = binary.AppendUvarint(n[:0], uint64(len(p)))
		_, _ = h.Write(n)
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
