package project

import (
	"crypto/sha256"
)

// Digest is a sha256 sum, the same shape as source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by deps. The order of deps matters;
// callers pass them in a deterministic order.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Fingerprint folds the content hashes of a set of files into one digest.
// Two versions of a program with the same fingerprint check the same.
func Fingerprint(files []Digest) Digest {
	if len(files) == 0 {
		return Digest{}
	}
	return Combine(files[0], files[1:]...)
}
