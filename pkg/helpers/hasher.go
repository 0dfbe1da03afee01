package helpers

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// Hasher derives a deterministic one-way digest from a plaintext password.
// The same plaintext always yields the same digest for a given secret, so
// login can compare digests directly. Iteration count and key length are
// fixed configuration, not per-call parameters.
type Hasher struct {
	secret []byte
}

const (
	hashIterations = 1000
	hashKeyLen     = 64
)

func NewHasher(secret string) *Hasher {
	return &Hasher{secret: []byte(secret)}
}

// Hash returns the hex-encoded PBKDF2-SHA512 digest of plain.
func (h *Hasher) Hash(plain string) string {
	key := pbkdf2.Key([]byte(plain), h.secret, hashIterations, hashKeyLen, sha512.New)
	return hex.EncodeToString(key)
}

// Compare reports whether plain hashes to digest, in constant time.
func (h *Hasher) Compare(digest, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(digest), []byte(h.Hash(plain))) == 1
}
