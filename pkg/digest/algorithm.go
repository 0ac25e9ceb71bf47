package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
)

// Algorithm selects the hash function used for content digests.
// The digest is only ever compared within a single run, never persisted,
// so any collision-resistant function satisfies the contract. MD5 is
// faster, SHA-256 is the safer default.
type Algorithm string

const (
	// MD5 selects the MD5 hash (fast, weakest)
	MD5 Algorithm = "md5"
	// SHA1 selects the SHA-1 hash
	SHA1 Algorithm = "sha1"
	// SHA256 selects the SHA-256 hash (default)
	SHA256 Algorithm = "sha256"
)

// ParseAlgorithm parses an algorithm name
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case MD5, SHA1, SHA256:
		return Algorithm(s), nil
	case "":
		return SHA256, nil
	default:
		return "", fmt.Errorf("unsupported digest algorithm: %s (use: md5, sha1, sha256)", s)
	}
}

// New returns a fresh hash state for the algorithm
func (a Algorithm) New() hash.Hash {
	switch a {
	case MD5:
		return md5.New()
	case SHA1:
		return sha1.New()
	default:
		return sha256.New()
	}
}
