// ABOUTME: Label compressor that maps arbitrary strings to fixed-size BLAKE2b hex digests.
// ABOUTME: Bounds label growth across WL rounds; the same primitive produces the final graph hash.
package wl

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest size bounds supported by BLAKE2b.
const (
	MinDigestSize = 1
	MaxDigestSize = blake2b.Size
)

// ValidateDigestSize returns a *DigestSizeError when size cannot be produced
// by the underlying hash.
func ValidateDigestSize(size int) error {
	if size < MinDigestSize || size > MaxDigestSize {
		return &DigestSizeError{Size: size}
	}
	return nil
}

// Compress hashes label with unkeyed BLAKE2b configured for digestSize output
// bytes and returns the lowercase hex encoding (2*digestSize characters).
func Compress(label string, digestSize int) (string, error) {
	if err := ValidateDigestSize(digestSize); err != nil {
		return "", err
	}
	h, err := blake2b.New(digestSize, nil)
	if err != nil {
		return "", &DigestSizeError{Size: digestSize}
	}
	h.Write([]byte(label))
	return hex.EncodeToString(h.Sum(nil)), nil
}
