// Copyright 2013 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package primitives wraps the block-cipher-adjacent primitives the OPE
// scheme treats as black boxes: SHA-256 and HMAC-SHA-256 truncated to 16
// bytes, bit-length, and big-endian decoding.
package primitives

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Size is the truncated digest length used throughout the scheme; it
// doubles as the AES-128 block size.
const Size = 16

// Sha256Sum16 returns the first 16 bytes of SHA-256(v).
func Sha256Sum16(v []byte) [Size]byte {
	h := sha256.New()
	if _, err := h.Write(v); err != nil {
		panic("primitives: unexpected hash write failure")
	}
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HmacSha256Sum16 returns the first 16 bytes of HMAC-SHA-256(v, key).
func HmacSha256Sum16(v, key []byte) [Size]byte {
	mac := hmac.New(sha256.New, key)
	if _, err := mac.Write(v); err != nil {
		panic("primitives: unexpected hash write failure")
	}
	var out [Size]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// NumBits returns the minimum number of bits needed to represent n, 0 for
// n == 0.
func NumBits(n uint64) uint {
	var bits uint
	for n > 0 {
		bits++
		n >>= 1
	}
	return bits
}

// UintFromBE decodes b as a big-endian unsigned integer. b may be longer
// than 8 bytes; bits beyond the low 64 are dropped, which only matters for
// callers that intentionally over-read (see internal/ctrrand.RandIntMod).
func UintFromBE(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
