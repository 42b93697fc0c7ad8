// Copyright 2013 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ctrrand implements the keyed, counter-driven pseudo-random byte
// stream the OPE scheme uses to seed its hypergeometric draws. It is an
// AES-128 block cipher run in an unusual counter discipline: the 16-byte
// counter is incremented *before* each block is encrypted, not after, so
// that the stream is a pure function of (key, initial counter) and the
// all-zero initial counter value is never itself used as keystream input.
package ctrrand

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/maruel/ope/internal/primitives"
)

// BlockSize is the AES-128 block size and the width of the counter.
const BlockSize = primitives.Size

// Stream is a keyed, counter-seeded pseudo-random byte generator. It is not
// safe for concurrent use; callers that need independent streams construct
// one Stream per goroutine.
type Stream struct {
	ctr    counter
	cipher cipher.Block
	temp   [BlockSize]byte
}

// New constructs a Stream keyed by key (must be 16 bytes, an AES-128 key)
// with its counter starting at all zeros.
func New(key []byte) *Stream {
	c, err := aes.NewCipher(key)
	if err != nil {
		// Only possible error is a bad key size; that is caller misuse.
		panic(err)
	}
	return &Stream{
		ctr:    make(counter, BlockSize),
		cipher: c,
	}
}

// SetCounter overwrites the internal counter, injecting a deterministic
// seed for the next sequence of draws.
func (s *Stream) SetCounter(v [BlockSize]byte) {
	copy(s.ctr, v[:])
}

// ReadBytes fills buf with pseudo-random bytes derived from the current
// counter and key.
func (s *Stream) ReadBytes(buf []byte) {
	full := len(buf) / BlockSize
	for i := 0; i < full; i++ {
		s.ctr.incr()
		b := i * BlockSize
		s.cipher.Encrypt(buf[b:b+BlockSize], s.ctr)
	}
	if rem := len(buf) % BlockSize; rem != 0 {
		s.ctr.incr()
		s.cipher.Encrypt(s.temp[:], s.ctr)
		copy(buf[full*BlockSize:], s.temp[:])
	}
}

// RandIntMod returns a uniform integer in [0, max), drawing ceil(log2(max))
// bytes (NumBits(max-1)) and reducing modulo max. This accepts modulo bias: the caller
// (HGD) does not require strict bit-level uniformity, and reproducibility
// across implementations requires this exact byte count, not a
// rejection-sampled unbiased draw.
func (s *Stream) RandIntMod(max uint64) uint64 {
	if max == 0 {
		return 0
	}
	buf := make([]byte, primitives.NumBits(max-1))
	s.ReadBytes(buf)
	return primitives.UintFromBE(buf) % max
}
