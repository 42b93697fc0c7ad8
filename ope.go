// Copyright 2013 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ope implements an order-preserving encryption scheme: it maps
// plaintext integers from a domain [0, D] to ciphertext integers in a
// range [0, R] such that x < y implies Enc(x) < Enc(y). This enables range
// queries and ordering comparisons over ciphertexts held by an untrusted
// storage tier.
//
// The scheme is a lazy binary-search sampler over the domain/range tree:
// every recursion node derives a deterministic seed from the key and the
// node's bounds, draws a hypergeometric variate to learn how many domain
// points fall in the left half of the range, and recurses toward the
// query. See internal/hgd for the variate generator and internal/ctrrand
// for the keyed byte stream that drives it.
package ope

import (
	"fmt"
	"math"
	"strconv"

	"github.com/maruel/ope/internal/ctrrand"
	"github.com/maruel/ope/internal/hgd"
	"github.com/maruel/ope/internal/primitives"
)

// Default profile, matching the package's canonical entry point GetOpe:
// D = 2^16 - 2, R = 2^32 - 2.
const (
	defaultDomainUpper = 1<<16 - 2
	defaultRangeUpper  = 1<<32 - 2
)

// Ope is an immutable order-preserving encryption instance. It is safe for
// concurrent use: every Encrypt/Decrypt call allocates its own transient
// ctrrand.Stream, so no state is shared across calls beyond the read-only
// key and bounds.
type Ope struct {
	key         Key
	domainUpper uint64
	rangeUpper  uint64
}

// New constructs an Ope over the domain [0, domainUpper] and range
// [0, rangeUpper]. Construction always succeeds, even if rangeUpper is not
// large enough for domainUpper; that misconfiguration surfaces as
// ErrOpeRange from Encrypt/Decrypt instead, since the only way to detect it
// is to walk the recursion.
func New(key Key, domainUpper, rangeUpper uint64) (*Ope, error) {
	return &Ope{key: key, domainUpper: domainUpper, rangeUpper: rangeUpper}, nil
}

// NewFromBits constructs an Ope from bit-widths rather than literal upper
// bounds: domain D = 2^domainBits, range R = 2^rangeBits.
func NewFromBits(key Key, domainBits, rangeBits uint) (*Ope, error) {
	return New(key, uint64(1)<<domainBits, uint64(1)<<rangeBits)
}

// NewWide constructs an Ope using the alternative profile D = 2^32,
// R = 2^64. Because the range upper bound 2^64 overflows uint64, the
// largest representable range upper bound, math.MaxUint64 (2^64 - 1), is
// used instead; this shortens the range by exactly one point out of 2^64,
// which has no practical effect since no caller can address that last
// fencepost through a uint64 ciphertext anyway. See DESIGN.md open
// question 4.
func NewWide(key Key) (*Ope, error) {
	return New(key, uint64(1)<<32, math.MaxUint64)
}

// GetOpe is the convenience constructor for the default profile
// (D = 2^16 - 2, R = 2^32 - 2), compatible with the library's canonical
// entry point.
func GetOpe(key Key) (*Ope, error) {
	return New(key, defaultDomainUpper, defaultRangeUpper)
}

// cell is the unique domain index and its corresponding closed range
// interval found at a search leaf.
type cell struct {
	d, rLo, rHi uint64
}

// search descends the domain/range tree toward query, returning the leaf
// cell that contains it. query is interpreted as a plaintext by Encrypt and
// as a ciphertext by Decrypt; the same recursion correctly navigates both
// because the range bisection mirrors the domain bisection.
func (o *Ope) search(query uint64) (cell, error) {
	dLo, dHi := uint64(0), o.domainUpper
	rLo, rHi := uint64(0), o.rangeUpper

	stream := ctrrand.New(o.key[:])

	for {
		ndomain := intervalSize(dLo, dHi)
		nrange := intervalSize(rLo, rHi)

		if nrange < ndomain {
			return cell{}, ErrOpeRange
		}
		if ndomain == 1 {
			return cell{d: dLo, rLo: rLo, rHi: rHi}, nil
		}

		// Deterministically reset the PRNG counter, regardless of whether
		// the previous recursion level used it for HGD or not.
		seed := primitives.HmacSha256Sum16(seedBytes(dLo, dHi, rLo, rHi), o.key[:])
		stream.SetCounter(seed)

		rgap := nrange / 2
		dgap, err := hgd.Sample(rgap, ndomain, nrange-ndomain, stream)
		if err != nil {
			return cell{}, fmt.Errorf("%w: %v", ErrHgdInvalidInputs, err)
		}

		if query < dLo+dgap {
			dHi = dLo + dgap - 1
			rHi = rLo + rgap - 1
		} else {
			dLo += dgap
			rLo += rgap
		}
	}
}

// seedBytes formats the canonical, bit-exact HMAC seed input for a
// recursion node: the four bounds as ASCII decimal, joined by '/'. This
// format is load-bearing for cross-implementation reproducibility and must
// never be replaced by a binary encoding.
func seedBytes(dLo, dHi, rLo, rHi uint64) []byte {
	return []byte(fmt.Sprintf("%d/%d/%d/%d", dLo, dHi, rLo, rHi))
}

// intervalSize returns the count of integers in the closed interval
// [lo, hi]. The naive hi-lo+1 overflows uint64 for the single interval
// whose true size is 2^64, namely [0, math.MaxUint64] (reachable from
// NewWide's range upper bound): hi-lo is math.MaxUint64 there, and adding 1
// wraps to 0. That one interval's size is reported as math.MaxUint64
// instead, the same one-point-short stand-in NewWide already accepts for
// its range upper bound, so no cell can observe an inconsistency between
// the bound and the size computed from it.
func intervalSize(lo, hi uint64) uint64 {
	diff := hi - lo
	if diff == math.MaxUint64 {
		return math.MaxUint64
	}
	return diff + 1
}

// Encrypt returns the ciphertext for ptext. It is a pure function of
// (key, ptext): the same leaf cell is reached for every occurrence of the
// same plaintext, and the per-plaintext seed below is itself deterministic.
func (o *Ope) Encrypt(ptext uint64) (uint64, error) {
	c, err := o.search(ptext)
	if err != nil {
		return 0, err
	}

	seed := primitives.Sha256Sum16([]byte(strconv.FormatUint(ptext, 10)))
	stream := ctrrand.New(o.key[:])
	stream.SetCounter(seed)

	nrange := intervalSize(c.rLo, c.rHi)
	return c.rLo + stream.RandIntMod(nrange), nil
}

// Decrypt returns the plaintext for ctext.
func (o *Ope) Decrypt(ctext uint64) (uint64, error) {
	c, err := o.search(ctext)
	if err != nil {
		return 0, err
	}
	return c.d, nil
}
