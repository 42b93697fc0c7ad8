// Copyright 2013 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package keyderiv turns a caller-supplied passphrase into a 16-byte key
// suitable for ope.New. It is a convenience adapter, not a key-management
// policy surface: the iteration count and hash are fixed, matching how
// kcptun derives its own pre-shared session key via pbkdf2.Key before
// handing it to a cipher constructor.
package keyderiv

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"github.com/maruel/ope"
	"github.com/maruel/ope/internal/primitives"
)

// iterations is fixed rather than configurable: this package hands out a
// fixed-length key for a fixed-length secret, not a tunable KDF.
const iterations = 4096

// DeriveKey derives an ope.Key from secret and salt via PBKDF2-HMAC-SHA256.
// The same (secret, salt) pair always yields the same key.
func DeriveKey(secret, salt []byte) ope.Key {
	derived := pbkdf2.Key(secret, salt, iterations, primitives.Size, sha256.New)
	var key ope.Key
	copy(key[:], derived)
	return key
}
