// Copyright 2013 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ope

// KeySize is the fixed length of an Ope key: an AES-128 key.
const KeySize = 16

// Key is the caller-owned secret an Ope instance is built from. Its fixed
// size makes a length check at construction unnecessary; the compiler
// enforces it.
type Key [KeySize]byte
