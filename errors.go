// Copyright 2013 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ope

import "errors"

// ErrHgdInvalidInputs is returned when the HGD sampler is asked to draw more
// elements than the urn holds. This cannot happen from a well-formed
// Encrypt/Decrypt call; it would indicate a corrupted recursion state. The
// error returned in that case wraps ErrHgdInvalidInputs and carries the
// message of the internal/hgd package's own ErrInvalidInputs as text; it
// does not wrap that internal error.
var ErrHgdInvalidInputs = errors.New("ope: hgd received invalid inputs")

// ErrOpeRange is returned when, at some recursion node, the remaining range
// is smaller than the remaining domain. The most common cause is a
// mis-configured Ope where the range upper bound is smaller than the domain
// upper bound.
var ErrOpeRange = errors.New("ope: range is smaller than domain")
