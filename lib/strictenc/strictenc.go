// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package strictenc provides strict UTF-8 transcoding: invalid input
// is an error, never silently substituted with U+FFFD. Buffers
// carrying key material or tokens must round-trip exactly; a
// replacement character slipping into a secret is a corruption bug
// the default lenient conversions would hide.
package strictenc

import (
	"errors"
	"unicode/utf8"
)

// ErrInvalidEncoding reports input that is not well-formed UTF-8.
var ErrInvalidEncoding = errors.New("strictenc: invalid UTF-8")

// Encode converts s to bytes, failing on any malformed sequence
// (Go strings can carry arbitrary bytes; this refuses the invalid
// ones instead of substituting).
func Encode(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, ErrInvalidEncoding
	}
	return []byte(s), nil
}

// Decode converts b to a string, failing on any malformed sequence.
func Decode(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrInvalidEncoding
	}
	return string(b), nil
}
