// Package domain contains the core types of the parse pipeline.
package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// NormalizedKey is the canonical form of raw input used as cache identity.
// It is case-folded with all internal whitespace collapsed to single spaces.
type NormalizedKey string

// Normalize derives the canonical comparison key from raw input.
// It is a pure function: lower-case, trim, collapse whitespace.
// Empty or non-UTF-8 input is rejected with ErrInvalidInput.
func Normalize(raw string) (NormalizedKey, error) {
	if !utf8.ValidString(raw) {
		return "", zerr.Wrap(ErrInvalidInput, "input is not valid UTF-8")
	}
	fields := strings.Fields(strings.ToLower(raw))
	if len(fields) == 0 {
		return "", zerr.Wrap(ErrInvalidInput, "input is empty")
	}
	return NormalizedKey(strings.Join(fields, " ")), nil
}

// String returns the key as a plain string.
func (k NormalizedKey) String() string {
	return string(k)
}

// Fingerprint returns the xxhash64 of the key. Used for compact logging
// and as a dedup column in the task store; cache identity is the key itself.
func (k NormalizedKey) Fingerprint() uint64 {
	return xxhash.Sum64String(string(k))
}
