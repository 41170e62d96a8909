// Package textutil holds input sanitization and the content fingerprint used
// as the cache key for task deduplication.
package textutil

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"
)

// MaxInputLength bounds accepted task input, matching the transport-level
// limit.
const MaxInputLength = 5000

var (
	ErrEmptyInput   = errors.New("textutil: input is empty")
	ErrInputTooLong = errors.New("textutil: input exceeds maximum length")
)

// Sanitize normalizes free-text input: control characters other than newline
// and tab are dropped, carriage returns are folded into newlines, and
// surrounding whitespace is trimmed. Empty or oversized input is rejected
// before anything is persisted.
func Sanitize(input string) (string, error) {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case r == '\r':
			b.WriteRune('\n')
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}

	sanitized := strings.TrimSpace(b.String())
	if sanitized == "" {
		return "", ErrEmptyInput
	}
	if len(sanitized) > MaxInputLength {
		return "", ErrInputTooLong
	}
	return sanitized, nil
}

// Fingerprint returns the deterministic content hash of sanitized input text.
// It deliberately covers the text alone, not the owner or metadata: identical
// input from different users shares one cache entry.
func Fingerprint(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
