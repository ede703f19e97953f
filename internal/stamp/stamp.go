// Package stamp builds the text that gets burned into a page: date stamps,
// the "Signed ..." caption drawn under signatures, and user-typed text.
package stamp

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// DateLayout renders as M/D/YYYY, e.g. 3/7/2025.
	DateLayout = "1/2/2006"
	// SignedLayout renders as M/D/YYYY HH:mm:ss ZZ, e.g. 3/7/2025 14:05:09 +0100.
	SignedLayout = "1/2/2006 15:04:05 -0700"

	maxTextLen = 500
)

var (
	ErrEmptyText   = errors.New("stamp: text is empty")
	ErrTextTooLong = errors.New("stamp: text is too long")
)

// Date returns the plain date stamp for t.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// Signed returns the caption drawn below a signature.
func Signed(t time.Time) string {
	return "Signed " + t.Format(SignedLayout)
}

// Normalize cleans user-typed text for stamping: NFC form, line breaks and
// other control characters collapsed to spaces, surrounding space trimmed.
func Normalize(text string) (string, error) {
	s := norm.NFC.String(text)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyText
	}
	if len([]rune(s)) > maxTextLen {
		return "", ErrTextTooLong
	}
	return s, nil
}
