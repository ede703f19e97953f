// Package utils provides utility functions for filename sanitization, UUID
// generation and document digests.
//
// Functions:
//   - SanitizeFilename: Returns a safe filename for storage or download.
//     Input: string (filename)
//     Output: string (sanitized filename)
//   - GenerateUUID: Returns a new UUID string.
//     Output: string (UUID)
//   - Digest: Returns the hex SHA3-256 of a byte slice.
//     Output: string (64 hex characters, empty for nil input)
//
// Used throughout the backend for safe file handling, unique IDs and ETags.
package utils

import (
	"encoding/hex"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	safe := unsafeChars.ReplaceAllString(base, "_")
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return safe
}

func GenerateUUID() string {
	return uuid.New().String()
}

func Digest(data []byte) string {
	if data == nil {
		return ""
	}
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
