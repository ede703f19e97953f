package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"file.pdf", "file.pdf"},
		{"../../etc/passwd", "passwd"},
		{"my signed contract (1).pdf", "my_signed_contract__1_.pdf"},
		{strings.Repeat("a", 150) + ".pdf", strings.Repeat("a", 100)},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.input); got != tt.expected {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGenerateUUID(t *testing.T) {
	a, b := GenerateUUID(), GenerateUUID()
	if a == b {
		t.Error("Expected unique UUIDs")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("Expected valid UUID, got %q: %v", a, err)
	}
}

func TestDigest(t *testing.T) {
	// SHA3-256 of the empty string.
	want := "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"
	if got := Digest([]byte{}); got != want {
		t.Errorf("Digest(empty) = %s, want %s", got, want)
	}
	if Digest(nil) != "" {
		t.Error("Expected empty digest for nil input")
	}
	if Digest([]byte("a")) == Digest([]byte("b")) {
		t.Error("Expected different digests for different input")
	}
}
