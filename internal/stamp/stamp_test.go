package stamp

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	ts := time.Date(2025, time.March, 7, 14, 5, 9, 0, time.UTC)
	if got := Date(ts); got != "3/7/2025" {
		t.Errorf("Expected '3/7/2025', got '%s'", got)
	}
}

func TestSigned(t *testing.T) {
	zone := time.FixedZone("CET", 3600)
	ts := time.Date(2025, time.November, 21, 9, 30, 0, 0, zone)
	want := "Signed 11/21/2025 09:30:00 +0100"
	if got := Signed(ts); got != want {
		t.Errorf("Expected '%s', got '%s'", want, got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		err      error
	}{
		{"  hello  ", "hello", nil},
		{"line\nbreak", "line break", nil},
		{"cafe\u0301", "caf\u00e9", nil},
		{"", "", ErrEmptyText},
		{" \t\n", "", ErrEmptyText},
		{strings.Repeat("x", maxTextLen+1), "", ErrTextTooLong},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.input)
		if !errors.Is(err, tt.err) {
			t.Errorf("Normalize(%q) error = %v, want %v", tt.input, err, tt.err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
