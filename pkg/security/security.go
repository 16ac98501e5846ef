package security

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/obsworks/obsqueue/pkg/core"
)

// Limits.
const (
	// MaxLabelLength is the maximum length for entry labels and entry-class
	// names.
	MaxLabelLength = 255

	// MaxDetailLength is the maximum length for a stored failure detail.
	MaxDetailLength = 4096

	// MaxQueryLimit is the hard limit for history query page sizes.
	MaxQueryLimit = 1000
)

// validLabel matches alphanumeric, hyphens, underscores, and dots.
var validLabel = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_\-\.]*$`)

// ValidateLabel validates an entry label or entry-class name.
func ValidateLabel(name string) error {
	if name == "" {
		return core.ErrInvalidLabel
	}
	if len(name) > MaxLabelLength {
		return core.ErrLabelTooLong
	}
	if !validLabel.MatchString(name) {
		return core.ErrInvalidLabel
	}
	return nil
}

// SanitizeDetail truncates and sanitizes a failure detail for storage.
func SanitizeDetail(msg string) string {
	if msg == "" {
		return ""
	}

	// Remove null bytes and control characters (except newlines and tabs)
	var sanitized strings.Builder
	sanitized.Grow(len(msg))

	for _, r := range msg {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			sanitized.WriteRune(r)
		}
	}

	result := sanitized.String()

	if utf8.RuneCountInString(result) > MaxDetailLength {
		runes := []rune(result)
		result = string(runes[:MaxDetailLength-3]) + "..."
	}

	return result
}

// ClampLimit ensures a history query limit is within bounds.
func ClampLimit(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxQueryLimit {
		return MaxQueryLimit
	}
	return n
}
