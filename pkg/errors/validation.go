package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// layoutNameRegex matches the characters allowed in a layout name.
var layoutNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateLayoutName validates a layout name for safety and correctness.
// Names become store keys and URL path segments, so the rules are
// conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators or traversal sequences
//   - Letters, digits, '.', '_' and '-' only, starting with a letter or digit
func ValidateLayoutName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "layout name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "layout name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "layout name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..", // Parent directory
		"/",  // Key separator
		"\\", // Backslash (Windows path)
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "layout name contains invalid characters: %q", pattern)
		}
	}

	if !layoutNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid layout name: %q", name)
	}

	return nil
}

// ValidateBounds validates the size of a layout surface.
func ValidateBounds(width, height int) error {
	const maxExtent = 1 << 16
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "layout size must be positive, got %dx%d", width, height)
	}
	if width > maxExtent || height > maxExtent {
		return New(ErrCodeInvalidInput, "layout size too large (max %d)", maxExtent)
	}
	return nil
}
