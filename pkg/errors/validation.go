package errors

import (
	"strings"
	"unicode"
)

const (
	maxPackageNameLength = 256
	maxOwnerLength       = 128
)

// ValidatePackageName validates a pak name taken from a request path.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
//
// Registry naming rules (lowercase, hyphens) are not enforced here: unknown
// names still get a placeholder card.
func ValidatePackageName(name string) error {
	return validateSegment(ErrCodeInvalidPackage, "package name", name, maxPackageNameLength)
}

// ValidateOwner validates an owner (account) name taken from a request path.
// The rules match [ValidatePackageName] with a shorter length limit.
func ValidateOwner(owner string) error {
	return validateSegment(ErrCodeInvalidOwner, "owner", owner, maxOwnerLength)
}

func validateSegment(code Code, what, s string, maxLen int) error {
	if strings.TrimSpace(s) == "" {
		return New(code, "%s cannot be empty", what)
	}

	if len(s) > maxLen {
		return New(code, "%s too long (max %d characters)", what, maxLen)
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return New(code, "%s contains invalid control characters", what)
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(s, pattern) {
			return New(code, "%s contains invalid characters: %q", what, pattern)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
