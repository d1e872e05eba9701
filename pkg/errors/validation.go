package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
//
// Absolute paths are allowed: figures are written wherever the caller asks.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateFraction checks that f lies in the half-open interval (0, 1].
func ValidateFraction(f float64) error {
	if math.IsNaN(f) || f <= 0 || f > 1 {
		return New(ErrCodeInvalidArgument, "fraction must be in (0, 1], got %v", f)
	}
	return nil
}

// ValidateAmount checks that a blend amount lies in the closed interval [0, 1].
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || amount < 0 || amount > 1 {
		return New(ErrCodeInvalidArgument, "amount must be in [0, 1], got %v", amount)
	}
	return nil
}

// ValidateFinite rejects NaN and infinite values.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidArgument, "%s must be finite, got %v", name, v)
	}
	return nil
}
