package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateFinite rejects NaN and ±Inf.
// name is used in the error message (e.g. "spacing").
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidArgument, "%s must be finite, got %g", name, v)
	}
	return nil
}

// ValidatePositive requires a finite value strictly greater than zero.
func ValidatePositive(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidArgument, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateNonNegative requires a finite value greater than or equal to zero.
func ValidateNonNegative(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidArgument, "%s must not be negative, got %g", name, v)
	}
	return nil
}

// ValidateCount rejects negative integer counts.
func ValidateCount(name string, n int) error {
	if n < 0 {
		return New(ErrCodeInvalidArgument, "%s must not be negative, got %d", name, n)
	}
	return nil
}

// ValidateName validates a layer or plan name.
//
// The validation rules are intentionally conservative because names end up
// in cache keys and file names:
//   - No empty names
//   - No control characters
//   - No path separators
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "name contains path characters: %q", name)
	}

	return nil
}
