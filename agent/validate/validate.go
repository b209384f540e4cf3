// Package validate holds the pure input checks for voice-derived fields.
// Nothing here performs I/O; every function is deterministic.
package validate

import (
	"fmt"
	"strings"

	contractx "github.com/krishivaani/krishivaani/agent/contract"
)

var (
	ErrInvalidMobile    = fmt.Errorf("%w: invalid mobile number", contractx.ErrValidation)
	ErrMissingName      = fmt.Errorf("%w: name is required", contractx.ErrValidation)
	ErrMissingLocation  = fmt.Errorf("%w: location is required", contractx.ErrValidation)
	ErrShortDescription = fmt.Errorf("%w: description is too short", contractx.ErrValidation)
	ErrMissingCommodity = fmt.Errorf("%w: commodity is required", contractx.ErrValidation)
	ErrUnknownCommodity = fmt.Errorf("%w: commodity not supported", contractx.ErrValidation)
	ErrUnknownState     = fmt.Errorf("%w: state not recognized", contractx.ErrValidation)
)

const (
	minNameLen        = 2
	minDescriptionLen = 10
)

// Mobile normalizes and checks an Indian mobile number. Separators and
// spaces are stripped before checking; the result must be at least ten
// digits and start with 6, 7, 8 or 9.
func Mobile(s string) (string, error) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	normalized := digits.String()
	if len(normalized) < 10 {
		return "", ErrInvalidMobile
	}
	switch normalized[0] {
	case '6', '7', '8', '9':
		return normalized, nil
	default:
		return "", ErrInvalidMobile
	}
}

// Name requires at least two characters after trimming.
func Name(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < minNameLen {
		return "", ErrMissingName
	}
	return trimmed, nil
}

// Location rejects empty or whitespace-only input.
func Location(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrMissingLocation
	}
	return trimmed, nil
}

// Description requires enough text for an expert to act on.
func Description(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < minDescriptionLen {
		return "", ErrShortDescription
	}
	return trimmed, nil
}
