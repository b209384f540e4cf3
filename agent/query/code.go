package query

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
)

// Tracking codes are six uppercase hexadecimal characters. They are issued
// and stored uppercase; NormalizeCode folds user input so lookups are
// case-insensitive from the requester's side. Codes are never reused: no
// delete operation exists on the ledger.
const (
	codeAlphabet = "0123456789ABCDEF"
	codeLength   = 6

	// maxCodeAttempts bounds the collision-retry loop in Store.Create. At
	// the intended volume (tens of thousands of requests against a 16^6
	// space) hitting this bound means something is wrong with the store,
	// not with the dice.
	maxCodeAttempts = 5
)

// GenerateCode draws a candidate tracking code from crypto/rand. Uniqueness
// is not checked here: the store's unique index is the source of truth, and
// the insert path retries on collision.
func GenerateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

// NormalizeCode prepares user-supplied code input for lookup.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidCode reports whether s looks like an issued tracking code after
// normalization.
func ValidCode(s string) bool {
	if len(s) != codeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(codeAlphabet, rune(s[i])) {
			return false
		}
	}
	return true
}

// insertWithFreshCode runs insert with newly generated codes until one lands
// or maxCodeAttempts is exhausted. insert must return errDuplicateCode
// when the store rejects the candidate on the unique index; any other error
// aborts the loop.
func insertWithFreshCode(ctx context.Context, insert func(ctx context.Context, code string) error) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := GenerateCode()
		if err != nil {
			return "", err
		}
		switch err := insert(ctx, code); {
		case err == nil:
			return code, nil
		case errors.Is(err, errDuplicateCode):
			continue
		default:
			return "", err
		}
	}
	return "", ErrCodeSpaceBusy
}
