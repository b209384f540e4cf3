package query

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestGenerateCodeShape(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode() error = %v", err)
		}
		if len(code) != codeLength {
			t.Fatalf("GenerateCode() = %q, want %d characters", code, codeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("GenerateCode() = %q contains %q outside alphabet", code, r)
			}
		}
	}
}

func TestGenerateCodeEntropy(t *testing.T) {
	t.Parallel()

	const draws = 1000
	seen := make(map[string]struct{}, draws)
	for i := 0; i < draws; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode() error = %v", err)
		}
		seen[code] = struct{}{}
	}
	// In a 16^6 space a couple of collisions over a thousand draws is
	// possible; a collapsed generator is not.
	if len(seen) < draws*9/10 {
		t.Fatalf("only %d distinct codes out of %d draws", len(seen), draws)
	}
}

func TestNormalizeAndValidCode(t *testing.T) {
	t.Parallel()

	if got := NormalizeCode("  a1b2c3 "); got != "A1B2C3" {
		t.Fatalf("NormalizeCode() = %q, want %q", got, "A1B2C3")
	}
	if !ValidCode("A1B2C3") {
		t.Fatal("ValidCode(A1B2C3) = false, want true")
	}
	for _, bad := range []string{"", "A1B2C", "A1B2C3D", "A1B2G3", "a1b2c3"} {
		if ValidCode(bad) {
			t.Fatalf("ValidCode(%q) = true, want false", bad)
		}
	}
}

func TestInsertWithFreshCodeRetriesOnDuplicate(t *testing.T) {
	t.Parallel()

	var attempts int
	code, err := insertWithFreshCode(context.Background(), func(ctx context.Context, code string) error {
		attempts++
		if attempts < 3 {
			return errDuplicateCode
		}
		return nil
	})
	if err != nil {
		t.Fatalf("insertWithFreshCode() error = %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
	if !ValidCode(code) {
		t.Fatalf("insertWithFreshCode() returned invalid code %q", code)
	}
}

func TestInsertWithFreshCodeBoundedRetries(t *testing.T) {
	t.Parallel()

	var attempts int
	_, err := insertWithFreshCode(context.Background(), func(ctx context.Context, code string) error {
		attempts++
		return errDuplicateCode
	})
	if !errors.Is(err, ErrCodeSpaceBusy) {
		t.Fatalf("insertWithFreshCode() error = %v, want ErrCodeSpaceBusy", err)
	}
	if attempts != maxCodeAttempts {
		t.Fatalf("attempts = %d, want %d", attempts, maxCodeAttempts)
	}
}

// TestConcurrentCreationsNeverShareCode exercises the uniqueness mechanism
// the store relies on: a reserve-or-reject membership check behind the
// insert. Two concurrent creations must never both succeed with one code.
func TestConcurrentCreationsNeverShareCode(t *testing.T) {
	t.Parallel()

	const creations = 2000

	var mu sync.Mutex
	reserved := make(map[string]struct{}, creations)
	insert := func(ctx context.Context, code string) error {
		mu.Lock()
		defer mu.Unlock()
		if _, taken := reserved[code]; taken {
			return errDuplicateCode
		}
		reserved[code] = struct{}{}
		return nil
	}

	var wg sync.WaitGroup
	errs := make(chan error, creations)
	for i := 0; i < creations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := insertWithFreshCode(context.Background(), insert); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("insertWithFreshCode() error = %v", err)
	}
	if len(reserved) != creations {
		t.Fatalf("reserved %d codes, want %d distinct", len(reserved), creations)
	}
}

func TestInsertWithFreshCodeAbortsOnOtherError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	var attempts int
	_, err := insertWithFreshCode(context.Background(), func(ctx context.Context, code string) error {
		attempts++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("insertWithFreshCode() error = %v, want underlying error", err)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}
