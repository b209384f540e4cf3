package validate

import (
	"errors"
	"testing"
)

func TestMobileNormalizesSeparators(t *testing.T) {
	t.Parallel()

	got, err := Mobile("98765-432 10")
	if err != nil {
		t.Fatalf("Mobile() error = %v", err)
	}
	if got != "9876543210" {
		t.Fatalf("Mobile() = %q, want %q", got, "9876543210")
	}
}

func TestMobileAcceptsLongerNumbers(t *testing.T) {
	t.Parallel()

	got, err := Mobile("+91 7000298690")
	if err != nil {
		t.Fatalf("Mobile() error = %v", err)
	}
	// The country code is kept as digits; what matters is the length and
	// the first digit after stripping.
	if got != "917000298690" {
		t.Fatalf("Mobile() = %q, want %q", got, "917000298690")
	}
}

func TestMobileRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
	}{
		{"too short", "987654321"},
		{"bad first digit", "5876543210"},
		{"empty", ""},
		{"letters only", "not a number"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Mobile(tc.input); !errors.Is(err, ErrInvalidMobile) {
				t.Fatalf("Mobile(%q) error = %v, want ErrInvalidMobile", tc.input, err)
			}
		})
	}
}

func TestNameTooShort(t *testing.T) {
	t.Parallel()

	if _, err := Name(" R "); !errors.Is(err, ErrMissingName) {
		t.Fatalf("Name() error = %v, want ErrMissingName", err)
	}
	got, err := Name("  Raj Kumar ")
	if err != nil {
		t.Fatalf("Name() error = %v", err)
	}
	if got != "Raj Kumar" {
		t.Fatalf("Name() = %q, want trimmed", got)
	}
}

func TestLocationRejectsWhitespaceOnly(t *testing.T) {
	t.Parallel()

	if _, err := Location("   \t"); !errors.Is(err, ErrMissingLocation) {
		t.Fatalf("Location() error = %v, want ErrMissingLocation", err)
	}
}

func TestDescriptionMinimumLength(t *testing.T) {
	t.Parallel()

	if _, err := Description("wheat"); !errors.Is(err, ErrShortDescription) {
		t.Fatalf("Description() error = %v, want ErrShortDescription", err)
	}
	if _, err := Description("wheat crop has yellow spots"); err != nil {
		t.Fatalf("Description() error = %v", err)
	}
}
