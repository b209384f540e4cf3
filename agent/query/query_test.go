package query

import "testing"

func TestStatusCanAdvanceTo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusAssigned, true},
		{StatusPending, StatusCompleted, true},
		{StatusAssigned, StatusCompleted, true},
		{StatusAssigned, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusAssigned, false},
		{StatusPending, StatusPending, false},
		{StatusCompleted, StatusCompleted, false},
		{Status("bogus"), StatusAssigned, false},
		{StatusPending, Status("bogus"), false},
	}
	for _, tc := range cases {
		if got := tc.from.CanAdvanceTo(tc.to); got != tc.want {
			t.Fatalf("CanAdvanceTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	t.Parallel()

	for _, st := range []Status{StatusPending, StatusAssigned, StatusCompleted} {
		if !st.Valid() {
			t.Fatalf("Valid(%s) = false, want true", st)
		}
	}
	if Status("archived").Valid() {
		t.Fatal("Valid(archived) = true, want false")
	}
}
