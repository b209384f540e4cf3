package query

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

func TestRecordToDomain(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	rec := &record{
		TrackingCode:   "A1B2C3",
		Name:           "Raj Kumar",
		Mobile:         "9876543210",
		Location:       "Kanpur, UP",
		Description:    "wheat disease on my crop",
		Status:         StatusAssigned,
		CreatedAt:      created,
		ExpertAssigned: sql.NullString{String: "Dr. Sharma", Valid: true},
	}

	q := rec.toDomain()
	if q.TrackingCode != "A1B2C3" || q.Status != StatusAssigned {
		t.Fatalf("unexpected domain mapping: %+v", q)
	}
	if q.ExpertAssigned != "Dr. Sharma" {
		t.Fatalf("ExpertAssigned = %q, want Dr. Sharma", q.ExpertAssigned)
	}
	if q.Notes != "" {
		t.Fatalf("Notes = %q, want empty for null column", q.Notes)
	}
	if !q.CreatedAt.Equal(created) {
		t.Fatalf("CreatedAt = %v, want %v", q.CreatedAt, created)
	}
}

func TestMaskMobile(t *testing.T) {
	t.Parallel()

	if got := maskMobile("9876543210"); got != "9876****" {
		t.Fatalf("maskMobile() = %q, want %q", got, "9876****")
	}
	if got := maskMobile("98"); got != "****" {
		t.Fatalf("maskMobile() = %q, want %q", got, "****")
	}
}

func TestListByStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	s := &Store{now: time.Now}
	if _, err := s.ListByStatus(context.Background(), Status("bogus"), 5); err == nil {
		t.Fatal("ListByStatus() error = nil, want error for unknown status")
	}
}

func TestIsUniqueViolationNil(t *testing.T) {
	t.Parallel()

	if isUniqueViolation(nil) {
		t.Fatal("isUniqueViolation(nil) = true, want false")
	}
}
