package services

import (
	"context"
	"testing"
)

func TestSlugBase(t *testing.T) {
	if got := SlugBase("Dr. Asha Rao", "Spine Care Clinic"); got != "dr-asha-rao-spine-care-clinic" {
		t.Errorf("unexpected slug base %q", got)
	}
	if got := SlugBase("मीरा", "क्लिनिक"); got == "" {
		t.Errorf("expected non-empty slug for non-latin input, got %q", got)
	}
	if got := SlugBase("", ""); got != "doctor" {
		t.Errorf("expected fallback stem, got %q", got)
	}
}

func TestUniqueSlug_BaseFree(t *testing.T) {
	got, err := UniqueSlug(context.Background(), "asha-rao-clinic", func(ctx context.Context, candidate string) (bool, error) {
		return false, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "asha-rao-clinic" {
		t.Errorf("expected the base itself, got %q", got)
	}
}

func TestUniqueSlug_CounterSuffix(t *testing.T) {
	taken := map[string]bool{
		"asha-rao-clinic":   true,
		"asha-rao-clinic-2": true,
	}
	got, err := UniqueSlug(context.Background(), "asha-rao-clinic", func(ctx context.Context, candidate string) (bool, error) {
		return taken[candidate], nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "asha-rao-clinic-3" {
		t.Errorf("expected asha-rao-clinic-3, got %q", got)
	}
}
