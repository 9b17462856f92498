package wizard

import (
	"errors"
	"testing"
)

func TestFormState_SetKnownField(t *testing.T) {
	form := NewFormState()

	if err := form.Set(FieldFullName, "Priya Raman"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if got := form.Get(FieldFullName); got != "Priya Raman" {
		t.Errorf("Get() = %q, want %q", got, "Priya Raman")
	}
}

func TestFormState_RejectsUnknownField(t *testing.T) {
	form := NewFormState()

	err := form.Set("fulName", "typo")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("Set() error = %v, want ErrUnknownField", err)
	}
	if _, ok := form.Snapshot()["fulName"]; ok {
		t.Error("rejected field must not appear in the snapshot")
	}
}

func TestFormState_GetUnsetField(t *testing.T) {
	form := NewFormState()
	if got := form.Get(FieldEmail); got != "" {
		t.Errorf("Get() of unset field = %q, want empty", got)
	}
}

func TestFormState_SnapshotIsCopy(t *testing.T) {
	form := NewFormState()
	form.Set(FieldIndustry, "Construction")

	snap := form.Snapshot()
	snap[FieldIndustry] = "mutated"

	if form.Get(FieldIndustry) != "Construction" {
		t.Error("mutating a snapshot must not affect the form state")
	}
}

func TestFormState_ProfileSubset(t *testing.T) {
	form := NewFormState()
	form.Set(FieldFullName, "Priya Raman")
	form.Set(FieldQuotationNumber, "Q-2024-001")

	profile := form.Profile()
	if profile[FieldFullName] != "Priya Raman" {
		t.Errorf("profile fullName = %q", profile[FieldFullName])
	}
	if _, ok := profile[FieldQuotationNumber]; ok {
		t.Error("quotation fields must not leak into the profile subset")
	}
	// Unset profile fields appear as empty strings for a stable shape.
	if _, ok := profile[FieldPrimaryUse]; !ok {
		t.Error("profile must include unset fields as empty strings")
	}
}
