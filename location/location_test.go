package location

import (
	"errors"
	"testing"
)

func TestTablesLoad(t *testing.T) {
	tables := Default()

	if got := len(tables.Divisions()); got != 8 {
		t.Fatalf("expected 8 divisions, got %d", got)
	}
	if _, ok := findByName(tables.Divisions(), "Dhaka"); !ok {
		t.Fatal("Dhaka missing from divisions")
	}
}

func TestDistrictsOfFiltersByDivision(t *testing.T) {
	tables := Default()

	dhaka, ok := findByName(tables.Divisions(), "Dhaka")
	if !ok {
		t.Fatal("Dhaka missing from divisions")
	}

	districts := tables.DistrictsOf(dhaka.ID)
	if len(districts) != 13 {
		t.Fatalf("expected 13 districts under Dhaka, got %d", len(districts))
	}
	for _, d := range districts {
		if d.DivisionID != dhaka.ID {
			t.Fatalf("district %s carries division_id %s", d.Name, d.DivisionID)
		}
	}
}

func TestCascadeSelectionFlow(t *testing.T) {
	c := NewCascade(Default())

	if err := c.SelectDivision("Dhaka"); err != nil {
		t.Fatalf("SelectDivision: %v", err)
	}
	if c.State() != DivisionSelected {
		t.Fatalf("state = %v after division", c.State())
	}
	if len(c.Districts()) == 0 {
		t.Fatal("no district candidates after selecting division")
	}

	if err := c.SelectDistrict("Gazipur"); err != nil {
		t.Fatalf("SelectDistrict: %v", err)
	}
	if len(c.Upazilas()) != 5 {
		t.Fatalf("expected 5 upazila candidates for Gazipur, got %d", len(c.Upazilas()))
	}

	if err := c.SelectUpazila("Sreepur"); err != nil {
		t.Fatalf("SelectUpazila: %v", err)
	}
	if c.State() != UpazilaSelected {
		t.Fatalf("state = %v after upazila", c.State())
	}
	if got := c.Address(); got != "Dhaka, Gazipur, Sreepur" {
		t.Fatalf("Address = %q", got)
	}
}

func TestCascadeResetOnReselect(t *testing.T) {
	c := NewCascade(Default())

	if err := c.SelectDivision("Dhaka"); err != nil {
		t.Fatalf("SelectDivision: %v", err)
	}
	if err := c.SelectDistrict("Gazipur"); err != nil {
		t.Fatalf("SelectDistrict: %v", err)
	}
	if err := c.SelectUpazila("Sreepur"); err != nil {
		t.Fatalf("SelectUpazila: %v", err)
	}

	// Reselecting the top level drops everything beneath it.
	if err := c.SelectDivision("Barishal"); err != nil {
		t.Fatalf("SelectDivision again: %v", err)
	}
	if c.District() != "" || c.Upazila() != "" {
		t.Fatalf("stale selection survived: district %q upazila %q", c.District(), c.Upazila())
	}
	if c.State() != DivisionSelected {
		t.Fatalf("state = %v after reselect", c.State())
	}
	if got := c.Address(); got != "Barishal" {
		t.Fatalf("Address = %q", got)
	}
}

func TestCascadeOrderEnforced(t *testing.T) {
	c := NewCascade(Default())

	if err := c.SelectDistrict("Gazipur"); !errors.Is(err, ErrNoDivision) {
		t.Fatalf("expected ErrNoDivision, got %v", err)
	}
	if err := c.SelectUpazila("Sreepur"); !errors.Is(err, ErrNoDistrict) {
		t.Fatalf("expected ErrNoDistrict, got %v", err)
	}
}

func TestCascadeRejectsForeignChild(t *testing.T) {
	c := NewCascade(Default())

	if err := c.SelectDivision("Dhaka"); err != nil {
		t.Fatalf("SelectDivision: %v", err)
	}
	if err := c.SelectDistrict("Barguna"); err == nil {
		t.Fatal("expected error selecting district of another division")
	}
}

func TestParseDumpMalformed(t *testing.T) {
	if _, err := parseDump([]byte(`{"not": "an array"}`)); err == nil {
		t.Fatal("expected error for non-array dump")
	}
	if _, err := parseDump([]byte(`[{"type":"header"},{"type":"database"}]`)); err == nil {
		t.Fatal("expected error for truncated dump")
	}
}
