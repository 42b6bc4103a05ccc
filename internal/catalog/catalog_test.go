package catalog

import (
	"testing"
)

// TestProfiles_ReferenceValues pins the literature constants; these
// must never drift
func TestProfiles_ReferenceValues(t *testing.T) {
	want := []struct {
		id       string
		name     string
		biomass  float64
		moisture float64
	}{
		{"tunisian-olive", "Tunisian Olive", 0.175, 72.5},
		{"koroneiki-olive", "Koroneiki Olive", 0.20, 70},
		{"leccino-olive", "Leccino Olive", 0.16, 72.5},
		{"apple-tree", "Apple Tree", 0.12, 80},
	}

	got := Profiles()
	if len(got) != len(want) {
		t.Fatalf("Profiles() has %d entries, want %d", len(got), len(want))
	}

	for i, w := range want {
		p := got[i]
		if p.ID != w.id {
			t.Errorf("entry %d: ID = %v, want %v", i, p.ID, w.id)
		}
		if p.DisplayName != w.name {
			t.Errorf("entry %d: DisplayName = %v, want %v", i, p.DisplayName, w.name)
		}
		if p.BiomassFactor != w.biomass {
			t.Errorf("entry %d: BiomassFactor = %v, want %v", i, p.BiomassFactor, w.biomass)
		}
		if p.MoistureContentPercent != w.moisture {
			t.Errorf("entry %d: MoistureContentPercent = %v, want %v", i, p.MoistureContentPercent, w.moisture)
		}
	}
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("apple-tree")
	if !ok {
		t.Fatal("Lookup(apple-tree) not found")
	}
	if p.BiomassFactor != 0.12 || p.MoistureContentPercent != 80 {
		t.Errorf("apple-tree profile = %+v", p)
	}

	if _, ok := Lookup("unknown-crop"); ok {
		t.Error("Lookup(unknown-crop) should not be found")
	}
}

func TestDefault_IsFirstEntry(t *testing.T) {
	d := Default()

	if d.ID != "tunisian-olive" {
		t.Errorf("Default().ID = %v, want tunisian-olive", d.ID)
	}
	if d.ID != Profiles()[0].ID {
		t.Error("Default() must be the first catalog entry")
	}
}

// TestProfiles_ReturnsCopy guards the catalog against caller mutation
func TestProfiles_ReturnsCopy(t *testing.T) {
	first := Profiles()
	first[0].BiomassFactor = 99

	if Profiles()[0].BiomassFactor != 0.175 {
		t.Error("mutating the returned slice must not affect the catalog")
	}
}
