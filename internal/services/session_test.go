package services

import (
	"context"
	"testing"
)

// TestSession_NewSession checks the default crop pre-fill
func TestSession_NewSession(t *testing.T) {
	session := NewSession(newTestCalculator())
	input := session.Input()

	if input.SelectedCropID != "tunisian-olive" {
		t.Errorf("SelectedCropID = %v, want tunisian-olive", input.SelectedCropID)
	}
	if input.BiomassFactor == nil || *input.BiomassFactor != 0.175 {
		t.Errorf("BiomassFactor = %v, want 0.175", input.BiomassFactor)
	}
	if input.MoistureContentPercent == nil || *input.MoistureContentPercent != 72.5 {
		t.Errorf("MoistureContentPercent = %v, want 72.5", input.MoistureContentPercent)
	}
	if session.Result() != nil {
		t.Error("a fresh session must not have a result")
	}
}

// TestSession_SelectCrop checks that selecting a crop overwrites only
// the catalog-owned fields
func TestSession_SelectCrop(t *testing.T) {
	session := NewSession(newTestCalculator())
	ctx := context.Background()

	session.Apply(oliveInput(100))
	session.SelectCrop(ctx, "apple-tree")

	input := session.Input()
	if input.SelectedCropID != "apple-tree" {
		t.Errorf("SelectedCropID = %v, want apple-tree", input.SelectedCropID)
	}
	if *input.BiomassFactor != 0.12 {
		t.Errorf("BiomassFactor = %v, want 0.12", *input.BiomassFactor)
	}
	if *input.MoistureContentPercent != 80 {
		t.Errorf("MoistureContentPercent = %v, want 80", *input.MoistureContentPercent)
	}

	// Caller-owned fields stay untouched
	if *input.TotalMassKg != 100 {
		t.Errorf("TotalMassKg = %v, want 100", *input.TotalMassKg)
	}
	if *input.LossFractionPercent != 20 {
		t.Errorf("LossFractionPercent = %v, want 20", *input.LossFractionPercent)
	}
	if *input.ProcessingFactor != 1.0 {
		t.Errorf("ProcessingFactor = %v, want 1.0", *input.ProcessingFactor)
	}
	if *input.RecoveryEfficiencyPercent != 50 {
		t.Errorf("RecoveryEfficiencyPercent = %v, want 50", *input.RecoveryEfficiencyPercent)
	}
}

// TestSession_SelectCrop_Idempotent selects the same crop twice and
// expects identical state
func TestSession_SelectCrop_Idempotent(t *testing.T) {
	session := NewSession(newTestCalculator())
	ctx := context.Background()

	session.Apply(oliveInput(100))
	session.SelectCrop(ctx, "koroneiki-olive")
	first := session.Input()

	session.SelectCrop(ctx, "koroneiki-olive")
	second := session.Input()

	if *first.BiomassFactor != *second.BiomassFactor {
		t.Errorf("BiomassFactor changed: %v -> %v", *first.BiomassFactor, *second.BiomassFactor)
	}
	if *first.MoistureContentPercent != *second.MoistureContentPercent {
		t.Errorf("MoistureContentPercent changed: %v -> %v",
			*first.MoistureContentPercent, *second.MoistureContentPercent)
	}
	if *first.TotalMassKg != *second.TotalMassKg {
		t.Errorf("TotalMassKg changed: %v -> %v", *first.TotalMassKg, *second.TotalMassKg)
	}
}

// TestSession_SelectCrop_UnknownFallsBack falls back to the first
// catalog entry on an unknown id
func TestSession_SelectCrop_UnknownFallsBack(t *testing.T) {
	session := NewSession(newTestCalculator())
	ctx := context.Background()

	session.SelectCrop(ctx, "banana-tree")

	input := session.Input()
	if input.SelectedCropID != "tunisian-olive" {
		t.Errorf("SelectedCropID = %v, want tunisian-olive fallback", input.SelectedCropID)
	}
	if *input.BiomassFactor != 0.175 {
		t.Errorf("BiomassFactor = %v, want 0.175", *input.BiomassFactor)
	}
}

// TestSession_SelectCrop_RecomputesPriorResult verifies that a crop
// change refreshes an existing valid result immediately
func TestSession_SelectCrop_RecomputesPriorResult(t *testing.T) {
	session := NewSession(newTestCalculator())
	ctx := context.Background()

	session.Apply(oliveInput(100))

	result, validation := session.Estimate(ctx)
	if !validation.Valid() {
		t.Fatalf("unexpected validation errors: %v", validation)
	}
	if result.FormattedVolume != "5.08 L" {
		t.Fatalf("FormattedVolume = %q, want \"5.08 L\"", result.FormattedVolume)
	}

	session.SelectCrop(ctx, "apple-tree")

	refreshed := session.Result()
	if refreshed == nil {
		t.Fatal("result should have been recomputed after crop change")
	}
	// 100 * 0.12 * 0.8 * 1.0 * 0.80 * 0.5 = 3.84
	if refreshed.FormattedVolume != "3.84 L" {
		t.Errorf("FormattedVolume = %q, want \"3.84 L\"", refreshed.FormattedVolume)
	}
}

// TestSession_SelectCrop_NoResultNoRecompute: without a prior computed
// result a crop change only re-validates
func TestSession_SelectCrop_NoResultNoRecompute(t *testing.T) {
	session := NewSession(newTestCalculator())
	ctx := context.Background()

	session.Apply(oliveInput(100))
	validation := session.SelectCrop(ctx, "apple-tree")

	if !validation.Valid() {
		t.Errorf("unexpected validation errors: %v", validation)
	}
	if session.Result() != nil {
		t.Error("crop selection must not compute a first result on its own")
	}
}

// TestSession_Apply_DoesNotRecompute: manual edits never trigger
// recomputation on their own
func TestSession_Apply_DoesNotRecompute(t *testing.T) {
	session := NewSession(newTestCalculator())
	ctx := context.Background()

	session.Apply(oliveInput(100))
	if _, validation := session.Estimate(ctx); !validation.Valid() {
		t.Fatalf("unexpected validation errors: %v", validation)
	}
	before := session.Result().WaterVolumeLiters

	session.Apply(oliveInput(200))

	if session.Result().WaterVolumeLiters != before {
		t.Error("Apply must not recompute the stored result")
	}
}
