package services

import (
	"context"
	"io"
	"testing"

	"extraction-platform/internal/models"
	"extraction-platform/pkg/logging"
	"extraction-platform/pkg/metrics"
)

// One collector for the whole package; promauto registers metrics in
// the default registry and duplicate names panic.
var testMetrics = metrics.NewCollector("services_test")

func newTestLogger() *logging.StructuredLogger {
	logger := logging.NewStructuredLogger("test", "0.0.0", logging.ErrorLevel)
	logger.SetOutput(io.Discard)
	return logger
}

func newTestCalculator() *CalculatorService {
	return NewCalculatorService(newTestLogger(), testMetrics)
}

func ptr(v float64) *float64 {
	return &v
}

func oliveInput(massKg float64) models.ExtractionInput {
	return models.ExtractionInput{
		SelectedCropID:            "tunisian-olive",
		TotalMassKg:               ptr(massKg),
		LossFractionPercent:       ptr(20),
		ProcessingFactor:          ptr(1.0),
		MoistureContentPercent:    ptr(72.5),
		RecoveryEfficiencyPercent: ptr(50),
		BiomassFactor:             ptr(0.175),
	}
}

// TestFormatVolume pins the unit transitions exactly, including the
// half-open boundaries at 0.001 L, 1 L, and 1000 L
func TestFormatVolume(t *testing.T) {
	tests := []struct {
		name   string
		liters float64
		want   string
	}{
		{"tiny volume uses two-decimal milliliters", 0.00005, "0.05 mL"},
		{"just below milliliter boundary", 0.0009999, "1.00 mL"},
		{"exactly at milliliter boundary", 0.001, "1 mL"},
		{"sub-liter volume", 0.5, "500 mL"},
		{"just below liter boundary", 0.999, "999 mL"},
		{"exactly one liter", 1.0, "1.00 L"},
		{"mid-range liters", 12.34, "12.34 L"},
		{"just below cubic meter boundary", 999.999, "1000.00 L"},
		{"exactly one cubic meter", 1000.0, "1.00 m³"},
		{"large volume", 1500.0, "1.50 m³"},
		{"zero volume", 0, "0.00 mL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatVolume(tt.liters); got != tt.want {
				t.Errorf("FormatVolume(%v) = %q, want %q", tt.liters, got, tt.want)
			}
		})
	}
}

// TestCalculatorService_Estimate covers the end-to-end scenarios from
// the reference data
func TestCalculatorService_Estimate(t *testing.T) {
	calc := newTestCalculator()
	ctx := context.Background()

	t.Run("100 kg tunisian olive", func(t *testing.T) {
		result, validation := calc.Estimate(ctx, oliveInput(100))

		if !validation.Valid() {
			t.Fatalf("unexpected validation errors: %v", validation)
		}
		if result.WaterVolumeLiters < 5.074999 || result.WaterVolumeLiters > 5.075001 {
			t.Errorf("WaterVolumeLiters = %v, want 5.075", result.WaterVolumeLiters)
		}
		if result.FormattedVolume != "5.08 L" {
			t.Errorf("FormattedVolume = %q, want \"5.08 L\"", result.FormattedVolume)
		}
	})

	t.Run("10 kg tunisian olive", func(t *testing.T) {
		result, validation := calc.Estimate(ctx, oliveInput(10))

		if !validation.Valid() {
			t.Fatalf("unexpected validation errors: %v", validation)
		}
		if result.FormattedVolume != "508 mL" {
			t.Errorf("FormattedVolume = %q, want \"508 mL\"", result.FormattedVolume)
		}
	})

	t.Run("zero mass is rejected without computing", func(t *testing.T) {
		result, validation := calc.Estimate(ctx, oliveInput(0))

		if result != nil {
			t.Errorf("expected nil result, got %+v", result)
		}
		if _, ok := validation[models.FieldTotalMass]; !ok {
			t.Errorf("expected %s error, got %v", models.FieldTotalMass, validation)
		}
		if len(validation) != 1 {
			t.Errorf("expected exactly 1 error, got %v", validation)
		}
	})

	t.Run("out-of-range loss fraction only flags that field", func(t *testing.T) {
		input := oliveInput(100)
		input.LossFractionPercent = ptr(150)

		result, validation := calc.Estimate(ctx, input)

		if result != nil {
			t.Errorf("expected nil result, got %+v", result)
		}
		if len(validation) != 1 {
			t.Errorf("expected exactly 1 error, got %v", validation)
		}
		if _, ok := validation[models.FieldLossFraction]; !ok {
			t.Errorf("expected %s error, got %v", models.FieldLossFraction, validation)
		}
	})

	t.Run("repeated calls are deterministic", func(t *testing.T) {
		first, _ := calc.Estimate(ctx, oliveInput(100))
		for i := 0; i < 10; i++ {
			next, _ := calc.Estimate(ctx, oliveInput(100))
			if next.WaterVolumeLiters != first.WaterVolumeLiters {
				t.Fatalf("call %d: volume %v, want %v", i, next.WaterVolumeLiters, first.WaterVolumeLiters)
			}
			if next.FormattedVolume != first.FormattedVolume {
				t.Fatalf("call %d: formatted %q, want %q", i, next.FormattedVolume, first.FormattedVolume)
			}
		}
	})
}
