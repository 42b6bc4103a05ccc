package main

import (
	"context"
	"fmt"
	"strings"

	"extraction-platform/internal/catalog"
	"extraction-platform/internal/models"
	"extraction-platform/internal/services"
	"extraction-platform/pkg/logging"
	"extraction-platform/pkg/metrics"
)

// DemoEstimation demonstrates the estimation engine without a database
func main() {
	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println("EXTRACTION PLATFORM - ESTIMATION DEMONSTRATION")
	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println()

	logger := logging.NewStructuredLogger("demo", "1.0.0", logging.InfoLevel)
	metricsCollector := metrics.NewCollector("extraction_demo")
	calculator := services.NewCalculatorService(logger, metricsCollector)
	ctx := context.Background()

	fmt.Printf("Catalog holds %d crop profiles\n\n", len(catalog.Profiles()))

	mass := 100.0
	loss := 20.0
	processing := 1.0
	efficiency := 50.0

	for _, profile := range catalog.Profiles() {
		biomass := profile.BiomassFactor
		moisture := profile.MoistureContentPercent

		input := models.ExtractionInput{
			SelectedCropID:            profile.ID,
			TotalMassKg:               &mass,
			LossFractionPercent:       &loss,
			ProcessingFactor:          &processing,
			MoistureContentPercent:    &moisture,
			RecoveryEfficiencyPercent: &efficiency,
			BiomassFactor:             &biomass,
		}

		result, validation := calculator.Estimate(ctx, input)
		if !validation.Valid() {
			fmt.Printf("%-16s rejected: %v\n", profile.ID, validation)
			continue
		}

		fmt.Printf("%-16s %8.4f L  ->  %s\n", profile.DisplayName, result.WaterVolumeLiters, result.FormattedVolume)
	}

	fmt.Println()
	fmt.Println(strings.Repeat("-", 64))
	fmt.Printf("Inputs: %.0f kg harvested, %.0f%% loss, processing %.1f, %.0f%% recovery\n",
		mass, loss, processing, efficiency)

	// Show how validation reports every failing field at once
	badMass := -5.0
	badLoss := 150.0
	bad := models.ExtractionInput{
		SelectedCropID:      catalog.Default().ID,
		TotalMassKg:         &badMass,
		LossFractionPercent: &badLoss,
	}

	_, validation := calculator.Estimate(ctx, bad)

	fmt.Println()
	fmt.Printf("Invalid example input rejected with %d field errors:\n", len(validation))
	for field, message := range validation {
		fmt.Printf("  - %s: %s\n", field, message)
	}
}
