package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"extraction-platform/internal/catalog"
	"extraction-platform/internal/models"
	"extraction-platform/internal/services"
	"extraction-platform/pkg/logging"
	"extraction-platform/pkg/metrics"
)

func main() {
	// Parse command-line flags
	cropID := flag.String("crop", catalog.Default().ID, "Crop identifier from the catalog")
	mass := flag.Float64("mass", 0, "Total harvested mass in kg (required)")
	loss := flag.Float64("loss", 20, "Loss fraction in percent")
	processing := flag.Float64("processing", 1.0, "Processing factor")
	efficiency := flag.Float64("efficiency", 50, "Recovery efficiency in percent")
	moisture := flag.Float64("moisture", 0, "Moisture content in percent (overrides the crop value)")
	biomass := flag.Float64("biomass", 0, "Biomass factor (overrides the crop value)")
	listCrops := flag.Bool("list-crops", false, "List the crop catalog and exit")
	flag.Parse()

	if *listCrops {
		fmt.Println(strings.Repeat("=", 80))
		fmt.Println("CROP CATALOG")
		fmt.Println(strings.Repeat("=", 80))
		for _, p := range catalog.Profiles() {
			fmt.Printf("%-16s %-16s biomass factor %.3f, moisture %.1f%%  (%s)\n",
				p.ID, p.DisplayName, p.BiomassFactor, p.MoistureContentPercent, p.ScientificName)
		}
		return
	}

	logger := logging.NewStructuredLogger("extraction-estimate", "1.0.0", logging.WarnLevel)
	metricsCollector := metrics.NewCollector("extraction_estimate")

	calculator := services.NewCalculatorService(logger, metricsCollector)
	session := services.NewSession(calculator)

	ctx := context.Background()
	session.SelectCrop(ctx, *cropID)

	// Only explicitly passed flags override the crop-derived defaults.
	overrides := models.ExtractionInput{
		TotalMassKg:               mass,
		LossFractionPercent:       loss,
		ProcessingFactor:          processing,
		RecoveryEfficiencyPercent: efficiency,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "moisture":
			overrides.MoistureContentPercent = moisture
		case "biomass":
			overrides.BiomassFactor = biomass
		}
	})
	session.Apply(overrides)

	result, validation := session.Estimate(ctx)
	if !validation.Valid() {
		fmt.Fprintln(os.Stderr, "Invalid input:")

		fields := make([]string, 0, len(validation))
		for field := range validation {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			fmt.Fprintf(os.Stderr, "  - %s: %s\n", field, validation[field])
		}
		os.Exit(1)
	}

	input := session.Input()

	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("EXTRACTION ESTIMATE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Crop:                %s\n", input.SelectedCropID)
	fmt.Printf("Total Mass:          %.3f kg\n", *input.TotalMassKg)
	fmt.Printf("Biomass Factor:      %.3f\n", *input.BiomassFactor)
	fmt.Printf("Loss Fraction:       %.1f %%\n", *input.LossFractionPercent)
	fmt.Printf("Processing Factor:   %.2f\n", *input.ProcessingFactor)
	fmt.Printf("Moisture Content:    %.1f %%\n", *input.MoistureContentPercent)
	fmt.Printf("Recovery Efficiency: %.1f %%\n", *input.RecoveryEfficiencyPercent)
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Water Volume:        %.6f L\n", result.WaterVolumeLiters)
	fmt.Printf("Formatted:           %s\n", result.FormattedVolume)
}
