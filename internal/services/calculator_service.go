package services

import (
	"context"
	"fmt"

	"extraction-platform/internal/models"
	"extraction-platform/pkg/logging"
	"extraction-platform/pkg/metrics"
)

// CalculatorService computes water extraction estimates from validated
// inputs
type CalculatorService struct {
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// EstimateResult contains one computed estimate
type EstimateResult struct {
	WaterVolumeLiters float64                `json:"water_volume_liters"`
	FormattedVolume   string                 `json:"formatted_volume"`
	Input             models.ExtractionInput `json:"input"`
}

// NewCalculatorService creates a new calculator service
func NewCalculatorService(logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *CalculatorService {
	return &CalculatorService{
		logger:  logger,
		metrics: metricsCollector,
	}
}

// Estimate validates the input and, only when every field passes,
// computes the recoverable water volume. The returned ValidationResult
// lists all failing fields at once; the result is nil whenever it is
// non-empty.
func (s *CalculatorService) Estimate(ctx context.Context, input models.ExtractionInput) (*EstimateResult, models.ValidationResult) {
	validation := input.Validate()
	if !validation.Valid() {
		for field := range validation {
			s.metrics.RecordValidationFailure(field)
		}

		s.logger.Debug(ctx, "[ESTIMATE_REJECTED] Input failed validation", logging.Fields{
			"crop_id":      input.SelectedCropID,
			"field_errors": len(validation),
		})

		return nil, validation
	}

	timer := s.metrics.NewTimer(s.metrics.EstimateDuration)
	volume := input.WaterVolumeLiters()
	formatted := FormatVolume(volume)
	timer.ObserveDuration()

	s.metrics.EstimatesTotal.Inc()
	s.metrics.EstimateVolumeLiters.Observe(volume)

	s.logger.Debug(ctx, "[ESTIMATE_COMPUTED] Extraction estimate computed", logging.Fields{
		"crop_id":             input.SelectedCropID,
		"total_mass_kg":       *input.TotalMassKg,
		"water_volume_liters": volume,
		"formatted":           formatted,
	})

	return &EstimateResult{
		WaterVolumeLiters: volume,
		FormattedVolume:   formatted,
		Input:             input,
	}, validation
}

// FormatVolume renders a volume in liters with an appropriate unit:
// milliliters below one liter, liters up to a cubic meter, cubic
// meters beyond. The transitions at exactly 0.001 L, 1 L, and 1000 L
// belong to the larger unit.
func FormatVolume(liters float64) string {
	switch {
	case liters < 0.001:
		return fmt.Sprintf("%.2f mL", liters*1000)
	case liters < 1:
		return fmt.Sprintf("%.0f mL", liters*1000)
	case liters < 1000:
		return fmt.Sprintf("%.2f L", liters)
	default:
		return fmt.Sprintf("%.2f m³", liters/1000)
	}
}
