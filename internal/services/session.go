package services

import (
	"context"

	"extraction-platform/internal/catalog"
	"extraction-platform/internal/models"
)

// Session owns the input form of one interactive estimation run.
// Selecting a crop pre-fills the biomass factor and moisture content
// from the catalog; the remaining four fields are only ever changed by
// the caller. Sessions are not safe for concurrent use.
type Session struct {
	calc   *CalculatorService
	input  models.ExtractionInput
	result *EstimateResult
}

// NewSession creates a session pre-filled from the default catalog
// entry
func NewSession(calc *CalculatorService) *Session {
	profile := catalog.Default()
	biomass := profile.BiomassFactor
	moisture := profile.MoistureContentPercent

	return &Session{
		calc: calc,
		input: models.ExtractionInput{
			SelectedCropID:         profile.ID,
			BiomassFactor:          &biomass,
			MoistureContentPercent: &moisture,
		},
	}
}

// Input returns a copy of the current form state.
func (s *Session) Input() models.ExtractionInput {
	return s.input
}

// Result returns the last computed estimate, or nil if the form has
// not been in a valid-and-computed state yet.
func (s *Session) Result() *EstimateResult {
	return s.result
}

// Apply replaces the caller-owned fields of the form. It does not
// trigger recomputation; callers decide when to call Estimate.
func (s *Session) Apply(input models.ExtractionInput) {
	if input.TotalMassKg != nil {
		s.input.TotalMassKg = input.TotalMassKg
	}
	if input.LossFractionPercent != nil {
		s.input.LossFractionPercent = input.LossFractionPercent
	}
	if input.ProcessingFactor != nil {
		s.input.ProcessingFactor = input.ProcessingFactor
	}
	if input.RecoveryEfficiencyPercent != nil {
		s.input.RecoveryEfficiencyPercent = input.RecoveryEfficiencyPercent
	}
	if input.MoistureContentPercent != nil {
		s.input.MoistureContentPercent = input.MoistureContentPercent
	}
	if input.BiomassFactor != nil {
		s.input.BiomassFactor = input.BiomassFactor
	}
}

// SelectCrop overwrites the biomass factor and moisture content with
// the profile for the given id, falling back to the first catalog
// entry when the id is unknown. The other four fields are left
// untouched. If a prior valid result existed, the estimate is
// recomputed immediately with the updated fields.
func (s *Session) SelectCrop(ctx context.Context, id string) models.ValidationResult {
	profile, ok := catalog.Lookup(id)
	if !ok {
		profile = catalog.Default()
		s.calc.metrics.RecordCatalogLookup("fallback")
	} else {
		s.calc.metrics.RecordCatalogLookup("hit")
	}

	biomass := profile.BiomassFactor
	moisture := profile.MoistureContentPercent

	s.input.SelectedCropID = profile.ID
	s.input.BiomassFactor = &biomass
	s.input.MoistureContentPercent = &moisture

	validation := s.input.Validate()

	if s.result != nil && validation.Valid() {
		s.result, validation = s.calc.Estimate(ctx, s.input)
	}

	return validation
}

// Estimate validates the current form and computes the water volume
// when every field passes. The computed result is retained so that a
// later crop change can refresh it.
func (s *Session) Estimate(ctx context.Context) (*EstimateResult, models.ValidationResult) {
	result, validation := s.calc.Estimate(ctx, s.input)
	if result != nil {
		s.result = result
	}
	return result, validation
}
