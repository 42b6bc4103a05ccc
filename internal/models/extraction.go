package models

import (
	"fmt"
	"math"
	"time"
)

// WaterDensityKgPerLiter converts the extracted water mass to a volume.
const WaterDensityKgPerLiter = 1.0

// Field names used in validation results and API error payloads.
// They match the JSON tags of ExtractionInput.
const (
	FieldTotalMass          = "total_mass_kg"
	FieldLossFraction       = "loss_fraction_percent"
	FieldProcessingFactor   = "processing_factor"
	FieldMoistureContent    = "moisture_content_percent"
	FieldRecoveryEfficiency = "recovery_efficiency_percent"
	FieldBiomassFactor      = "biomass_factor"
)

// ExtractionInput holds the six numeric inputs of one estimation run.
// Numeric fields are pointers so a missing value can be told apart
// from zero; SelectedCropID is only used to pre-fill BiomassFactor and
// MoistureContentPercent from the catalog.
type ExtractionInput struct {
	SelectedCropID            string   `json:"selected_crop_id,omitempty"`
	TotalMassKg               *float64 `json:"total_mass_kg"`
	LossFractionPercent       *float64 `json:"loss_fraction_percent"`
	ProcessingFactor          *float64 `json:"processing_factor"`
	MoistureContentPercent    *float64 `json:"moisture_content_percent"`
	RecoveryEfficiencyPercent *float64 `json:"recovery_efficiency_percent"`
	BiomassFactor             *float64 `json:"biomass_factor"`
}

// ValidationResult maps a field name to a human-readable error message.
// A field with no entry is valid.
type ValidationResult map[string]string

// Valid reports whether no field failed validation.
func (v ValidationResult) Valid() bool {
	return len(v) == 0
}

// Validate checks every input field independently so that all errors
// surface at once. Percent fields accept the closed range [0,100];
// total mass, processing factor, and biomass factor must be finite and
// strictly positive.
func (in *ExtractionInput) Validate() ValidationResult {
	result := ValidationResult{}

	checkPositive(result, FieldTotalMass, in.TotalMassKg, "total mass")
	checkPercent(result, FieldLossFraction, in.LossFractionPercent, "loss fraction")
	checkPositive(result, FieldProcessingFactor, in.ProcessingFactor, "processing factor")
	checkPercent(result, FieldMoistureContent, in.MoistureContentPercent, "moisture content")
	checkPercent(result, FieldRecoveryEfficiency, in.RecoveryEfficiencyPercent, "recovery efficiency")
	checkPositive(result, FieldBiomassFactor, in.BiomassFactor, "biomass factor")

	return result
}

func checkPositive(result ValidationResult, field string, value *float64, label string) {
	switch {
	case value == nil:
		result[field] = fmt.Sprintf("%s is required", label)
	case math.IsNaN(*value) || math.IsInf(*value, 0):
		result[field] = fmt.Sprintf("%s must be a finite number", label)
	case *value <= 0:
		result[field] = fmt.Sprintf("%s must be greater than zero", label)
	}
}

func checkPercent(result ValidationResult, field string, value *float64, label string) {
	switch {
	case value == nil:
		result[field] = fmt.Sprintf("%s is required", label)
	case math.IsNaN(*value) || math.IsInf(*value, 0):
		result[field] = fmt.Sprintf("%s must be a finite number", label)
	case *value < 0 || *value > 100:
		result[field] = fmt.Sprintf("%s must be between 0 and 100", label)
	}
}

// WaterVolumeLiters applies the extraction formula:
//
//	V = M * F_b * (1 - L_c/100) * E_p * (MC/100) * (eta/100) / rho_w
//
// where M is the harvested mass, F_b the biomass factor, L_c the loss
// fraction, E_p the processing factor, MC the moisture content, eta the
// recovery efficiency, and rho_w the density of water (1 kg/L).
//
// Callers must gate on Validate first; the formula itself performs no
// rounding and no range checks.
func (in *ExtractionInput) WaterVolumeLiters() float64 {
	return *in.TotalMassKg *
		*in.BiomassFactor *
		(1 - *in.LossFractionPercent/100) *
		*in.ProcessingFactor *
		(*in.MoistureContentPercent / 100) *
		(*in.RecoveryEfficiencyPercent / 100) /
		WaterDensityKgPerLiter
}

// ToRecord builds a persisted estimate record from a validated input
// and its computed volume.
func (in *ExtractionInput) ToRecord(volumeLiters float64, formatted string) *EstimateRecord {
	return &EstimateRecord{
		CropID:                    in.SelectedCropID,
		TotalMassKg:               *in.TotalMassKg,
		LossFractionPercent:       *in.LossFractionPercent,
		ProcessingFactor:          *in.ProcessingFactor,
		MoistureContentPercent:    *in.MoistureContentPercent,
		RecoveryEfficiencyPercent: *in.RecoveryEfficiencyPercent,
		BiomassFactor:             *in.BiomassFactor,
		WaterVolumeLiters:         volumeLiters,
		FormattedVolume:           formatted,
		CreatedAt:                 time.Now().UTC(),
	}
}

// InvalidInputError represents a single-field validation failure.
type InvalidInputError struct {
	Field   string
	Value   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsTransient returns false as validation errors are permanent
func (e *InvalidInputError) IsTransient() bool {
	return false
}
