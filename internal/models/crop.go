package models

import (
	"time"
)

// CropProfile represents one crop entry in the extraction catalog.
// BiomassFactor and MoistureContentPercent come from the literature
// and are treated as fixed reference values.
type CropProfile struct {
	ID                     string    `json:"id" db:"id"`
	DisplayName            string    `json:"display_name" db:"display_name"`
	ScientificName         string    `json:"scientific_name" db:"scientific_name"`
	BiomassFactor          float64   `json:"biomass_factor" db:"biomass_factor"`
	MoistureContentPercent float64   `json:"moisture_content_percent" db:"moisture_content_percent"`
	CreatedAt              time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt              time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// EstimateRecord represents a persisted extraction estimate:
// the six inputs that produced it plus the derived volume.
type EstimateRecord struct {
	ID                        int64     `json:"id" db:"id"`
	CropID                    string    `json:"crop_id" db:"crop_id"`
	TotalMassKg               float64   `json:"total_mass_kg" db:"total_mass_kg"`
	LossFractionPercent       float64   `json:"loss_fraction_percent" db:"loss_fraction_percent"`
	ProcessingFactor          float64   `json:"processing_factor" db:"processing_factor"`
	MoistureContentPercent    float64   `json:"moisture_content_percent" db:"moisture_content_percent"`
	RecoveryEfficiencyPercent float64   `json:"recovery_efficiency_percent" db:"recovery_efficiency_percent"`
	BiomassFactor             float64   `json:"biomass_factor" db:"biomass_factor"`
	WaterVolumeLiters         float64   `json:"water_volume_liters" db:"water_volume_liters"`
	FormattedVolume           string    `json:"formatted_volume" db:"formatted_volume"`
	CreatedAt                 time.Time `json:"created_at" db:"created_at"`
}
