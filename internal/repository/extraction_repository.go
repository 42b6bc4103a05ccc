package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"extraction-platform/internal/models"
	"extraction-platform/pkg/database"
	"extraction-platform/pkg/logging"
	"extraction-platform/pkg/metrics"
)

// ExtractionRepository provides data access for crop profiles and
// computed extraction estimates
type ExtractionRepository interface {
	// Crop profile operations
	UpsertCrop(ctx context.Context, crop *models.CropProfile) error
	GetCrop(ctx context.Context, id string) (*models.CropProfile, error)
	ListCrops(ctx context.Context) ([]*models.CropProfile, error)

	// Estimate operations
	SaveEstimate(ctx context.Context, record *models.EstimateRecord) error
	GetEstimates(ctx context.Context, filter EstimateFilter) ([]*models.EstimateRecord, int, error)

	// Utility operations
	HealthCheck(ctx context.Context) error
}

// EstimateFilter defines filters for querying estimate history
type EstimateFilter struct {
	CropID *string
	Since  *time.Time
	Limit  int
	Offset int
}

type extractionRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewExtractionRepository creates a new extraction repository
func NewExtractionRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) ExtractionRepository {
	return &extractionRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// UpsertCrop creates or updates a crop profile
func (r *extractionRepository) UpsertCrop(ctx context.Context, crop *models.CropProfile) error {
	query := `
		INSERT INTO crop_profiles (
			id, display_name, scientific_name, biomass_factor, moisture_content_percent,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			scientific_name = EXCLUDED.scientific_name,
			biomass_factor = EXCLUDED.biomass_factor,
			moisture_content_percent = EXCLUDED.moisture_content_percent,
			updated_at = EXCLUDED.updated_at
	`

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, "upsert_crop", query,
		crop.ID,
		crop.DisplayName,
		crop.ScientificName,
		crop.BiomassFactor,
		crop.MoistureContentPercent,
		now,
		now,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert crop profile: %w", err)
	}

	return nil
}

// GetCrop retrieves a crop profile by id
func (r *extractionRepository) GetCrop(ctx context.Context, id string) (*models.CropProfile, error) {
	query := `
		SELECT id, display_name, scientific_name, biomass_factor, moisture_content_percent,
		       created_at, updated_at
		FROM crop_profiles
		WHERE id = $1
	`

	var crop models.CropProfile
	err := r.db.GetContext(ctx, "get_crop", &crop, query, id)

	if err == sql.ErrNoRows {
		return nil, &NotFoundError{
			Resource: "crop_profile",
			ID:       id,
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get crop profile: %w", err)
	}

	return &crop, nil
}

// ListCrops retrieves all crop profiles in catalog order
func (r *extractionRepository) ListCrops(ctx context.Context) ([]*models.CropProfile, error) {
	query := `
		SELECT id, display_name, scientific_name, biomass_factor, moisture_content_percent,
		       created_at, updated_at
		FROM crop_profiles
		ORDER BY created_at, id
	`

	var crops []*models.CropProfile
	if err := r.db.SelectContext(ctx, "list_crops", &crops, query); err != nil {
		return nil, fmt.Errorf("failed to list crop profiles: %w", err)
	}

	return crops, nil
}

// SaveEstimate persists a computed extraction estimate
func (r *extractionRepository) SaveEstimate(ctx context.Context, record *models.EstimateRecord) error {
	query := `
		INSERT INTO extraction_estimates (
			crop_id, total_mass_kg, loss_fraction_percent, processing_factor,
			moisture_content_percent, recovery_efficiency_percent, biomass_factor,
			water_volume_liters, formatted_volume, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		record.CropID,
		record.TotalMassKg,
		record.LossFractionPercent,
		record.ProcessingFactor,
		record.MoistureContentPercent,
		record.RecoveryEfficiencyPercent,
		record.BiomassFactor,
		record.WaterVolumeLiters,
		record.FormattedVolume,
		record.CreatedAt,
	).Scan(&record.ID)

	if err != nil {
		r.metrics.RecordDBError("insert_estimate_error")
		return fmt.Errorf("failed to save estimate: %w", err)
	}

	r.logger.Debug(ctx, "[REPO_SAVE_ESTIMATE] Estimate persisted", logging.Fields{
		"id":                  record.ID,
		"crop_id":             record.CropID,
		"water_volume_liters": record.WaterVolumeLiters,
	})

	return nil
}

// GetEstimates retrieves estimate history with filtering and pagination
func (r *extractionRepository) GetEstimates(ctx context.Context, filter EstimateFilter) ([]*models.EstimateRecord, int, error) {
	query := `
		SELECT id, crop_id, total_mass_kg, loss_fraction_percent, processing_factor,
		       moisture_content_percent, recovery_efficiency_percent, biomass_factor,
		       water_volume_liters, formatted_volume, created_at
		FROM extraction_estimates
		WHERE 1=1
	`
	args := []interface{}{}
	argNum := 1

	if filter.CropID != nil {
		query += fmt.Sprintf(" AND crop_id = $%d", argNum)
		args = append(args, *filter.CropID)
		argNum++
	}

	if filter.Since != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}

	// Get total count
	countQuery := "SELECT COUNT(*) FROM (" + query + ") AS count_query"
	var totalCount int
	err := r.db.GetContext(ctx, "count_estimates", &totalCount, countQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count estimates: %w", err)
	}

	// Add ordering and pagination
	query += " ORDER BY created_at DESC, id DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filter.Limit, filter.Offset)

	var estimates []*models.EstimateRecord
	err = r.db.SelectContext(ctx, "get_estimates", &estimates, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get estimates: %w", err)
	}

	return estimates, totalCount, nil
}

// HealthCheck performs a repository health check
func (r *extractionRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) IsTransient() bool {
	return false
}
