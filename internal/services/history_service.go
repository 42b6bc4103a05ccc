package services

import (
	"context"

	"extraction-platform/internal/models"
	"extraction-platform/internal/repository"
	"extraction-platform/pkg/logging"
	"extraction-platform/pkg/metrics"
)

// HistoryService handles persisted estimate records
type HistoryService struct {
	repo    repository.ExtractionRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewHistoryService creates a new history service
func NewHistoryService(repo repository.ExtractionRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *HistoryService {
	return &HistoryService{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// SaveEstimate persists one computed estimate
func (s *HistoryService) SaveEstimate(ctx context.Context, record *models.EstimateRecord) error {
	return s.repo.SaveEstimate(ctx, record)
}

// GetEstimates retrieves estimate history with filtering
func (s *HistoryService) GetEstimates(ctx context.Context, filter repository.EstimateFilter) ([]*models.EstimateRecord, int, error) {
	return s.repo.GetEstimates(ctx, filter)
}
