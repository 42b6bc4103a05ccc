package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"extraction-platform/internal/catalog"
	"extraction-platform/internal/models"
	"extraction-platform/internal/repository"
	"extraction-platform/internal/services"
	"extraction-platform/pkg/logging"
	"extraction-platform/pkg/metrics"
)

// ExtractionHandler handles extraction API endpoints
type ExtractionHandler struct {
	calculator *services.CalculatorService
	history    *services.HistoryService
	logger     *logging.StructuredLogger
	metrics    *metrics.Collector
}

// NewExtractionHandler creates a new extraction handler
func NewExtractionHandler(
	calculator *services.CalculatorService,
	history *services.HistoryService,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *ExtractionHandler {
	return &ExtractionHandler{
		calculator: calculator,
		history:    history,
		logger:     logger,
		metrics:    metricsCollector,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ValidationErrorResponse carries every failing field of one request
type ValidationErrorResponse struct {
	Error       string                  `json:"error"`
	Message     string                  `json:"message"`
	Code        int                     `json:"code"`
	FieldErrors models.ValidationResult `json:"field_errors"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

// EstimateWater handles POST /api/estimate
func (h *ExtractionHandler) EstimateWater(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/estimate").Observe(duration.Seconds())
	}()

	var input models.ExtractionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.metrics.RecordAPIError("bad_request", "/api/estimate")
		h.sendError(w, r, "invalid JSON body", http.StatusBadRequest)
		return
	}

	// A crop id pre-fills the catalog-owned fields unless the caller
	// supplied explicit overrides.
	if input.SelectedCropID != "" {
		profile, ok := catalog.Lookup(input.SelectedCropID)
		if !ok {
			profile = catalog.Default()
			input.SelectedCropID = profile.ID
			h.metrics.RecordCatalogLookup("fallback")
		} else {
			h.metrics.RecordCatalogLookup("hit")
		}

		if input.BiomassFactor == nil {
			biomass := profile.BiomassFactor
			input.BiomassFactor = &biomass
		}
		if input.MoistureContentPercent == nil {
			moisture := profile.MoistureContentPercent
			input.MoistureContentPercent = &moisture
		}
	}

	result, validation := h.calculator.Estimate(ctx, input)
	if !validation.Valid() {
		h.metrics.RecordAPIRequest("/api/estimate", "POST", strconv.Itoa(http.StatusUnprocessableEntity))
		h.sendJSON(w, ValidationErrorResponse{
			Error:       http.StatusText(http.StatusUnprocessableEntity),
			Message:     "one or more input fields are invalid",
			Code:        http.StatusUnprocessableEntity,
			FieldErrors: validation,
		}, http.StatusUnprocessableEntity)
		return
	}

	// History is best-effort: a failed write never blocks the estimate.
	if h.history != nil {
		record := input.ToRecord(result.WaterVolumeLiters, result.FormattedVolume)
		if err := h.history.SaveEstimate(ctx, record); err != nil {
			h.logger.Error(ctx, "[API_ESTIMATE_HISTORY_ERROR] Failed to persist estimate", logging.Fields{
				"crop_id": input.SelectedCropID,
			}, err)
		}
	}

	h.metrics.RecordAPIRequest("/api/estimate", "POST", "200")
	h.sendJSON(w, result, http.StatusOK)
}

// ListCrops handles GET /api/crops
func (h *ExtractionHandler) ListCrops(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/crops").Observe(duration.Seconds())
	}()

	h.metrics.RecordAPIRequest("/api/crops", "GET", "200")
	h.sendJSON(w, catalog.Profiles(), http.StatusOK)
}

// GetCrop handles GET /api/crops/{id}
func (h *ExtractionHandler) GetCrop(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	profile, ok := catalog.Lookup(id)
	if !ok {
		h.metrics.RecordAPIError("not_found", "/api/crops/{id}")
		h.sendError(w, r, "crop profile not found: "+id, http.StatusNotFound)
		return
	}

	h.metrics.RecordAPIRequest("/api/crops/{id}", "GET", "200")
	h.sendJSON(w, profile, http.StatusOK)
}

// GetEstimates handles GET /api/estimates
func (h *ExtractionHandler) GetEstimates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/estimates").Observe(duration.Seconds())
	}()

	cropID := r.URL.Query().Get("crop_id")
	sinceStr := r.URL.Query().Get("since")
	pageStr := r.URL.Query().Get("page")
	limitStr := r.URL.Query().Get("limit")

	// Default pagination
	page := 1
	limit := 100

	if pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			limit = l
		}
	}

	offset := (page - 1) * limit

	filter := repository.EstimateFilter{
		Limit:  limit,
		Offset: offset,
	}

	if cropID != "" {
		filter.CropID = &cropID
	}

	if sinceStr != "" {
		since, err := time.Parse("2006-01-02", sinceStr)
		if err != nil {
			h.sendError(w, r, "invalid since format, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.Since = &since
	}

	estimates, total, err := h.history.GetEstimates(ctx, filter)
	if err != nil {
		h.logger.Error(ctx, "[API_GET_ESTIMATES_ERROR] Failed to get estimates", logging.Fields{
			"filter": filter,
		}, err)
		h.metrics.RecordAPIError("internal_error", "/api/estimates")
		h.sendError(w, r, "failed to retrieve estimates", http.StatusInternalServerError)
		return
	}

	totalPages := (total + limit - 1) / limit

	response := PaginatedResponse{
		Data:       estimates,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}

	h.metrics.RecordAPIRequest("/api/estimates", "GET", "200")
	h.sendJSON(w, response, http.StatusOK)
}

// HealthCheck handles GET /health
func (h *ExtractionHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// sendJSON sends a JSON response
func (h *ExtractionHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *ExtractionHandler) sendError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all extraction API routes
func (h *ExtractionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/estimate", h.EstimateWater).Methods("POST")
	router.HandleFunc("/api/crops", h.ListCrops).Methods("GET")
	router.HandleFunc("/api/crops/{id}", h.GetCrop).Methods("GET")
	router.HandleFunc("/api/estimates", h.GetEstimates).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}
