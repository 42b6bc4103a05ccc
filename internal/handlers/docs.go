package handlers

import (
	"encoding/json"
	"net/http"
)

// OpenAPISpec returns the OpenAPI 3.0 specification for the Extraction Platform API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "Extraction Platform API",
			"description": "Estimates the volume of water recoverable from harvested crop biomass using literature-sourced crop profiles",
			"version":     "1.0.0",
			"contact": map[string]string{
				"name": "Extraction Platform Team",
			},
		},
		"servers": []map[string]string{
			{"url": "http://localhost:8080", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/api/estimate": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "Compute an extraction estimate",
					"description": "Validates the six numeric inputs and returns the recoverable water volume with unit-aware formatting; returns every failing field at once on invalid input",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]string{"$ref": "#/components/schemas/ExtractionInput"},
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]string{"description": "Computed estimate with raw liters and formatted volume"},
						"400": map[string]string{"description": "Malformed JSON body"},
						"422": map[string]string{"description": "Validation failure with per-field error messages"},
					},
				},
			},
			"/api/crops": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "List crop profiles",
					"description": "Returns the crop catalog in its defined order",
					"responses": map[string]interface{}{
						"200": map[string]string{"description": "Ordered list of crop profiles"},
					},
				},
			},
			"/api/crops/{id}": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Get a crop profile",
					"parameters": []map[string]interface{}{
						{
							"name":        "id",
							"in":          "path",
							"description": "Crop identifier, e.g. tunisian-olive",
							"required":    true,
							"schema":      map[string]string{"type": "string"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]string{"description": "Crop profile"},
						"404": map[string]string{"description": "Unknown crop identifier"},
					},
				},
			},
			"/api/estimates": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "List computed estimates",
					"description": "Paginated history of persisted estimates",
					"parameters": []map[string]interface{}{
						{
							"name":        "crop_id",
							"in":          "query",
							"description": "Filter by crop identifier",
							"required":    false,
							"schema":      map[string]string{"type": "string"},
						},
						{
							"name":        "since",
							"in":          "query",
							"description": "Filter by creation date (YYYY-MM-DD)",
							"required":    false,
							"schema":      map[string]string{"type": "string"},
						},
						{
							"name":        "page",
							"in":          "query",
							"description": "Page number (default 1)",
							"required":    false,
							"schema":      map[string]string{"type": "integer"},
						},
						{
							"name":        "limit",
							"in":          "query",
							"description": "Page size (default 100, max 1000)",
							"required":    false,
							"schema":      map[string]string{"type": "integer"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]string{"description": "Paginated estimate records"},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Health check",
					"responses": map[string]interface{}{
						"200": map[string]string{"description": "Service is healthy"},
					},
				},
			},
		},
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"ExtractionInput": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"selected_crop_id":            map[string]string{"type": "string", "description": "Pre-fills biomass factor and moisture content from the catalog"},
						"total_mass_kg":               map[string]string{"type": "number", "description": "Harvested fruit mass, must be positive"},
						"loss_fraction_percent":       map[string]string{"type": "number", "description": "Handling loss, 0-100"},
						"processing_factor":           map[string]string{"type": "number", "description": "Mechanical enhancement multiplier, must be positive"},
						"moisture_content_percent":    map[string]string{"type": "number", "description": "Leaf moisture content, 0-100"},
						"recovery_efficiency_percent": map[string]string{"type": "number", "description": "Captured fraction of available water, 0-100"},
						"biomass_factor":              map[string]string{"type": "number", "description": "Leaf-to-fruit mass ratio, must be positive"},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}
