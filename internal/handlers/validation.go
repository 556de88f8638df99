package handlers

import (
	"net/http"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/services"
)

// ValidationHandler exposes the stateless validation engine over HTTP. The
// endpoints evaluate whatever the request carries; nothing here touches
// storage, so the browser can validate unsaved drafts.
type ValidationHandler struct {
	logger     *logger.Logger
	resolver   services.CompatibilityResolver
	evaluator  services.MappingEvaluator
	aggregator services.MappingAggregator
	extraction services.FieldExtractionService
	metrics    *Metrics
}

// NewValidationHandler creates a new validation handler
func NewValidationHandler(
	logger *logger.Logger,
	resolver services.CompatibilityResolver,
	evaluator services.MappingEvaluator,
	aggregator services.MappingAggregator,
	extraction services.FieldExtractionService,
	metrics *Metrics,
) *ValidationHandler {
	return &ValidationHandler{
		logger:     logger,
		resolver:   resolver,
		evaluator:  evaluator,
		aggregator: aggregator,
		extraction: extraction,
		metrics:    metrics,
	}
}

// CompatibilityRequest asks for a verdict on one type pairing
type CompatibilityRequest struct {
	SourceType string `json:"source_type"`
	TargetType string `json:"target_type"`
}

// HandleCheckCompatibility handles POST /api/v1/validation/compatibility
func (h *ValidationHandler) HandleCheckCompatibility(w http.ResponseWriter, r *http.Request) {
	var req CompatibilityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.SourceType == "" || req.TargetType == "" {
		respondError(w, http.StatusBadRequest, "source_type and target_type are required")
		return
	}

	respondJSON(w, http.StatusOK, h.resolver.Resolve(req.SourceType, req.TargetType))
}

// MappingRequest asks for a full rule evaluation of one draft mapping
type MappingRequest struct {
	SourceField models.Field `json:"source_field"`
	TargetField models.Field `json:"target_field"`
}

// HandleValidateMapping handles POST /api/v1/validation/mapping
func (h *ValidationHandler) HandleValidateMapping(w http.ResponseWriter, r *http.Request) {
	var req MappingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result := h.evaluator.EvaluateMapping(models.Mapping{
		SourceField: req.SourceField,
		TargetField: req.TargetField,
	})

	h.metrics.ObserveValidation(validationStatus(result), result.Score)
	respondJSON(w, http.StatusOK, result)
}

// SummaryRequest asks for a configuration-level summary of a draft set
type SummaryRequest struct {
	Mappings []models.Mapping `json:"mappings"`
}

// HandleSummarize handles POST /api/v1/validation/summary
func (h *ValidationHandler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.aggregator.SummarizeMappings(req.Mappings))
}

// ExtractionRequest carries a sample API payload to derive fields from
type ExtractionRequest struct {
	Payload map[string]interface{} `json:"payload"`
}

// HandleExtractFields handles POST /api/v1/extraction/fields
func (h *ValidationHandler) HandleExtractFields(w http.ResponseWriter, r *http.Request) {
	var req ExtractionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	fields, err := h.extraction.ExtractFields(r.Context(), req.Payload)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"fields": fields})
}

func validationStatus(result models.ValidationResult) string {
	switch {
	case len(result.Errors) > 0:
		return "error"
	case len(result.Warnings) > 0:
		return "warning"
	default:
		return "valid"
	}
}
