package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/services"
)

// MappingHandler handles persisted mapping CRUD and profile validation
type MappingHandler struct {
	logger   *logger.Logger
	mappings services.MappingService
	metrics  *Metrics
}

// NewMappingHandler creates a new mapping handler
func NewMappingHandler(logger *logger.Logger, mappings services.MappingService, metrics *Metrics) *MappingHandler {
	return &MappingHandler{
		logger:   logger,
		mappings: mappings,
		metrics:  metrics,
	}
}

// MappingWriteRequest is the write shape for persisted mappings
type MappingWriteRequest struct {
	SourceField models.Field `json:"source_field"`
	TargetField models.Field `json:"target_field"`
}

// HandleCreateMapping handles POST /api/v1/profiles/{id}/mappings
func (h *MappingHandler) HandleCreateMapping(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["id"]

	var req MappingWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	mapping, err := h.mappings.CreateMapping(r.Context(), &models.Mapping{
		ProfileID:   profileID,
		SourceField: req.SourceField,
		TargetField: req.TargetField,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, mapping)
}

// HandleListMappings handles GET /api/v1/profiles/{id}/mappings
func (h *MappingHandler) HandleListMappings(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["id"]

	mappings, err := h.mappings.GetMappingsByProfile(r.Context(), profileID)
	if err != nil {
		h.logger.WithProfile(profileID).WithError(err).Error("Failed to list mappings")
		respondError(w, http.StatusInternalServerError, "failed to list mappings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"mappings": mappings})
}

// HandleGetMapping handles GET /api/v1/mappings/{mappingId}
func (h *MappingHandler) HandleGetMapping(w http.ResponseWriter, r *http.Request) {
	mappingID := mux.Vars(r)["mappingId"]

	mapping, err := h.mappings.GetMapping(r.Context(), mappingID)
	if err != nil {
		respondNotFoundOrError(w, h.logger, err, "mapping")
		return
	}

	respondJSON(w, http.StatusOK, mapping)
}

// HandleUpdateMapping handles PUT /api/v1/mappings/{mappingId}
func (h *MappingHandler) HandleUpdateMapping(w http.ResponseWriter, r *http.Request) {
	mappingID := mux.Vars(r)["mappingId"]

	var req MappingWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	mapping, err := h.mappings.UpdateMapping(r.Context(), &models.Mapping{
		ID:          mappingID,
		SourceField: req.SourceField,
		TargetField: req.TargetField,
		IsActive:    true,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, mapping)
}

// HandleDeleteMapping handles DELETE /api/v1/mappings/{mappingId}
func (h *MappingHandler) HandleDeleteMapping(w http.ResponseWriter, r *http.Request) {
	mappingID := mux.Vars(r)["mappingId"]

	if err := h.mappings.DeleteMapping(r.Context(), mappingID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// HandleValidateProfile handles GET /api/v1/profiles/{id}/validation
func (h *MappingHandler) HandleValidateProfile(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["id"]

	summary, err := h.mappings.ValidateProfile(r.Context(), profileID)
	if err != nil {
		h.logger.WithProfile(profileID).WithError(err).Error("Profile validation failed")
		respondError(w, http.StatusInternalServerError, "failed to validate profile")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
