package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/repositories"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/security"
)

// ConnectionHandler handles connection profile CRUD
type ConnectionHandler struct {
	logger    *logger.Logger
	profiles  repositories.ConnectionProfileRepository
	audits    repositories.AuditLogRepository
	secrets   *security.SecretBox
	validator *models.ValidationService
}

// NewConnectionHandler creates a new connection profile handler
func NewConnectionHandler(
	logger *logger.Logger,
	profiles repositories.ConnectionProfileRepository,
	audits repositories.AuditLogRepository,
	secrets *security.SecretBox,
	validator *models.ValidationService,
) *ConnectionHandler {
	return &ConnectionHandler{
		logger:    logger,
		profiles:  profiles,
		audits:    audits,
		secrets:   secrets,
		validator: validator,
	}
}

// ProfileRequest is the write shape for connection profiles. The secret
// arrives in plaintext over TLS and is stored encrypted; it is never echoed
// back in responses.
type ProfileRequest struct {
	Name         string `json:"name"`
	Driver       string `json:"driver"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	DatabaseName string `json:"database_name"`
	Username     string `json:"username"`
	Secret       string `json:"secret,omitempty"`
}

// HandleCreateProfile handles POST /api/v1/profiles
func (h *ConnectionHandler) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	profile := &models.ConnectionProfile{
		Name:         req.Name,
		Driver:       req.Driver,
		Host:         req.Host,
		Port:         req.Port,
		DatabaseName: req.DatabaseName,
		Username:     req.Username,
	}

	if err := h.validator.ValidateStruct(profile); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Secret != "" {
		encrypted, err := h.secrets.Encrypt(req.Secret)
		if err != nil {
			h.logger.WithError(err).Error("Failed to encrypt profile secret")
			respondError(w, http.StatusInternalServerError, "failed to store profile secret")
			return
		}
		profile.EncryptedSecret = encrypted
	}

	if err := h.profiles.Create(r.Context(), profile); err != nil {
		h.logger.WithError(err).Error("Failed to create connection profile")
		respondError(w, http.StatusConflict, "failed to create profile: "+err.Error())
		return
	}

	h.recordAudit(r, "create", profile.ID, nil, profile)
	h.logger.WithProfile(profile.ID).Info("Connection profile created")
	respondJSON(w, http.StatusCreated, profile)
}

// HandleListProfiles handles GET /api/v1/profiles
func (h *ConnectionHandler) HandleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list connection profiles")
		respondError(w, http.StatusInternalServerError, "failed to list profiles")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"profiles": profiles})
}

// HandleGetProfile handles GET /api/v1/profiles/{id}
func (h *ConnectionHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	profile, err := h.profiles.GetByID(r.Context(), id)
	if err != nil {
		respondNotFoundOrError(w, h.logger, err, "profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// HandleUpdateProfile handles PUT /api/v1/profiles/{id}
func (h *ConnectionHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	existing, err := h.profiles.GetByID(r.Context(), id)
	if err != nil {
		respondNotFoundOrError(w, h.logger, err, "profile")
		return
	}

	var req ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	old := *existing
	existing.Name = req.Name
	existing.Driver = req.Driver
	existing.Host = req.Host
	existing.Port = req.Port
	existing.DatabaseName = req.DatabaseName
	existing.Username = req.Username
	existing.UpdatedAt = time.Now()

	if err := h.validator.ValidateStruct(existing); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// An omitted secret keeps the stored one.
	if req.Secret != "" {
		encrypted, err := h.secrets.Encrypt(req.Secret)
		if err != nil {
			h.logger.WithError(err).Error("Failed to encrypt profile secret")
			respondError(w, http.StatusInternalServerError, "failed to store profile secret")
			return
		}
		existing.EncryptedSecret = encrypted
	}

	if err := h.profiles.Update(r.Context(), existing); err != nil {
		h.logger.WithProfile(id).WithError(err).Error("Failed to update connection profile")
		respondError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	h.recordAudit(r, "update", id, &old, existing)
	respondJSON(w, http.StatusOK, existing)
}

// HandleDeleteProfile handles DELETE /api/v1/profiles/{id}
func (h *ConnectionHandler) HandleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	existing, err := h.profiles.GetByID(r.Context(), id)
	if err != nil {
		respondNotFoundOrError(w, h.logger, err, "profile")
		return
	}

	if err := h.profiles.Delete(r.Context(), id); err != nil {
		h.logger.WithProfile(id).WithError(err).Error("Failed to delete connection profile")
		respondError(w, http.StatusInternalServerError, "failed to delete profile")
		return
	}

	h.recordAudit(r, "delete", id, existing, nil)
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ConnectionHandler) recordAudit(r *http.Request, action, resourceID string, oldValue, newValue interface{}) {
	entry := &models.AuditLog{
		Action:       action,
		ResourceType: "connection_profile",
		ResourceID:   resourceID,
		OldValues:    auditValues(oldValue),
		NewValues:    auditValues(newValue),
		Timestamp:    time.Now(),
	}
	if err := h.audits.Create(r.Context(), entry); err != nil {
		h.logger.WithError(err).Warn("Failed to write audit entry")
	}
}

// respondNotFoundOrError maps gorm's not-found error to 404 and everything
// else to 500
func respondNotFoundOrError(w http.ResponseWriter, log *logger.Logger, err error, resource string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, resource+" not found")
		return
	}
	log.WithError(err).Error("Storage lookup failed")
	respondError(w, http.StatusInternalServerError, "failed to load "+resource)
}
