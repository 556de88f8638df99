package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/repositories"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/services"
)

// SchemaHandler handles uploaded schema snapshots. Introspection happens in
// a separate proxy; this service only receives and normalizes its output.
type SchemaHandler struct {
	logger    *logger.Logger
	profiles  repositories.ConnectionProfileRepository
	snapshots repositories.SchemaSnapshotRepository
	cache     *services.CacheService
	queue     *services.ValidationQueue
	metrics   *Metrics
}

// NewSchemaHandler creates a new schema snapshot handler
func NewSchemaHandler(
	logger *logger.Logger,
	profiles repositories.ConnectionProfileRepository,
	snapshots repositories.SchemaSnapshotRepository,
	cache *services.CacheService,
	queue *services.ValidationQueue,
	metrics *Metrics,
) *SchemaHandler {
	return &SchemaHandler{
		logger:    logger,
		profiles:  profiles,
		snapshots: snapshots,
		cache:     cache,
		queue:     queue,
		metrics:   metrics,
	}
}

// SchemaColumn is one introspected column as the proxy reports it.
// Constraint tokens arrive as free strings and are normalized here.
type SchemaColumn struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Nullable    bool     `json:"nullable"`
	Constraints []string `json:"constraints"`
	Schema      string   `json:"schema,omitempty"`
	Table       string   `json:"table,omitempty"`
}

// SchemaUploadRequest is the write shape for schema snapshots
type SchemaUploadRequest struct {
	Columns []SchemaColumn `json:"columns"`
}

// HandleUploadSchema handles PUT /api/v1/profiles/{id}/schema
func (h *SchemaHandler) HandleUploadSchema(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["id"]

	if _, err := h.profiles.GetByID(r.Context(), profileID); err != nil {
		respondNotFoundOrError(w, h.logger, err, "profile")
		return
	}

	var req SchemaUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Columns) == 0 {
		respondError(w, http.StatusBadRequest, "schema snapshot must contain at least one column")
		return
	}

	fields := make(models.FieldList, 0, len(req.Columns))
	for _, column := range req.Columns {
		if column.Name == "" || column.Type == "" {
			respondError(w, http.StatusBadRequest, "every column needs a name and a type")
			return
		}
		fields = append(fields, models.Field{
			ID:          uuid.New().String(),
			Name:        column.Name,
			Type:        column.Type,
			Nullable:    column.Nullable,
			Constraints: models.NormalizeConstraints(column.Constraints),
			Origin:      models.OriginDatabase,
			Schema:      column.Schema,
			Table:       column.Table,
		})
	}

	snapshot := &models.SchemaSnapshot{
		ProfileID:  profileID,
		Fields:     fields,
		SourceHash: hashColumns(req.Columns),
		FetchedAt:  time.Now(),
	}

	if err := h.snapshots.Upsert(r.Context(), snapshot); err != nil {
		h.logger.WithProfile(profileID).WithError(err).Error("Failed to store schema snapshot")
		respondError(w, http.StatusInternalServerError, "failed to store schema snapshot")
		return
	}

	if err := h.cache.InvalidateProfile(r.Context(), profileID); err != nil {
		h.logger.WithProfile(profileID).WithError(err).Warn("Cache invalidation failed after schema upload")
	}
	if err := h.cache.SetSchema(r.Context(), profileID, fields); err != nil {
		h.logger.WithProfile(profileID).WithError(err).Warn("Failed to cache schema snapshot")
	}

	// Existing mappings may now point at renamed or retyped columns;
	// recompute the summary off the request path.
	if err := h.queue.Enqueue(r.Context(), profileID, "schema_update"); err != nil {
		h.logger.WithProfile(profileID).WithError(err).Warn("Failed to enqueue revalidation after schema upload")
	}

	h.logger.WithProfile(profileID).
		WithField("schema_id", snapshot.ID).
		WithField("columns", len(fields)).
		Info("Schema snapshot stored")
	respondJSON(w, http.StatusOK, snapshot)
}

// HandleGetSchema handles GET /api/v1/profiles/{id}/schema
func (h *SchemaHandler) HandleGetSchema(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["id"]

	if fields, err := h.cache.GetSchema(r.Context(), profileID); err == nil {
		h.metrics.ObserveCache("hit")
		respondJSON(w, http.StatusOK, map[string]interface{}{"profile_id": profileID, "fields": fields})
		return
	}
	h.metrics.ObserveCache("miss")

	snapshot, err := h.snapshots.GetByProfile(r.Context(), profileID)
	if err != nil {
		respondNotFoundOrError(w, h.logger, err, "schema snapshot")
		return
	}

	if err := h.cache.SetSchema(r.Context(), profileID, snapshot.Fields); err != nil {
		h.logger.WithProfile(profileID).WithError(err).Warn("Failed to cache schema snapshot")
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// hashColumns fingerprints an upload so unchanged re-uploads are detectable
func hashColumns(columns []SchemaColumn) string {
	data, err := json.Marshal(columns)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
