package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/repositories"
)

// mappingService implements MappingService. Every mutation follows the same
// sequence: persist, audit, invalidate cached summaries, then nudge the
// profile's debounced watcher so the summary is recomputed once the edit
// burst settles.
type mappingService struct {
	logger     *logger.Logger
	mappings   repositories.MappingRepository
	profiles   repositories.ConnectionProfileRepository
	audits     repositories.AuditLogRepository
	aggregator MappingAggregator
	cache      *CacheService
	queue      *ValidationQueue
	validator  *models.ValidationService
	errors     *ErrorHandler

	mu       sync.Mutex
	watchers map[string]*ValidationWatcher
}

// NewMappingService creates a new mapping service and installs the
// revalidation queue handler
func NewMappingService(
	logger *logger.Logger,
	mappings repositories.MappingRepository,
	profiles repositories.ConnectionProfileRepository,
	audits repositories.AuditLogRepository,
	aggregator MappingAggregator,
	cache *CacheService,
	queue *ValidationQueue,
	validator *models.ValidationService,
	errors *ErrorHandler,
) MappingService {
	s := &mappingService{
		logger:     logger,
		mappings:   mappings,
		profiles:   profiles,
		audits:     audits,
		aggregator: aggregator,
		cache:      cache,
		queue:      queue,
		validator:  validator,
		errors:     errors,
		watchers:   make(map[string]*ValidationWatcher),
	}
	queue.SetHandler(s.handleRevalidation)
	return s
}

// CreateMapping persists a new mapping for a profile
func (s *mappingService) CreateMapping(ctx context.Context, mapping *models.Mapping) (*models.Mapping, error) {
	if err := s.validator.ValidateStruct(mapping); err != nil {
		return nil, fmt.Errorf("mapping validation failed: %w", err)
	}
	if _, err := s.profiles.GetByID(ctx, mapping.ProfileID); err != nil {
		return nil, fmt.Errorf("profile %s not found: %w", mapping.ProfileID, err)
	}

	if mapping.ID == "" {
		mapping.ID = uuid.New().String()
	}
	mapping.IsActive = true

	if err := s.mappings.Create(ctx, mapping); err != nil {
		return nil, fmt.Errorf("failed to create mapping: %w", err)
	}

	s.recordAudit(ctx, "create", mapping.ID, nil, mapping)
	s.afterMutation(ctx, mapping.ProfileID)

	s.logger.WithProfile(mapping.ProfileID).WithField("mapping_id", mapping.ID).Info("Mapping created")
	return mapping, nil
}

// UpdateMapping updates an existing mapping
func (s *mappingService) UpdateMapping(ctx context.Context, mapping *models.Mapping) (*models.Mapping, error) {
	if err := s.validator.ValidateStruct(mapping); err != nil {
		return nil, fmt.Errorf("mapping validation failed: %w", err)
	}

	existing, err := s.mappings.GetByID(ctx, mapping.ID)
	if err != nil {
		return nil, fmt.Errorf("mapping %s not found: %w", mapping.ID, err)
	}

	mapping.ProfileID = existing.ProfileID
	if err := s.mappings.Update(ctx, mapping); err != nil {
		return nil, fmt.Errorf("failed to update mapping: %w", err)
	}

	s.recordAudit(ctx, "update", mapping.ID, existing, mapping)
	s.afterMutation(ctx, mapping.ProfileID)

	s.logger.WithProfile(mapping.ProfileID).WithField("mapping_id", mapping.ID).Info("Mapping updated")
	return mapping, nil
}

// DeleteMapping soft deletes a mapping
func (s *mappingService) DeleteMapping(ctx context.Context, mappingID string) error {
	existing, err := s.mappings.GetByID(ctx, mappingID)
	if err != nil {
		return fmt.Errorf("mapping %s not found: %w", mappingID, err)
	}

	if err := s.mappings.Delete(ctx, mappingID); err != nil {
		return fmt.Errorf("failed to delete mapping: %w", err)
	}

	s.recordAudit(ctx, "delete", mappingID, existing, nil)
	s.afterMutation(ctx, existing.ProfileID)

	s.logger.WithProfile(existing.ProfileID).WithField("mapping_id", mappingID).Info("Mapping deleted")
	return nil
}

// GetMapping retrieves a mapping by ID
func (s *mappingService) GetMapping(ctx context.Context, mappingID string) (*models.Mapping, error) {
	return s.mappings.GetByID(ctx, mappingID)
}

// GetMappingsByProfile retrieves all active mappings for a profile
func (s *mappingService) GetMappingsByProfile(ctx context.Context, profileID string) ([]*models.Mapping, error) {
	return s.mappings.GetByProfile(ctx, profileID)
}

// ValidateProfile returns the profile's validation summary, served from
// cache when fresh
func (s *mappingService) ValidateProfile(ctx context.Context, profileID string) (models.ValidationSummary, error) {
	if cached, err := s.cache.GetSummary(ctx, profileID); err == nil {
		return *cached, nil
	}

	summary, err := s.computeSummary(ctx, profileID)
	if err != nil {
		return models.ValidationSummary{}, err
	}

	if err := s.cache.SetSummary(ctx, profileID, summary); err != nil {
		s.logger.WithProfile(profileID).WithError(err).Warn("Failed to cache validation summary")
	}
	return summary, nil
}

// Shutdown stops all profile watchers
func (s *mappingService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, watcher := range s.watchers {
		watcher.Unsubscribe()
	}
	s.watchers = make(map[string]*ValidationWatcher)
}

func (s *mappingService) computeSummary(ctx context.Context, profileID string) (models.ValidationSummary, error) {
	mappings, err := s.mappings.GetByProfile(ctx, profileID)
	if err != nil {
		return models.ValidationSummary{}, fmt.Errorf("failed to load mappings for profile %s: %w", profileID, err)
	}

	set := make([]models.Mapping, len(mappings))
	for i, m := range mappings {
		set[i] = *m
	}
	return s.aggregator.SummarizeMappings(set), nil
}

// afterMutation invalidates cached summaries and nudges the profile's
// debounced watcher. Invalidation retries through the error handler so a
// redis hiccup doesn't leave a stale summary behind a successful write.
func (s *mappingService) afterMutation(ctx context.Context, profileID string) {
	err := s.errors.ExecuteWithRetry(ctx, func() error {
		return s.cache.InvalidateProfile(ctx, profileID)
	}, "invalidate_profile_cache")
	if err != nil {
		s.logger.WithProfile(profileID).WithError(err).Warn("Cache invalidation failed after mutation")
	}
	s.watcherFor(profileID).Notify()
}

// watcherFor returns the profile's debounced watcher, creating it on first
// use. The watcher recomputes the summary after an edit burst settles and
// writes it back to the cache.
func (s *mappingService) watcherFor(profileID string) *ValidationWatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	if watcher, ok := s.watchers[profileID]; ok {
		return watcher
	}

	watcher := s.aggregator.Observe(
		func() []models.Mapping {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			mappings, err := s.mappings.GetByProfile(ctx, profileID)
			if err != nil {
				s.logger.WithProfile(profileID).WithError(err).Warn("Watcher failed to load mappings")
				return nil
			}
			set := make([]models.Mapping, len(mappings))
			for i, m := range mappings {
				set[i] = *m
			}
			return set
		},
		func(summary models.ValidationSummary) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := s.cache.SetSummary(ctx, profileID, summary); err != nil {
				s.logger.WithProfile(profileID).WithError(err).Warn("Watcher failed to cache summary")
			}
			s.logger.WithProfile(profileID).
				WithField("status", summary.Status).
				WithField("score", summary.OverallScore).
				Debug("Live validation summary refreshed")
		},
	)
	s.watchers[profileID] = watcher
	return watcher
}

// handleRevalidation is the queue handler: recompute and re-cache one
// profile's summary. Schema uploads enqueue through here so bulk changes
// don't block the upload request. The error handler retries transient
// database and redis failures before the job counts as failed.
func (s *mappingService) handleRevalidation(ctx context.Context, job RevalidationJob) error {
	return s.errors.ExecuteWithRetry(ctx, func() error {
		summary, err := s.computeSummary(ctx, job.ProfileID)
		if err != nil {
			return err
		}
		return s.cache.SetSummary(ctx, job.ProfileID, summary)
	}, "revalidate_profile")
}

func (s *mappingService) recordAudit(ctx context.Context, action, resourceID string, oldValue, newValue interface{}) {
	entry := &models.AuditLog{
		Action:       action,
		ResourceType: "mapping",
		ResourceID:   resourceID,
		OldValues:    toJSONMap(oldValue),
		NewValues:    toJSONMap(newValue),
		Timestamp:    time.Now(),
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		s.logger.WithError(err).WithField("resource_id", resourceID).Warn("Failed to write audit entry")
	}
}

// toJSONMap flattens a model into the audit log's JSONB shape
func toJSONMap(value interface{}) models.JSONMap {
	if value == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	var out models.JSONMap
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
