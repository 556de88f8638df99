package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/database"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// healthService implements HealthService as a registry of named probes
type healthService struct {
	logger *logger.Logger

	mu     sync.RWMutex
	checks map[string]func(ctx context.Context) (*models.HealthCheck, error)
}

// NewHealthService creates a health service pre-wired with probes for the
// storage, cache and validation engine components
func NewHealthService(
	logger *logger.Logger,
	db *database.Connection,
	cache *CacheService,
	resolver CompatibilityResolver,
) HealthService {
	s := &healthService{
		logger: logger,
		checks: make(map[string]func(ctx context.Context) (*models.HealthCheck, error)),
	}

	s.RegisterHealthCheck("database", func(ctx context.Context) (*models.HealthCheck, error) {
		check := &models.HealthCheck{Component: "database", CheckedAt: time.Now()}
		if err := db.Ping(); err != nil {
			check.Status = models.HealthStatusUnhealthy
			check.Message = err.Error()
			return check, nil
		}
		check.Status = models.HealthStatusHealthy
		if stats, err := db.GetConnectionStats(); err == nil {
			check.Details = map[string]interface{}{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			}
		}
		return check, nil
	})

	s.RegisterHealthCheck("cache", func(ctx context.Context) (*models.HealthCheck, error) {
		check := &models.HealthCheck{Component: "cache", CheckedAt: time.Now()}
		if err := cache.Ping(ctx); err != nil {
			// Validation still works without the cache, only slower.
			check.Status = models.HealthStatusDegraded
			check.Message = err.Error()
			return check, nil
		}
		check.Status = models.HealthStatusHealthy
		return check, nil
	})

	s.RegisterHealthCheck("engine", func(ctx context.Context) (*models.HealthCheck, error) {
		check := &models.HealthCheck{Component: "engine", CheckedAt: time.Now()}
		result := resolver.Resolve("string", "varchar(255)")
		if result.Level != models.CompatibilityCompatible {
			check.Status = models.HealthStatusUnhealthy
			check.Message = "compatibility table failed its canary lookup"
			return check, nil
		}
		check.Status = models.HealthStatusHealthy
		return check, nil
	})

	return s
}

// RegisterHealthCheck registers a named component probe
func (s *healthService) RegisterHealthCheck(component string, checkFunc func(ctx context.Context) (*models.HealthCheck, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[component] = checkFunc
}

// PerformHealthCheck runs one component's probe
func (s *healthService) PerformHealthCheck(ctx context.Context, component string) (*models.HealthCheck, error) {
	s.mu.RLock()
	checkFunc, ok := s.checks[component]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no health check registered for component %q", component)
	}
	return checkFunc(ctx)
}

// GetHealthStatus runs all registered probes
func (s *healthService) GetHealthStatus(ctx context.Context) (map[string]*models.HealthCheck, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	s.mu.RUnlock()

	results := make(map[string]*models.HealthCheck, len(names))
	for _, name := range names {
		check, err := s.PerformHealthCheck(ctx, name)
		if err != nil {
			check = &models.HealthCheck{
				Component: name,
				Status:    models.HealthStatusUnhealthy,
				Message:   err.Error(),
				CheckedAt: time.Now(),
			}
		}
		results[name] = check
	}
	return results, nil
}
