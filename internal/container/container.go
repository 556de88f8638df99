package container

import (
	"context"
	"database/sql"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/config"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/database"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/handlers"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/middleware"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/repositories"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/security"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/server"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/services"
)

// Module provides dependency injection configuration
var Module = fx.Options(
	// Configuration
	fx.Provide(config.LoadConfig),

	// Logging
	fx.Provide(logger.NewLogger),

	// Database
	fx.Provide(database.NewConnection),
	fx.Provide(func(conn *database.Connection) *gorm.DB {
		return conn.DB
	}),
	fx.Provide(func(conn *database.Connection) (*sql.DB, error) {
		return conn.DB.DB()
	}),
	fx.Provide(database.NewMigrator),
	fx.Provide(database.NewRedisClient),

	// Repositories
	fx.Provide(repositories.NewConnectionProfileRepository),
	fx.Provide(repositories.NewSchemaSnapshotRepository),
	fx.Provide(repositories.NewMappingRepository),
	fx.Provide(repositories.NewAuditLogRepository),

	// Validation engine
	fx.Provide(services.NewCompatibilityService),
	fx.Provide(services.NewFormatValidator),
	fx.Provide(services.NewSizeValidator),
	fx.Provide(services.NewMappingValidationService),
	fx.Provide(services.NewValidationAggregator),
	fx.Provide(services.NewFieldExtractionService),

	// Supporting services
	fx.Provide(services.NewCacheService),
	fx.Provide(services.NewValidationQueue),
	fx.Provide(services.NewMappingService),
	fx.Provide(services.NewHealthService),
	fx.Provide(services.NewErrorHandler),

	// Security
	fx.Provide(func(cfg *config.Config) (*security.SecretBox, error) {
		return security.NewSecretBox(cfg.Security.EncryptionKey)
	}),

	// Metrics
	fx.Provide(func(queue *services.ValidationQueue) *handlers.Metrics {
		return handlers.NewMetrics(func() float64 {
			stats, err := queue.Stats(context.Background())
			if err != nil {
				return 0
			}
			return float64(stats.Pending)
		})
	}),

	// Handlers
	fx.Provide(handlers.NewValidationHandler),
	fx.Provide(handlers.NewConnectionHandler),
	fx.Provide(handlers.NewSchemaHandler),
	fx.Provide(handlers.NewMappingHandler),
	fx.Provide(handlers.NewHealthHandler),

	// Middleware
	fx.Provide(middleware.NewAdminAuthMiddleware),

	// Server
	fx.Provide(server.NewServer),

	// Models (for validation and serialization)
	fx.Provide(models.NewValidationService),

	// Invoke migrations on startup
	fx.Invoke(func(migrator *database.Migrator) error {
		return migrator.Up()
	}),
)
