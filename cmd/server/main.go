package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/config"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/container"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/server"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/services"
)

func main() {
	app := fx.New(
		container.Module,
		fx.Invoke(func(
			lc fx.Lifecycle,
			cfg *config.Config,
			srv *server.Server,
			queue *services.ValidationQueue,
			mappings services.MappingService,
		) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.Printf("Starting mapping validation service on port %s", cfg.Server.Port)

					queue.Start()

					go func() {
						if err := srv.Start(context.Background()); err != nil {
							log.Printf("Server error: %v", err)
						}
					}()

					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.Println("Shutting down mapping validation service")
					queue.Stop()
					mappings.Shutdown()
					return srv.Stop()
				},
			})
		}),
	)

	app.Run()
}
