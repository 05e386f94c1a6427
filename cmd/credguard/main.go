package main

import (
	"context"
	"log/slog"
	"os"

	"credguard/config"
	"credguard/internal/delivery"
	"credguard/internal/delivery/http"
	"credguard/internal/delivery/http/middleware"
	"credguard/internal/delivery/http/router/handler"
	"credguard/internal/domain/lifecycle"
	"credguard/internal/infra/auth"
	logs "credguard/internal/infra/log"
	"credguard/internal/infra/persistence/postgres"
	"credguard/internal/infra/pubsub"
	"credguard/internal/infra/rules"
	"credguard/internal/usecase"
	"credguard/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			bootstrapAdmin,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			rules.New,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewPolicyRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			impl.NewSessionRegistry,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewLoginService,
			impl.NewCredentialService,
			impl.NewPolicyService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// bootstrapAdmin creates the configured administrator once the schema and
// policy are in place.
func bootstrapAdmin(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger, credentials usecase.CredentialUsecase) {
	admin := cfg.Auth.BootstrapAdmin
	if admin == nil || admin.Username == "" {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			if admin.Password == "" {
				logger.Warn("Bootstrap admin password is empty, skipping", slog.String("username", admin.Username))

				return nil
			}

			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			_, err := credentials.EnsureAdmin(ctx, &usecase.RegisterInput{
				Name:     admin.Name,
				Username: admin.Username,
				Password: admin.Password,
			})

			return err
		},
	})
}

// startServer launches the deliveries once every other start hook, schema
// migration and policy sync included, has completed.
func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, delivery := range params.Deliveries {
				go serve(ctx, delivery, params.Shutdowner)
			}

			return nil
		},
	})
}

func serve(ctx context.Context, d delivery.Delivery, shutdowner fx.Shutdowner) {
	if err := d.Serve(ctx); err != nil {
		slog.Error("Failed to start server", slog.Any("error", err))

		// Trigger graceful shutdown to execute all OnStop hooks
		if shutdownErr := shutdowner.Shutdown(); shutdownErr != nil {
			slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
			os.Exit(1)
		}
	}
}
