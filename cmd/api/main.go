package main

import (
	"context"

	"github.com/aurora-energy/kplcgateway/internal/api"
	v1 "github.com/aurora-energy/kplcgateway/internal/api/v1"
	"github.com/aurora-energy/kplcgateway/internal/config"
	errmw "github.com/aurora-energy/kplcgateway/internal/error"
	"github.com/aurora-energy/kplcgateway/internal/metrics"
	"github.com/aurora-energy/kplcgateway/internal/repository"
	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/aurora-energy/kplcgateway/pkg/httpclient"
	"github.com/aurora-energy/kplcgateway/pkg/mysql"
	"github.com/aurora-energy/kplcgateway/pkg/smsprovider"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewFiberApp,
			NewConnectionDB,
			metrics.NewMetrics,

			repository.NewInboxRepository,
			repository.NewInquiryRepository,
			repository.NewTxLogRepository,
			repository.NewTransactionManager,

			NewSMSProvider,
			NewReplyParser,
			service.NewDispatcherService,
			service.NewCorrelatorService,
			service.NewUtilityService,
			service.NewInquiryService,
			service.NewInboxService,

			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, m *metrics.Metrics, lc fx.Lifecycle) {
	app.Use(metrics.Middleware(m))
	api.SetupRoutes(app, handler)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go app.Listen(cfg.API.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: errmw.ErrorHandler()})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewSMSProvider(cfg *config.Config) smsprovider.Provider {
	client := httpclient.NewHTTPClient(cfg.Provider.Timeout)
	return smsprovider.NewSMSProvider(cfg.Provider, client)
}

func NewReplyParser(cfg *config.Config) *service.ReplyParser {
	return service.NewReplyParser(cfg.Utility.ReferencePrefix)
}
