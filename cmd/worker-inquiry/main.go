package main

import (
	"context"

	"github.com/aurora-energy/kplcgateway/internal/config"
	"github.com/aurora-energy/kplcgateway/internal/consumers"
	"github.com/aurora-energy/kplcgateway/internal/metrics"
	"github.com/aurora-energy/kplcgateway/internal/publishers"
	"github.com/aurora-energy/kplcgateway/internal/repository"
	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/aurora-energy/kplcgateway/pkg/httpclient"
	"github.com/aurora-energy/kplcgateway/pkg/mq"
	"github.com/aurora-energy/kplcgateway/pkg/mysql"
	"github.com/aurora-energy/kplcgateway/pkg/smsprovider"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewConnectionDB,
			NewMQConnection,
			NewMQConsumer,
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
			service.NewProcessorService,

			consumers.NewInquiryConsumer,
		),
		fx.Invoke(runInquiryConsumer),
	).Run()
}

func runInquiryConsumer(cfg *config.Config, inquiryConsumer consumers.InquiryConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{publishers.InquiryQueue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", publishers.InquiryQueue))

			go func() {
				if err := inquiryConsumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("inquiry consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping inquiry consumer")
			cancel()
			return rabbit.Close()
		},
	})
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

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}
