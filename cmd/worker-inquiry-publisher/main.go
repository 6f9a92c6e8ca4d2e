package main

import (
	"context"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/config"
	"github.com/aurora-energy/kplcgateway/internal/publishers"
	"github.com/aurora-energy/kplcgateway/internal/repository"
	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/aurora-energy/kplcgateway/pkg/mq"
	"github.com/aurora-energy/kplcgateway/pkg/mysql"
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
			NewMQPublisher,

			repository.NewInquiryRepository,

			service.NewInquiryQueueService,

			publishers.NewInquiryPublisher,
		),
		fx.Invoke(runInquiryPublisher),
	).Run()
}

func runInquiryPublisher(cfg *config.Config, publisher publishers.InquiryPublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{publishers.InquiryQueue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", publishers.InquiryQueue))

			go func() {
				ticker := time.NewTicker(10 * time.Second)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish inquiries", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("inquiry publisher started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping inquiry publisher")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
