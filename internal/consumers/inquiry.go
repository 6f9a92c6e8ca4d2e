package consumers

import (
	"context"
	"encoding/json"

	"github.com/aurora-energy/kplcgateway/internal/publishers"
	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/aurora-energy/kplcgateway/pkg/mq"
	"go.uber.org/zap"
)

type InquiryConsumer interface {
	Consume(ctx context.Context) error
}

type inquiryConsumer struct {
	service  service.ProcessorService
	consumer mq.Consumer
	logger   *zap.Logger
}

func NewInquiryConsumer(service service.ProcessorService, consumer mq.Consumer, logger *zap.Logger) InquiryConsumer {
	return &inquiryConsumer{
		service:  service,
		consumer: consumer,
		logger:   logger,
	}
}

func (c *inquiryConsumer) Consume(ctx context.Context) error {
	return c.consumer.Consume(ctx, 1, publishers.InquiryQueue, c.handleMessage)
}

func (c *inquiryConsumer) handleMessage(ctx context.Context, body []byte) error {
	c.logger.Info("received inquiry command", zap.ByteString("body", body))

	var cmd service.ProcessInquiryCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		c.logger.Warn("invalid inquiry command", zap.Error(err))
		return err
	}

	return c.service.ProcessInquiry(ctx, cmd)
}
