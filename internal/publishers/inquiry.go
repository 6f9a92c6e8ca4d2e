package publishers

import (
	"context"
	"encoding/json"

	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/aurora-energy/kplcgateway/pkg/mq"
	"go.uber.org/zap"
)

const InquiryQueue = "kplc.inquiry"

type InquiryPublisher interface {
	Publish(ctx context.Context) error
}

type inquiryPublisher struct {
	service   service.InquiryQueueService
	publisher mq.Publisher
	logger    *zap.Logger
}

func NewInquiryPublisher(service service.InquiryQueueService, publisher mq.Publisher, logger *zap.Logger) InquiryPublisher {
	return &inquiryPublisher{service: service, publisher: publisher, logger: logger}
}

func (p *inquiryPublisher) Publish(ctx context.Context) error {
	commands, err := p.service.FindInquiriesToQueue(ctx, 100)
	if err != nil {
		return err
	}

	if len(commands) == 0 {
		return nil
	}

	p.logger.Info("Publishing inquiries", zap.Int("count", len(commands)))

	successCount := 0
	for _, cmd := range commands {
		body, _ := json.Marshal(cmd)
		if err := p.publisher.Publish(ctx, "", InquiryQueue, body); err != nil {
			p.logger.Error("Failed to publish inquiry",
				zap.Error(err),
				zap.Int64("inquiryID", cmd.InquiryID))
			continue
		}

		if err := p.service.MarkInquiryAsQueued(ctx, cmd.InquiryID); err != nil {
			continue
		}

		successCount++
	}

	if successCount > 0 {
		p.logger.Info("Successfully published inquiries",
			zap.Int("published", successCount),
			zap.Int("total", len(commands)))
	}

	return nil
}
