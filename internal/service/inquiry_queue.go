package service

import (
	"context"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/repository"
	"go.uber.org/zap"
)

type InquiryQueueService interface {
	FindInquiriesToQueue(ctx context.Context, limit int) ([]ProcessInquiryCommand, error)
	MarkInquiryAsQueued(ctx context.Context, inquiryID int64) error
}

type inquiryQueue struct {
	inquiryRepo repository.InquiryRepository
	logger      *zap.Logger
}

func NewInquiryQueueService(inquiryRepo repository.InquiryRepository, logger *zap.Logger) InquiryQueueService {
	return &inquiryQueue{inquiryRepo: inquiryRepo, logger: logger}
}

func (q *inquiryQueue) FindInquiriesToQueue(ctx context.Context, limit int) ([]ProcessInquiryCommand, error) {
	q.logger.Debug("Finding inquiries to publish", zap.Int("batchSize", limit))

	rows, err := q.inquiryRepo.FindUnqueuedCreated(limit)
	if err != nil {
		q.logger.Error("Failed to find unqueued inquiries", zap.Error(err))
		return nil, err
	}

	if len(rows) == 0 {
		q.logger.Debug("No inquiries found to publish")
		return nil, nil
	}

	commands := make([]ProcessInquiryCommand, 0, len(rows))
	for _, row := range rows {
		commands = append(commands, ProcessInquiryCommand{
			InquiryID:       row.ID,
			Kind:            row.Kind,
			AccountNumber:   row.AccountNumber,
			Amount:          row.Amount,
			RequesterMSISDN: row.RequesterMSISDN,
		})
	}

	return commands, nil
}

func (q *inquiryQueue) MarkInquiryAsQueued(ctx context.Context, inquiryID int64) error {
	if err := q.inquiryRepo.MarkQueued(ctx, inquiryID, time.Now()); err != nil {
		q.logger.Error("Failed to mark inquiry as queued",
			zap.Error(err),
			zap.Int64("inquiryID", inquiryID))
		return err
	}

	return nil
}
