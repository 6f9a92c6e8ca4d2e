package service

import (
	"context"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/constants"
	"github.com/aurora-energy/kplcgateway/internal/metrics"
	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/aurora-energy/kplcgateway/internal/repository"
	"go.uber.org/zap"
)

type RecordInboundCommand struct {
	Sender        string
	Recipient     string
	Text          string
	ProviderMsgID string
	ReceivedAt    time.Time
}

// InboxService is the write side of the inbox: the provider webhook appends
// here, the correlator reads. Append-only.
type InboxService interface {
	RecordInbound(ctx context.Context, cmd RecordInboundCommand) error
}

type inbox struct {
	inboxRepo repository.InboxRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewInboxService(inboxRepo repository.InboxRepository, m *metrics.Metrics, logger *zap.Logger) InboxService {
	return &inbox{inboxRepo: inboxRepo, metrics: m, logger: logger}
}

func (s *inbox) RecordInbound(ctx context.Context, cmd RecordInboundCommand) error {
	receivedAt := cmd.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	message := model.InboundMessage{
		Sender:     cmd.Sender,
		Recipient:  cmd.Recipient,
		Text:       cmd.Text,
		ReceivedAt: receivedAt,
		CreatedAt:  time.Now(),
	}

	if cmd.ProviderMsgID != "" {
		message.ProviderMsgID = &cmd.ProviderMsgID
	}

	if err := s.inboxRepo.Create(ctx, &message); err != nil {
		s.logger.Error("Failed to record inbound message",
			zap.Error(err),
			zap.String("recipient", cmd.Recipient))
		return NewServiceError(constants.ErrCodeStoreError, err)
	}

	if s.metrics != nil {
		s.metrics.InboundMessages.Inc()
	}

	s.logger.Info("Inbound message recorded",
		zap.String("sender", cmd.Sender),
		zap.String("recipient", cmd.Recipient))

	return nil
}
