package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/aurora-energy/kplcgateway/internal/repository"
	"go.uber.org/zap"
)

// CorrelatorService waits for the utility's reply to a dispatched command.
//
// Matching is by recipient address and submission time only. Two in-flight
// commands for the same requester can steal each other's reply; plain SMS
// carries no correlation id, so the window is the best available key.
type CorrelatorService interface {
	AwaitReply(ctx context.Context, recipient string, after time.Time,
		timeout time.Duration, pollInterval time.Duration) (*model.InboundMessage, error)
}

type correlator struct {
	inbox  repository.InboxRepository
	logger *zap.Logger
}

func NewCorrelatorService(inbox repository.InboxRepository, logger *zap.Logger) CorrelatorService {
	return &correlator{inbox: inbox, logger: logger}
}

// AwaitReply polls the inbox until a qualifying message arrives or the timeout
// budget is spent. No reply is a normal outcome and returns (nil, nil); only
// inbox infrastructure failures and context cancellation are errors.
func (c *correlator) AwaitReply(ctx context.Context, recipient string, after time.Time,
	timeout time.Duration, pollInterval time.Duration) (*model.InboundMessage, error) {

	deadline := time.Now().Add(timeout)

	for {
		reply, err := c.inbox.QueryLatest(recipient, after)
		if err == nil {
			c.logger.Debug("Reply correlated",
				zap.String("recipient", recipient),
				zap.Time("receivedAt", reply.ReceivedAt))
			return reply, nil
		}

		if !errors.Is(err, repository.ErrNoReplyFound) {
			c.logger.Error("Inbox query failed",
				zap.Error(err),
				zap.String("recipient", recipient))
			return nil, fmt.Errorf("%w: %v", ErrStore, err)
		}

		if time.Now().After(deadline) {
			c.logger.Info("Reply window expired",
				zap.String("recipient", recipient),
				zap.Duration("timeout", timeout))
			return nil, nil
		}

		select {
		case <-time.After(pollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
