package mocks

import (
	"context"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type CorrelatorService struct {
	mock.Mock
}

func (m *CorrelatorService) AwaitReply(ctx context.Context, recipient string, after time.Time,
	timeout time.Duration, pollInterval time.Duration) (*model.InboundMessage, error) {
	args := m.Called(ctx, recipient, after, timeout, pollInterval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InboundMessage), args.Error(1)
}
