package mocks

import (
	"context"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type InboxRepository struct {
	mock.Mock
}

func (m *InboxRepository) Create(ctx context.Context, message *model.InboundMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *InboxRepository) QueryLatest(recipient string, after time.Time) (*model.InboundMessage, error) {
	args := m.Called(recipient, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InboundMessage), args.Error(1)
}
