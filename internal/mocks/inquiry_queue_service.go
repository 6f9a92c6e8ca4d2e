package mocks

import (
	"context"

	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type InquiryQueueService struct {
	mock.Mock
}

func (m *InquiryQueueService) FindInquiriesToQueue(ctx context.Context, limit int) ([]service.ProcessInquiryCommand, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ProcessInquiryCommand), args.Error(1)
}

func (m *InquiryQueueService) MarkInquiryAsQueued(ctx context.Context, inquiryID int64) error {
	args := m.Called(ctx, inquiryID)
	return args.Error(0)
}
