package mocks

import (
	"context"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type InquiryRepository struct {
	mock.Mock
}

func (m *InquiryRepository) Create(ctx context.Context, inquiry *model.Inquiry) error {
	args := m.Called(ctx, inquiry)
	return args.Error(0)
}

func (m *InquiryRepository) Update(ctx context.Context, inquiry *model.Inquiry) error {
	args := m.Called(ctx, inquiry)
	return args.Error(0)
}

func (m *InquiryRepository) UpdateForProcessing(ctx context.Context, inquiry *model.Inquiry, staleThreshold time.Time) error {
	args := m.Called(ctx, inquiry, staleThreshold)
	return args.Error(0)
}

func (m *InquiryRepository) MarkQueued(ctx context.Context, inquiryID int64, queuedAt time.Time) error {
	args := m.Called(ctx, inquiryID, queuedAt)
	return args.Error(0)
}

func (m *InquiryRepository) GetByID(id int64) (*model.Inquiry, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *InquiryRepository) FindUnqueuedCreated(limit int) ([]model.Inquiry, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Inquiry), args.Error(1)
}
