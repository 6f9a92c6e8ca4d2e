package mocks

import (
	"context"

	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type InquiryService struct {
	mock.Mock
}

func (m *InquiryService) CreateInquiryTx(ctx context.Context, cmd service.CreateInquiryCommand) (service.CreateInquiryResponse, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.CreateInquiryResponse), args.Error(1)
}

func (m *InquiryService) GetInquiry(ctx context.Context, inquiryID int64) (*model.Inquiry, error) {
	args := m.Called(ctx, inquiryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *InquiryService) GetInquiryForProcessing(ctx context.Context, inquiryID int64) (*model.Inquiry, error) {
	args := m.Called(ctx, inquiryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *InquiryService) UpdateInquiryToRunning(ctx context.Context, cmd service.UpdateInquiryToRunningCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *InquiryService) UpdateInquiryCompleted(ctx context.Context, inquiryID int64, kind model.InquiryKind, result service.ParseResult) error {
	args := m.Called(ctx, inquiryID, kind, result)
	return args.Error(0)
}

func (m *InquiryService) UpdateInquiryToTemporaryFailure(ctx context.Context, cmd service.UpdateInquiryFailureCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *InquiryService) UpdateInquiryToPermanentFailure(ctx context.Context, cmd service.UpdateInquiryFailureCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
