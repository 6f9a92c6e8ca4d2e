package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aurora-energy/kplcgateway/internal/mocks"
	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInquiryQueue_FindInquiriesToQueue(t *testing.T) {
	logger := zap.NewNop()

	t.Run("maps pending rows to worker commands", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		svc := service.NewInquiryQueueService(mockInquiryRepo, logger)

		amount := 500.0
		rows := []model.Inquiry{
			{ID: 1, Kind: model.InquiryKindBalance, AccountNumber: "111", RequesterMSISDN: "254700000001"},
			{ID: 2, Kind: model.InquiryKindTokenPurchase, AccountNumber: "222", Amount: &amount, RequesterMSISDN: "254700000002"},
		}

		mockInquiryRepo.On("FindUnqueuedCreated", 100).Return(rows, nil)

		commands, err := svc.FindInquiriesToQueue(context.Background(), 100)

		assert.NoError(t, err)
		require.Len(t, commands, 2)

		assert.Equal(t, int64(1), commands[0].InquiryID)
		assert.Equal(t, model.InquiryKindBalance, commands[0].Kind)
		assert.Nil(t, commands[0].Amount)

		assert.Equal(t, int64(2), commands[1].InquiryID)
		assert.Equal(t, model.InquiryKindTokenPurchase, commands[1].Kind)
		require.NotNil(t, commands[1].Amount)
		assert.Equal(t, 500.0, *commands[1].Amount)
	})

	t.Run("returns nothing when no rows pending", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		svc := service.NewInquiryQueueService(mockInquiryRepo, logger)

		mockInquiryRepo.On("FindUnqueuedCreated", 100).Return([]model.Inquiry{}, nil)

		commands, err := svc.FindInquiriesToQueue(context.Background(), 100)

		assert.NoError(t, err)
		assert.Empty(t, commands)
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		svc := service.NewInquiryQueueService(mockInquiryRepo, logger)

		mockInquiryRepo.On("FindUnqueuedCreated", 100).Return(nil, errors.New("connection refused"))

		commands, err := svc.FindInquiriesToQueue(context.Background(), 100)

		assert.Error(t, err)
		assert.Nil(t, commands)
	})
}

func TestInquiryQueue_MarkInquiryAsQueued(t *testing.T) {
	logger := zap.NewNop()

	t.Run("marks inquiry as queued", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		svc := service.NewInquiryQueueService(mockInquiryRepo, logger)

		mockInquiryRepo.On("MarkQueued", context.Background(), int64(1), mock.AnythingOfType("time.Time")).
			Return(nil)

		err := svc.MarkInquiryAsQueued(context.Background(), 1)

		assert.NoError(t, err)
		mockInquiryRepo.AssertExpectations(t)
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		svc := service.NewInquiryQueueService(mockInquiryRepo, logger)

		mockInquiryRepo.On("MarkQueued", context.Background(), int64(1), mock.AnythingOfType("time.Time")).
			Return(errors.New("connection refused"))

		err := svc.MarkInquiryAsQueued(context.Background(), 1)

		assert.Error(t, err)
	})
}
