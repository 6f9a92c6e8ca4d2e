package publishers_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aurora-energy/kplcgateway/internal/mocks"
	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/aurora-energy/kplcgateway/internal/publishers"
	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestInquiryPublisher_Publish(t *testing.T) {
	logger := zap.NewNop()

	commands := []service.ProcessInquiryCommand{
		{InquiryID: 1, Kind: model.InquiryKindBalance, AccountNumber: "111", RequesterMSISDN: "254700000001"},
		{InquiryID: 2, Kind: model.InquiryKindUnits, AccountNumber: "222", RequesterMSISDN: "254700000002"},
	}

	t.Run("publishes pending inquiries and marks them queued", func(t *testing.T) {
		mockQueue := &mocks.InquiryQueueService{}
		mockPublisher := &mocks.Publisher{}

		publisher := publishers.NewInquiryPublisher(mockQueue, mockPublisher, logger)

		mockQueue.On("FindInquiriesToQueue", context.Background(), 100).Return(commands, nil)

		for _, cmd := range commands {
			body, _ := json.Marshal(cmd)
			mockPublisher.On("Publish", context.Background(), "", publishers.InquiryQueue, body).Return(nil)
			mockQueue.On("MarkInquiryAsQueued", context.Background(), cmd.InquiryID).Return(nil)
		}

		err := publisher.Publish(context.Background())

		assert.NoError(t, err)
		mockQueue.AssertExpectations(t)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("does nothing when no inquiries pending", func(t *testing.T) {
		mockQueue := &mocks.InquiryQueueService{}
		mockPublisher := &mocks.Publisher{}

		publisher := publishers.NewInquiryPublisher(mockQueue, mockPublisher, logger)

		mockQueue.On("FindInquiriesToQueue", context.Background(), 100).Return(nil, nil)

		err := publisher.Publish(context.Background())

		assert.NoError(t, err)
		mockPublisher.AssertNotCalled(t, "Publish")
	})

	t.Run("skips marking when broker publish fails", func(t *testing.T) {
		mockQueue := &mocks.InquiryQueueService{}
		mockPublisher := &mocks.Publisher{}

		publisher := publishers.NewInquiryPublisher(mockQueue, mockPublisher, logger)

		mockQueue.On("FindInquiriesToQueue", context.Background(), 100).
			Return(commands[:1], nil)
		mockPublisher.On("Publish", context.Background(), "", publishers.InquiryQueue, mock.Anything).
			Return(errors.New("channel closed"))

		err := publisher.Publish(context.Background())

		assert.NoError(t, err)
		mockQueue.AssertNotCalled(t, "MarkInquiryAsQueued")
	})

	t.Run("propagates lookup failure", func(t *testing.T) {
		mockQueue := &mocks.InquiryQueueService{}
		mockPublisher := &mocks.Publisher{}

		publisher := publishers.NewInquiryPublisher(mockQueue, mockPublisher, logger)

		mockQueue.On("FindInquiriesToQueue", context.Background(), 100).
			Return(nil, errors.New("connection refused"))

		err := publisher.Publish(context.Background())

		assert.Error(t, err)
	})
}
