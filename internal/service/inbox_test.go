package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/mocks"
	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestInbox_RecordInbound(t *testing.T) {
	logger := zap.NewNop()

	t.Run("records inbound message", func(t *testing.T) {
		mockInboxRepo := &mocks.InboxRepository{}
		svc := service.NewInboxService(mockInboxRepo, nil, logger)

		receivedAt := time.Now().Add(-time.Second)

		mockInboxRepo.On("Create", context.Background(), mock.MatchedBy(func(msg *model.InboundMessage) bool {
			return msg.Sender == "95551" &&
				msg.Recipient == "254700000001" &&
				msg.Text == "Your balance is KES 150.50" &&
				msg.ReceivedAt.Equal(receivedAt) &&
				msg.ProviderMsgID != nil && *msg.ProviderMsgID == "prov-1"
		})).Return(nil)

		err := svc.RecordInbound(context.Background(), service.RecordInboundCommand{
			Sender:        "95551",
			Recipient:     "254700000001",
			Text:          "Your balance is KES 150.50",
			ProviderMsgID: "prov-1",
			ReceivedAt:    receivedAt,
		})

		assert.NoError(t, err)
		mockInboxRepo.AssertExpectations(t)
	})

	t.Run("defaults missing received time to now", func(t *testing.T) {
		mockInboxRepo := &mocks.InboxRepository{}
		svc := service.NewInboxService(mockInboxRepo, nil, logger)

		mockInboxRepo.On("Create", context.Background(), mock.MatchedBy(func(msg *model.InboundMessage) bool {
			return !msg.ReceivedAt.IsZero() && msg.ProviderMsgID == nil
		})).Return(nil)

		err := svc.RecordInbound(context.Background(), service.RecordInboundCommand{
			Sender:    "95551",
			Recipient: "254700000001",
			Text:      "hello",
		})

		assert.NoError(t, err)
	})

	t.Run("maps storage failure to store error", func(t *testing.T) {
		mockInboxRepo := &mocks.InboxRepository{}
		svc := service.NewInboxService(mockInboxRepo, nil, logger)

		mockInboxRepo.On("Create", context.Background(), mock.AnythingOfType("*model.InboundMessage")).
			Return(errors.New("connection refused"))

		err := svc.RecordInbound(context.Background(), service.RecordInboundCommand{
			Sender:    "95551",
			Recipient: "254700000001",
			Text:      "hello",
		})

		var svcErr service.Error
		assert.True(t, errors.As(err, &svcErr))
	})
}
