package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/constants"
	"github.com/aurora-energy/kplcgateway/internal/mocks"
	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/aurora-energy/kplcgateway/internal/repository"
	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInquiry_CreateInquiryTx(t *testing.T) {
	logger := zap.NewNop()

	t.Run("creates balance inquiry without audit log", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		mockTxLogRepo := &mocks.TxLogRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewInquiryService(mockInquiryRepo, mockTxLogRepo, mockTxManager, nil, logger)

		mockTxManager.On("WithTx", context.Background(), mock.Anything).Return(nil)
		mockInquiryRepo.On("Create", context.Background(), mock.MatchedBy(func(row *model.Inquiry) bool {
			return row.ClientInquiryID == "client-1" &&
				row.Kind == model.InquiryKindBalance &&
				row.Status == model.InquiryStatusCreated &&
				row.AttemptCount == 0
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Inquiry).ID = 42
		}).Return(nil)

		resp, err := svc.CreateInquiryTx(context.Background(), service.CreateInquiryCommand{
			ClientInquiryID: "client-1",
			Kind:            model.InquiryKindBalance,
			AccountNumber:   "123456789",
			RequesterMSISDN: "254700000001",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(42), resp.InquiryID)

		mockInquiryRepo.AssertExpectations(t)
		mockTxLogRepo.AssertNotCalled(t, "Create")
	})

	t.Run("creates purchase inquiry with audit log in same transaction", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		mockTxLogRepo := &mocks.TxLogRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewInquiryService(mockInquiryRepo, mockTxLogRepo, mockTxManager, nil, logger)

		amount := 500.0

		mockTxManager.On("WithTx", context.Background(), mock.Anything).Return(nil)
		mockInquiryRepo.On("Create", context.Background(), mock.AnythingOfType("*model.Inquiry")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Inquiry).ID = 43
			}).Return(nil)
		mockTxLogRepo.On("Create", context.Background(), mock.MatchedBy(func(txLog *model.TxLog) bool {
			return txLog.InquiryID == 43 &&
				txLog.Amount == 500.0 &&
				txLog.State == model.TxLogStateCreated
		})).Return(nil)

		resp, err := svc.CreateInquiryTx(context.Background(), service.CreateInquiryCommand{
			ClientInquiryID: "client-2",
			Kind:            model.InquiryKindTokenPurchase,
			AccountNumber:   "123456789",
			Amount:          &amount,
			RequesterMSISDN: "254700000001",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(43), resp.InquiryID)

		mockInquiryRepo.AssertExpectations(t)
		mockTxLogRepo.AssertExpectations(t)
	})

	t.Run("maps duplicate inquiry to duplicate code", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		mockTxLogRepo := &mocks.TxLogRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewInquiryService(mockInquiryRepo, mockTxLogRepo, mockTxManager, nil, logger)

		mockTxManager.On("WithTx", context.Background(), mock.Anything).Return(nil)
		mockInquiryRepo.On("Create", context.Background(), mock.AnythingOfType("*model.Inquiry")).
			Return(repository.ErrInquiryDuplicate)

		_, err := svc.CreateInquiryTx(context.Background(), service.CreateInquiryCommand{
			ClientInquiryID: "client-1",
			Kind:            model.InquiryKindBalance,
			AccountNumber:   "123456789",
			RequesterMSISDN: "254700000001",
		})

		var svcErr service.Error
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, constants.ErrCodeDuplicateInquiry, svcErr.Code)
	})

	t.Run("rejects invalid command before touching storage", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		mockTxLogRepo := &mocks.TxLogRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewInquiryService(mockInquiryRepo, mockTxLogRepo, mockTxManager, nil, logger)

		_, err := svc.CreateInquiryTx(context.Background(), service.CreateInquiryCommand{
			ClientInquiryID: "client-3",
			Kind:            model.InquiryKindTokenPurchase,
			AccountNumber:   "123456789",
			RequesterMSISDN: "254700000001",
		})

		var svcErr service.Error
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, constants.ErrCodeInvalidCommand, svcErr.Code)

		mockInquiryRepo.AssertNotCalled(t, "Create")
		mockTxManager.AssertNotCalled(t, "WithTx")
	})
}

func TestInquiry_GetInquiryForProcessing(t *testing.T) {
	logger := zap.NewNop()

	newService := func(repo *mocks.InquiryRepository) service.InquiryService {
		return service.NewInquiryService(repo, &mocks.TxLogRepository{}, &mocks.TxManager{}, nil, logger)
	}

	t.Run("returns created inquiry", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		svc := newService(mockInquiryRepo)

		row := &model.Inquiry{ID: 1, Status: model.InquiryStatusCreated}
		mockInquiryRepo.On("GetByID", int64(1)).Return(row, nil)

		got, err := svc.GetInquiryForProcessing(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, row, got)
	})

	t.Run("rejects inquiry freshly claimed by another consumer", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		svc := newService(mockInquiryRepo)

		lastAttempt := time.Now().Add(-time.Minute)
		row := &model.Inquiry{ID: 1, Status: model.InquiryStatusRunning, LastAttemptAt: &lastAttempt}
		mockInquiryRepo.On("GetByID", int64(1)).Return(row, nil)

		_, err := svc.GetInquiryForProcessing(context.Background(), 1)

		assert.True(t, errors.Is(err, service.ErrInquiryBeingProcessed))
	})

	t.Run("reclaims stale running inquiry", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		svc := newService(mockInquiryRepo)

		lastAttempt := time.Now().Add(-10 * time.Minute)
		row := &model.Inquiry{ID: 1, Status: model.InquiryStatusRunning, LastAttemptAt: &lastAttempt}
		mockInquiryRepo.On("GetByID", int64(1)).Return(row, nil)

		got, err := svc.GetInquiryForProcessing(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, row, got)
	})

	t.Run("rejects already completed inquiry", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		svc := newService(mockInquiryRepo)

		row := &model.Inquiry{ID: 1, Status: model.InquiryStatusCompleted}
		mockInquiryRepo.On("GetByID", int64(1)).Return(row, nil)

		_, err := svc.GetInquiryForProcessing(context.Background(), 1)

		assert.True(t, errors.Is(err, service.ErrInquiryAlreadyProcessed))
	})

	t.Run("allows retry of temporarily failed inquiry", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		svc := newService(mockInquiryRepo)

		row := &model.Inquiry{ID: 1, Status: model.InquiryStatusFailedTemp, AttemptCount: 1}
		mockInquiryRepo.On("GetByID", int64(1)).Return(row, nil)

		got, err := svc.GetInquiryForProcessing(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, row, got)
	})

	t.Run("maps missing inquiry to not found", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		svc := newService(mockInquiryRepo)

		mockInquiryRepo.On("GetByID", int64(1)).Return(nil, repository.ErrInquiryNotFound)

		_, err := svc.GetInquiryForProcessing(context.Background(), 1)

		assert.True(t, errors.Is(err, service.ErrInquiryNotFound))
	})
}

func TestInquiry_UpdateInquiryToRunning(t *testing.T) {
	logger := zap.NewNop()

	t.Run("claims inquiry for this attempt", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		svc := service.NewInquiryService(mockInquiryRepo, &mocks.TxLogRepository{}, &mocks.TxManager{}, nil, logger)

		mockInquiryRepo.On("UpdateForProcessing", context.Background(),
			mock.MatchedBy(func(row *model.Inquiry) bool {
				return row.ID == 1 &&
					row.Status == model.InquiryStatusRunning &&
					row.AttemptCount == 2 &&
					row.LastAttemptAt != nil
			}), mock.AnythingOfType("time.Time")).Return(nil)

		err := svc.UpdateInquiryToRunning(context.Background(), service.UpdateInquiryToRunningCommand{
			InquiryID:    1,
			AttemptCount: 2,
		})

		assert.NoError(t, err)
		mockInquiryRepo.AssertExpectations(t)
	})

	t.Run("lost claim race maps to being processed", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		svc := service.NewInquiryService(mockInquiryRepo, &mocks.TxLogRepository{}, &mocks.TxManager{}, nil, logger)

		mockInquiryRepo.On("UpdateForProcessing", context.Background(),
			mock.AnythingOfType("*model.Inquiry"), mock.AnythingOfType("time.Time")).
			Return(repository.ErrNoRowsAffected)

		err := svc.UpdateInquiryToRunning(context.Background(), service.UpdateInquiryToRunningCommand{
			InquiryID: 1, AttemptCount: 1,
		})

		assert.True(t, errors.Is(err, service.ErrInquiryBeingProcessed))
	})
}

func TestInquiry_UpdateInquiryCompleted(t *testing.T) {
	logger := zap.NewNop()

	t.Run("persists non purchase result directly", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		mockTxLogRepo := &mocks.TxLogRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewInquiryService(mockInquiryRepo, mockTxLogRepo, mockTxManager, nil, logger)

		balance := 150.50
		result := service.ParseResult{
			Provenance:      model.ProvenanceReplyDerived,
			Balance:         &balance,
			ReferenceNumber: "TXN123",
		}

		mockInquiryRepo.On("Update", context.Background(), mock.MatchedBy(func(row *model.Inquiry) bool {
			return row.ID == 1 &&
				row.Status == model.InquiryStatusCompleted &&
				*row.Provenance == model.ProvenanceReplyDerived &&
				*row.Balance == 150.50
		})).Return(nil)

		err := svc.UpdateInquiryCompleted(context.Background(), 1, model.InquiryKindBalance, result)

		assert.NoError(t, err)
		mockInquiryRepo.AssertExpectations(t)
		mockTxManager.AssertNotCalled(t, "WithTx")
	})

	t.Run("purchase with token marks audit log success", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		mockTxLogRepo := &mocks.TxLogRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewInquiryService(mockInquiryRepo, mockTxLogRepo, mockTxManager, nil, logger)

		token := "12345678901234567890"
		result := service.ParseResult{
			Provenance:      model.ProvenanceReplyDerived,
			TokenCode:       &token,
			ReferenceNumber: "TXN123",
		}

		mockTxManager.On("WithTx", context.Background(), mock.Anything).Return(nil)
		mockInquiryRepo.On("Update", context.Background(), mock.AnythingOfType("*model.Inquiry")).Return(nil)
		mockTxLogRepo.On("UpdateByInquiryID", context.Background(), mock.MatchedBy(func(txLog *model.TxLog) bool {
			return txLog.InquiryID == 1 &&
				txLog.State == model.TxLogStateSuccess &&
				*txLog.TokenCode == token
		})).Return(nil)

		err := svc.UpdateInquiryCompleted(context.Background(), 1, model.InquiryKindTokenPurchase, result)

		assert.NoError(t, err)
		mockTxLogRepo.AssertExpectations(t)
	})

	t.Run("purchase without token marks audit log failed", func(t *testing.T) {
		mockInquiryRepo := &mocks.InquiryRepository{}
		mockTxLogRepo := &mocks.TxLogRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewInquiryService(mockInquiryRepo, mockTxLogRepo, mockTxManager, nil, logger)

		result := service.ParseResult{
			Provenance:      model.ProvenanceFallback,
			ReferenceNumber: "AUR1756300000-0001",
		}

		mockTxManager.On("WithTx", context.Background(), mock.Anything).Return(nil)
		mockInquiryRepo.On("Update", context.Background(), mock.AnythingOfType("*model.Inquiry")).Return(nil)
		mockTxLogRepo.On("UpdateByInquiryID", context.Background(), mock.MatchedBy(func(txLog *model.TxLog) bool {
			return txLog.InquiryID == 1 &&
				txLog.State == model.TxLogStateFailed &&
				txLog.TokenCode == nil
		})).Return(nil)

		err := svc.UpdateInquiryCompleted(context.Background(), 1, model.InquiryKindTokenPurchase, result)

		assert.NoError(t, err)
		mockTxLogRepo.AssertExpectations(t)
	})
}
