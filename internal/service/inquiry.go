package service

import (
	"context"
	"errors"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/constants"
	"github.com/aurora-energy/kplcgateway/internal/metrics"
	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/aurora-energy/kplcgateway/internal/repository"
	"go.uber.org/zap"
)

const processingStaleAfter = 5 * time.Minute

// InquiryService owns the persisted inquiry ledger that backs the async
// pipeline: one row per requested operation, updated as the worker moves it
// through its states. Token purchases additionally get an audit tx_log row in
// the same transaction.
type InquiryService interface {
	CreateInquiryTx(ctx context.Context, cmd CreateInquiryCommand) (CreateInquiryResponse, error)
	GetInquiry(ctx context.Context, inquiryID int64) (*model.Inquiry, error)
	GetInquiryForProcessing(ctx context.Context, inquiryID int64) (*model.Inquiry, error)
	UpdateInquiryToRunning(ctx context.Context, cmd UpdateInquiryToRunningCommand) error
	UpdateInquiryCompleted(ctx context.Context, inquiryID int64, kind model.InquiryKind, result ParseResult) error
	UpdateInquiryToTemporaryFailure(ctx context.Context, cmd UpdateInquiryFailureCommand) error
	UpdateInquiryToPermanentFailure(ctx context.Context, cmd UpdateInquiryFailureCommand) error
}

type inquiry struct {
	inquiryRepo repository.InquiryRepository
	txLogRepo   repository.TxLogRepository
	txManager   repository.TxManager
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewInquiryService(inquiryRepo repository.InquiryRepository, txLogRepo repository.TxLogRepository,
	txManager repository.TxManager, m *metrics.Metrics, logger *zap.Logger) InquiryService {
	return &inquiry{inquiryRepo: inquiryRepo, txLogRepo: txLogRepo, txManager: txManager, metrics: m, logger: logger}
}

func (s *inquiry) CreateInquiryTx(ctx context.Context, cmd CreateInquiryCommand) (CreateInquiryResponse, error) {
	if _, err := BuildCommandText(UtilityCommand{
		Kind:            cmd.Kind,
		AccountNumber:   cmd.AccountNumber,
		Amount:          cmd.Amount,
		RequesterMSISDN: cmd.RequesterMSISDN,
	}); err != nil {
		return CreateInquiryResponse{}, NewServiceError(constants.ErrCodeInvalidCommand, err)
	}

	row := model.Inquiry{
		ClientInquiryID: cmd.ClientInquiryID,
		RequesterMSISDN: cmd.RequesterMSISDN,
		Kind:            cmd.Kind,
		AccountNumber:   cmd.AccountNumber,
		Amount:          cmd.Amount,
		Status:          model.InquiryStatusCreated,
		AttemptCount:    0,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		err := s.inquiryRepo.Create(ctx, &row)
		if err != nil && errors.Is(err, repository.ErrInquiryDuplicate) {
			s.logger.Warn("Duplicate inquiry detected",
				zap.String("requesterMSISDN", cmd.RequesterMSISDN),
				zap.String("clientInquiryID", cmd.ClientInquiryID))
			return NewServiceError(constants.ErrCodeDuplicateInquiry, err)
		}

		if err != nil {
			s.logger.Warn("Failed to create inquiry", zap.Error(err))
			return NewServiceError(constants.ErrCodeStoreError, err)
		}

		if cmd.Kind != model.InquiryKindTokenPurchase {
			return nil
		}

		txLog := model.TxLog{
			InquiryID:       row.ID,
			RequesterMSISDN: cmd.RequesterMSISDN,
			AccountNumber:   cmd.AccountNumber,
			Amount:          *cmd.Amount,
			State:           model.TxLogStateCreated,
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		}

		if err := s.txLogRepo.Create(ctx, &txLog); err != nil {
			s.logger.Warn("Failed to create purchase audit log", zap.Error(err))
			return NewServiceError(constants.ErrCodeStoreError, err)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Inquiry transaction failed",
			zap.String("clientInquiryID", cmd.ClientInquiryID),
			zap.Error(err))
		return CreateInquiryResponse{}, err
	}

	if s.metrics != nil {
		s.metrics.InquiriesCreated.WithLabelValues(string(cmd.Kind)).Inc()
	}

	return CreateInquiryResponse{InquiryID: row.ID}, nil
}

func (s *inquiry) GetInquiry(ctx context.Context, inquiryID int64) (*model.Inquiry, error) {
	row, err := s.inquiryRepo.GetByID(inquiryID)
	if err != nil {
		if errors.Is(err, repository.ErrInquiryNotFound) {
			return nil, NewServiceError(constants.ErrCodeInquiryNotFound, err)
		}

		return nil, NewServiceError(constants.ErrCodeStoreError, err)
	}

	return row, nil
}

func (s *inquiry) GetInquiryForProcessing(ctx context.Context, inquiryID int64) (*model.Inquiry, error) {
	row, err := s.inquiryRepo.GetByID(inquiryID)
	if err != nil {
		if errors.Is(err, repository.ErrInquiryNotFound) {
			return nil, ErrInquiryNotFound
		}

		return nil, ErrDatabase
	}

	switch row.Status {
	case model.InquiryStatusCreated:
		return row, nil

	case model.InquiryStatusRunning:
		if row.LastAttemptAt != nil && time.Since(*row.LastAttemptAt) < processingStaleAfter {
			s.logger.Warn("Inquiry being processed by another consumer",
				zap.Int64("inquiryID", inquiryID),
				zap.Time("lastAttempt", *row.LastAttemptAt))
			return nil, ErrInquiryBeingProcessed
		}

		return row, nil

	case model.InquiryStatusCompleted, model.InquiryStatusFailedPerm:
		s.logger.Info("Inquiry already processed",
			zap.Int64("inquiryID", inquiryID), zap.String("status", string(row.Status)))
		return nil, ErrInquiryAlreadyProcessed

	case model.InquiryStatusFailedTemp:
		s.logger.Info("Inquiry was temporarily failed, retrying", zap.Int64("inquiryID", inquiryID))
		return row, nil

	default:
		s.logger.Error("Unknown inquiry status",
			zap.String("status", string(row.Status)),
			zap.Int64("inquiryID", inquiryID))
		return nil, ErrUnknownInquiryStatus
	}
}

func (s *inquiry) UpdateInquiryToRunning(ctx context.Context, cmd UpdateInquiryToRunningCommand) error {
	staleThreshold := time.Now().Add(-processingStaleAfter)

	attempt := time.Now()
	row := model.Inquiry{
		ID:            cmd.InquiryID,
		Status:        model.InquiryStatusRunning,
		AttemptCount:  cmd.AttemptCount,
		LastAttemptAt: &attempt,
		UpdatedAt:     time.Now(),
	}

	err := s.inquiryRepo.UpdateForProcessing(ctx, &row, staleThreshold)
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrNoRowsAffected) {
		s.logger.Info("Inquiry not updated to RUNNING, possibly claimed by another consumer",
			zap.Int64("inquiryID", cmd.InquiryID))

		return ErrInquiryBeingProcessed
	}

	s.logger.Error("Failed to update inquiry for processing attempt",
		zap.Error(err),
		zap.Int64("inquiryID", cmd.InquiryID))

	return ErrDatabase
}

func (s *inquiry) UpdateInquiryCompleted(ctx context.Context, inquiryID int64, kind model.InquiryKind,
	result ParseResult) error {

	provenance := result.Provenance
	row := model.Inquiry{
		ID:              inquiryID,
		Status:          model.InquiryStatusCompleted,
		Provenance:      &provenance,
		Balance:         result.Balance,
		Units:           result.Units,
		TokenCode:       result.TokenCode,
		ReferenceNumber: &result.ReferenceNumber,
		CurrentReading:  result.CurrentReading,
		BillAmount:      result.BillAmount,
		DueDate:         result.DueDate,
		UpdatedAt:       time.Now(),
	}

	if kind != model.InquiryKindTokenPurchase {
		if err := s.inquiryRepo.Update(ctx, &row); err != nil {
			s.logger.Error("Failed to persist inquiry result",
				zap.Int64("inquiryID", inquiryID),
				zap.Error(err))
			return ErrDatabase
		}

		return nil
	}

	// A purchase without a real token is not a success in the audit trail,
	// even though the inquiry itself completes with a fallback result.
	txState := model.TxLogStateSuccess
	if result.TokenCode == nil {
		txState = model.TxLogStateFailed
	}

	txLog := model.TxLog{
		InquiryID:       inquiryID,
		State:           txState,
		TokenCode:       result.TokenCode,
		ReferenceNumber: &result.ReferenceNumber,
		UpdatedAt:       time.Now(),
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.inquiryRepo.Update(ctx, &row); err != nil {
			s.logger.Error("Failed to persist purchase result",
				zap.Int64("inquiryID", inquiryID),
				zap.Error(err))
			return err
		}

		if err := s.txLogRepo.UpdateByInquiryID(ctx, &txLog); err != nil {
			s.logger.Error("Failed to update purchase audit log",
				zap.Int64("inquiryID", inquiryID),
				zap.Error(err))
			return err
		}

		return nil
	})

	if err != nil {
		return ErrDatabase
	}

	return nil
}

func (s *inquiry) UpdateInquiryToTemporaryFailure(ctx context.Context, cmd UpdateInquiryFailureCommand) error {
	row := model.Inquiry{
		ID:        cmd.InquiryID,
		Status:    model.InquiryStatusFailedTemp,
		LastError: &cmd.LastError,
		UpdatedAt: time.Now(),
	}

	if err := s.inquiryRepo.Update(ctx, &row); err != nil {
		s.logger.Error("Failed to update inquiry after temp failure",
			zap.Int64("inquiryID", cmd.InquiryID),
			zap.Error(err))
		return ErrDatabase
	}

	return nil
}

func (s *inquiry) UpdateInquiryToPermanentFailure(ctx context.Context, cmd UpdateInquiryFailureCommand) error {
	row := &model.Inquiry{
		ID:        cmd.InquiryID,
		Status:    model.InquiryStatusFailedPerm,
		LastError: &cmd.LastError,
		UpdatedAt: time.Now(),
	}

	if cmd.Kind != model.InquiryKindTokenPurchase {
		if err := s.inquiryRepo.Update(ctx, row); err != nil {
			s.logger.Error("Failed to update inquiry after perm failure",
				zap.Int64("inquiryID", cmd.InquiryID),
				zap.Error(err))
			return ErrDatabase
		}

		return nil
	}

	txLog := &model.TxLog{
		InquiryID: cmd.InquiryID,
		State:     model.TxLogStateFailed,
		LastError: &cmd.LastError,
		UpdatedAt: time.Now(),
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.inquiryRepo.Update(ctx, row); err != nil {
			s.logger.Error("Failed to update inquiry after perm failure",
				zap.Int64("inquiryID", cmd.InquiryID),
				zap.Error(err))
			return err
		}

		if err := s.txLogRepo.UpdateByInquiryID(ctx, txLog); err != nil {
			s.logger.Error("Failed to update purchase audit log after perm failure",
				zap.Int64("inquiryID", cmd.InquiryID),
				zap.Error(err))
			return err
		}

		return nil
	})

	if err != nil {
		return ErrDatabase
	}

	return nil
}
