package service

import (
	"context"
	"errors"

	"github.com/aurora-energy/kplcgateway/internal/metrics"
	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/aurora-energy/kplcgateway/pkg/mq"
	"go.uber.org/zap"
)

const maxAttempts = 3

// ProcessorService is the worker side of the async pipeline: it claims a
// queued inquiry, runs the utility pass and persists the outcome. Returned
// errors wrapped with mq.Temporary signal the broker to redeliver.
type ProcessorService interface {
	ProcessInquiry(ctx context.Context, cmd ProcessInquiryCommand) error
}

type processor struct {
	inquiries InquiryService
	utility   UtilityService
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewProcessorService(inquiries InquiryService, utility UtilityService, m *metrics.Metrics,
	logger *zap.Logger) ProcessorService {
	return &processor{inquiries: inquiries, utility: utility, metrics: m, logger: logger}
}

func (p *processor) ProcessInquiry(ctx context.Context, cmd ProcessInquiryCommand) error {
	row, err := p.inquiries.GetInquiryForProcessing(ctx, cmd.InquiryID)
	if err != nil {
		p.logger.Debug("Inquiry not processable",
			zap.Int64("inquiryID", cmd.InquiryID),
			zap.Error(err))

		if errors.Is(err, ErrDatabase) {
			return mq.Temporary(err)
		}

		return nil
	}

	attemptCount := row.AttemptCount
	if row.Status != model.InquiryStatusRunning {
		attemptCount += 1
	}

	if attemptCount > maxAttempts {
		p.logger.Warn("Inquiry exceeded max attempts",
			zap.Int64("inquiryID", cmd.InquiryID),
			zap.Int("attempts", attemptCount))

		failCmd := UpdateInquiryFailureCommand{InquiryID: cmd.InquiryID, Kind: cmd.Kind, LastError: "exceeded max attempts"}
		if err := p.inquiries.UpdateInquiryToPermanentFailure(ctx, failCmd); err != nil {
			return mq.Temporary(err)
		}

		p.countProcessed(cmd.Kind, "failed_perm")
		return nil
	}

	runningCmd := UpdateInquiryToRunningCommand{InquiryID: cmd.InquiryID, AttemptCount: attemptCount}
	if err := p.inquiries.UpdateInquiryToRunning(ctx, runningCmd); err != nil {
		if errors.Is(err, ErrInquiryBeingProcessed) {
			return nil
		}

		p.logger.Debug("Failed to update inquiry to RUNNING status",
			zap.Int64("inquiryID", cmd.InquiryID),
			zap.Error(err))
		return mq.Temporary(err)
	}

	p.logger.Debug("Running utility operation",
		zap.Int64("inquiryID", cmd.InquiryID),
		zap.Int("attempt", attemptCount),
		zap.Int("maxAttempts", maxAttempts),
		zap.String("kind", string(cmd.Kind)),
		zap.String("requester", cmd.RequesterMSISDN))

	result, runErr := p.utility.Run(ctx, UtilityCommand{
		Kind:            cmd.Kind,
		AccountNumber:   cmd.AccountNumber,
		Amount:          cmd.Amount,
		RequesterMSISDN: cmd.RequesterMSISDN,
	})

	if runErr == nil {
		if err := p.inquiries.UpdateInquiryCompleted(ctx, cmd.InquiryID, cmd.Kind, result); err != nil {
			return mq.Temporary(err)
		}

		p.logger.Info("Inquiry completed",
			zap.Int64("inquiryID", cmd.InquiryID),
			zap.String("kind", string(cmd.Kind)),
			zap.String("provenance", result.Provenance),
			zap.Int("attempt", attemptCount))

		p.countProcessed(cmd.Kind, "completed")
		return nil
	}

	p.logger.Debug("Utility pass failed",
		zap.Error(runErr),
		zap.Int64("inquiryID", cmd.InquiryID),
		zap.Int("attempt", attemptCount))

	if errors.Is(runErr, ErrInvalidCommand) {
		p.logger.Warn("Permanent failure due to invalid command",
			zap.Int64("inquiryID", cmd.InquiryID))

		failCmd := UpdateInquiryFailureCommand{InquiryID: cmd.InquiryID, Kind: cmd.Kind, LastError: runErr.Error()}
		if err := p.inquiries.UpdateInquiryToPermanentFailure(ctx, failCmd); err != nil {
			return mq.Temporary(err)
		}

		p.countProcessed(cmd.Kind, "failed_perm")
		return nil
	}

	p.logger.Debug("Temporary failure, will retry",
		zap.Int64("inquiryID", cmd.InquiryID),
		zap.Int("attempt", attemptCount),
		zap.Int("remainingAttempts", maxAttempts-attemptCount),
		zap.Error(runErr))

	failCmd := UpdateInquiryFailureCommand{InquiryID: cmd.InquiryID, Kind: cmd.Kind, LastError: runErr.Error()}
	if err := p.inquiries.UpdateInquiryToTemporaryFailure(ctx, failCmd); err != nil {
		return mq.Temporary(err)
	}

	p.countProcessed(cmd.Kind, "failed_temp")
	return mq.Temporary(runErr)
}

func (p *processor) countProcessed(kind model.InquiryKind, outcome string) {
	if p.metrics != nil {
		p.metrics.InquiriesProcessed.WithLabelValues(string(kind), outcome).Inc()
	}
}
