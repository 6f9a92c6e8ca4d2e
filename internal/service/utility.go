package service

import (
	"context"
	"errors"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/config"
	"github.com/aurora-energy/kplcgateway/internal/constants"
	"github.com/aurora-energy/kplcgateway/internal/metrics"
	"github.com/aurora-energy/kplcgateway/internal/model"
	"go.uber.org/zap"
)

// UtilityService runs one full pass per operation: dispatch, await the reply
// window, normalize. A pass never fails because no reply arrived; that path
// resolves into a FALLBACK-tagged result. Only transport, inbox-store and
// validation failures surface as errors, and nothing is retried here.
type UtilityService interface {
	FetchBalance(ctx context.Context, cmd FetchBalanceCommand) (ParseResult, error)
	FetchUnits(ctx context.Context, cmd FetchUnitsCommand) (ParseResult, error)
	FetchLastPayment(ctx context.Context, cmd FetchLastPaymentCommand) (ParseResult, error)
	PurchaseTokens(ctx context.Context, cmd PurchaseTokensCommand) (ParseResult, error)
	Run(ctx context.Context, cmd UtilityCommand) (ParseResult, error)
}

type utility struct {
	dispatcher DispatcherService
	correlator CorrelatorService
	parser     *ReplyParser
	cfg        config.Utility
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewUtilityService(dispatcher DispatcherService, correlator CorrelatorService, parser *ReplyParser,
	cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) UtilityService {
	return &utility{
		dispatcher: dispatcher,
		correlator: correlator,
		parser:     parser,
		cfg:        cfg.Utility,
		metrics:    m,
		logger:     logger,
	}
}

func (u *utility) FetchBalance(ctx context.Context, cmd FetchBalanceCommand) (ParseResult, error) {
	return u.Run(ctx, UtilityCommand{
		Kind:            model.InquiryKindBalance,
		AccountNumber:   cmd.AccountNumber,
		RequesterMSISDN: cmd.RequesterMSISDN,
	})
}

func (u *utility) FetchUnits(ctx context.Context, cmd FetchUnitsCommand) (ParseResult, error) {
	return u.Run(ctx, UtilityCommand{
		Kind:            model.InquiryKindUnits,
		AccountNumber:   cmd.AccountNumber,
		RequesterMSISDN: cmd.RequesterMSISDN,
	})
}

func (u *utility) FetchLastPayment(ctx context.Context, cmd FetchLastPaymentCommand) (ParseResult, error) {
	return u.Run(ctx, UtilityCommand{
		Kind:            model.InquiryKindLastPayment,
		AccountNumber:   cmd.AccountNumber,
		RequesterMSISDN: cmd.RequesterMSISDN,
	})
}

func (u *utility) PurchaseTokens(ctx context.Context, cmd PurchaseTokensCommand) (ParseResult, error) {
	amount := cmd.Amount
	return u.Run(ctx, UtilityCommand{
		Kind:            model.InquiryKindTokenPurchase,
		AccountNumber:   cmd.AccountNumber,
		Amount:          &amount,
		RequesterMSISDN: cmd.RequesterMSISDN,
	})
}

func (u *utility) Run(ctx context.Context, cmd UtilityCommand) (ParseResult, error) {
	receipt, err := u.dispatcher.Dispatch(ctx, cmd)
	if err != nil {
		u.countDispatchFailure(cmd.Kind)

		if errors.Is(err, ErrInvalidCommand) {
			return ParseResult{}, NewServiceError(constants.ErrCodeInvalidCommand, err)
		}

		return ParseResult{}, NewServiceError(constants.ErrCodeTransportError, err)
	}

	u.countDispatched(cmd.Kind)

	timeout := u.cfg.ReplyTimeout
	if cmd.Kind == model.InquiryKindTokenPurchase {
		// Token generation upstream is slower than a balance lookup.
		timeout = u.cfg.PurchaseReplyTimeout
	}

	waitStart := time.Now()
	reply, err := u.correlator.AwaitReply(ctx, cmd.RequesterMSISDN, receipt.SubmittedAt, timeout, u.cfg.PollInterval)
	if err != nil {
		if errors.Is(err, ErrStore) {
			return ParseResult{}, NewServiceError(constants.ErrCodeStoreError, err)
		}

		return ParseResult{}, err
	}

	u.observeReplyWait(cmd.Kind, time.Since(waitStart))

	rawText := ""
	if reply != nil {
		rawText = reply.Text
		u.countReplyCorrelated(cmd.Kind)
	}

	result := u.parser.Parse(rawText, ParseContext{
		Kind:            cmd.Kind,
		AccountNumber:   cmd.AccountNumber,
		RequestedAmount: cmd.Amount,
	})

	if result.Provenance == model.ProvenanceFallback {
		u.countFallback(cmd.Kind)
		u.logger.Warn("Operation resolved to fallback result",
			zap.String("kind", string(cmd.Kind)),
			zap.String("requester", cmd.RequesterMSISDN),
			zap.Bool("replyReceived", reply != nil))
	} else {
		u.logger.Info("Operation resolved from utility reply",
			zap.String("kind", string(cmd.Kind)),
			zap.String("requester", cmd.RequesterMSISDN))
	}

	return result, nil
}

func (u *utility) countDispatched(kind model.InquiryKind) {
	if u.metrics != nil {
		u.metrics.CommandsDispatched.WithLabelValues(string(kind)).Inc()
	}
}

func (u *utility) countDispatchFailure(kind model.InquiryKind) {
	if u.metrics != nil {
		u.metrics.DispatchFailures.WithLabelValues(string(kind)).Inc()
	}
}

func (u *utility) countReplyCorrelated(kind model.InquiryKind) {
	if u.metrics != nil {
		u.metrics.RepliesCorrelated.WithLabelValues(string(kind)).Inc()
	}
}

func (u *utility) countFallback(kind model.InquiryKind) {
	if u.metrics != nil {
		u.metrics.FallbackResults.WithLabelValues(string(kind)).Inc()
	}
}

func (u *utility) observeReplyWait(kind model.InquiryKind, d time.Duration) {
	if u.metrics != nil {
		u.metrics.ReplyWaitSeconds.WithLabelValues(string(kind)).Observe(d.Seconds())
	}
}
