package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/config"
	"github.com/aurora-energy/kplcgateway/pkg/smsprovider"
	"go.uber.org/zap"
)

type DispatchReceipt struct {
	ProviderMessageID string
	Provider          string
	CommandText       string
	SubmittedAt       time.Time
}

// DispatcherService submits exactly one outbound command per call. It does not
// retry; retry policy belongs to the worker pipeline.
type DispatcherService interface {
	Dispatch(ctx context.Context, cmd UtilityCommand) (DispatchReceipt, error)
}

type dispatcher struct {
	provider  smsprovider.Provider
	shortCode string
	logger    *zap.Logger
}

func NewDispatcherService(provider smsprovider.Provider, cfg *config.Config, logger *zap.Logger) DispatcherService {
	return &dispatcher{provider: provider, shortCode: cfg.Utility.ShortCode, logger: logger}
}

func (d *dispatcher) Dispatch(ctx context.Context, cmd UtilityCommand) (DispatchReceipt, error) {
	text, err := BuildCommandText(cmd)
	if err != nil {
		return DispatchReceipt{}, err
	}

	submittedAt := time.Now()

	d.logger.Debug("Dispatching utility command",
		zap.String("kind", string(cmd.Kind)),
		zap.String("shortCode", d.shortCode),
		zap.String("requester", cmd.RequesterMSISDN))

	res, err := d.provider.Send(ctx, cmd.RequesterMSISDN, d.shortCode, text)
	if err != nil {
		d.logger.Warn("Utility command submission failed",
			zap.Error(err),
			zap.String("kind", string(cmd.Kind)),
			zap.String("requester", cmd.RequesterMSISDN))
		return DispatchReceipt{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	d.logger.Info("Utility command submitted",
		zap.String("kind", string(cmd.Kind)),
		zap.String("providerMessageID", res.MessageID),
		zap.String("provider", res.Provider))

	return DispatchReceipt{
		ProviderMessageID: res.MessageID,
		Provider:          res.Provider,
		CommandText:       text,
		SubmittedAt:       submittedAt,
	}, nil
}
