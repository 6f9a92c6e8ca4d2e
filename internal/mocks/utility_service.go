package mocks

import (
	"context"

	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type UtilityService struct {
	mock.Mock
}

func (m *UtilityService) FetchBalance(ctx context.Context, cmd service.FetchBalanceCommand) (service.ParseResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.ParseResult), args.Error(1)
}

func (m *UtilityService) FetchUnits(ctx context.Context, cmd service.FetchUnitsCommand) (service.ParseResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.ParseResult), args.Error(1)
}

func (m *UtilityService) FetchLastPayment(ctx context.Context, cmd service.FetchLastPaymentCommand) (service.ParseResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.ParseResult), args.Error(1)
}

func (m *UtilityService) PurchaseTokens(ctx context.Context, cmd service.PurchaseTokensCommand) (service.ParseResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.ParseResult), args.Error(1)
}

func (m *UtilityService) Run(ctx context.Context, cmd service.UtilityCommand) (service.ParseResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.ParseResult), args.Error(1)
}
