package mocks

import (
	"context"

	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type DispatcherService struct {
	mock.Mock
}

func (m *DispatcherService) Dispatch(ctx context.Context, cmd service.UtilityCommand) (service.DispatchReceipt, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.DispatchReceipt), args.Error(1)
}
