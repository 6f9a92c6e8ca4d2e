package mocks

import (
	"context"

	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type ProcessorService struct {
	mock.Mock
}

func (m *ProcessorService) ProcessInquiry(ctx context.Context, cmd service.ProcessInquiryCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
