package mocks

import (
	"context"

	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type TxLogRepository struct {
	mock.Mock
}

func (m *TxLogRepository) Create(ctx context.Context, log *model.TxLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *TxLogRepository) UpdateByInquiryID(ctx context.Context, log *model.TxLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
