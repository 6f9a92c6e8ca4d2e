package mocks

import (
	"context"

	"github.com/aurora-energy/kplcgateway/pkg/smsprovider"
	"github.com/stretchr/testify/mock"
)

type SMSProvider struct {
	mock.Mock
}

func (m *SMSProvider) Send(ctx context.Context, from string, to string, text string) (smsprovider.Response, error) {
	args := m.Called(ctx, from, to, text)
	return args.Get(0).(smsprovider.Response), args.Error(1)
}
