package service_test

import (
	"errors"
	"testing"

	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestBuildCommandText(t *testing.T) {
	t.Run("builds balance command", func(t *testing.T) {
		text, err := service.BuildCommandText(service.UtilityCommand{
			Kind:            model.InquiryKindBalance,
			AccountNumber:   "123456789",
			RequesterMSISDN: "254700000001",
		})

		assert.NoError(t, err)
		assert.Equal(t, "BAL 123456789", text)
	})

	t.Run("builds units command", func(t *testing.T) {
		text, err := service.BuildCommandText(service.UtilityCommand{
			Kind:            model.InquiryKindUnits,
			AccountNumber:   "123456789",
			RequesterMSISDN: "254700000001",
		})

		assert.NoError(t, err)
		assert.Equal(t, "UNITS 123456789", text)
	})

	t.Run("builds last payment command", func(t *testing.T) {
		text, err := service.BuildCommandText(service.UtilityCommand{
			Kind:            model.InquiryKindLastPayment,
			AccountNumber:   "123456789",
			RequesterMSISDN: "254700000001",
		})

		assert.NoError(t, err)
		assert.Equal(t, "LAST 123456789", text)
	})

	t.Run("builds purchase command with whole amount", func(t *testing.T) {
		amount := 500.0
		text, err := service.BuildCommandText(service.UtilityCommand{
			Kind:            model.InquiryKindTokenPurchase,
			AccountNumber:   "123456789",
			Amount:          &amount,
			RequesterMSISDN: "254700000001",
		})

		assert.NoError(t, err)
		assert.Equal(t, "BUY 123456789 500", text)
	})

	t.Run("same command always yields same text", func(t *testing.T) {
		amount := 250.0
		cmd := service.UtilityCommand{
			Kind:            model.InquiryKindTokenPurchase,
			AccountNumber:   "987654321",
			Amount:          &amount,
			RequesterMSISDN: "254700000002",
		}

		first, err := service.BuildCommandText(cmd)
		assert.NoError(t, err)

		second, err := service.BuildCommandText(cmd)
		assert.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("rejects empty account number", func(t *testing.T) {
		_, err := service.BuildCommandText(service.UtilityCommand{
			Kind:            model.InquiryKindBalance,
			RequesterMSISDN: "254700000001",
		})

		assert.True(t, errors.Is(err, service.ErrInvalidCommand))
	})

	t.Run("rejects empty requester", func(t *testing.T) {
		_, err := service.BuildCommandText(service.UtilityCommand{
			Kind:          model.InquiryKindBalance,
			AccountNumber: "123456789",
		})

		assert.True(t, errors.Is(err, service.ErrInvalidCommand))
	})

	t.Run("rejects purchase without amount", func(t *testing.T) {
		_, err := service.BuildCommandText(service.UtilityCommand{
			Kind:            model.InquiryKindTokenPurchase,
			AccountNumber:   "123456789",
			RequesterMSISDN: "254700000001",
		})

		assert.True(t, errors.Is(err, service.ErrInvalidCommand))
	})

	t.Run("rejects purchase with non positive amount", func(t *testing.T) {
		amount := 0.0
		_, err := service.BuildCommandText(service.UtilityCommand{
			Kind:            model.InquiryKindTokenPurchase,
			AccountNumber:   "123456789",
			Amount:          &amount,
			RequesterMSISDN: "254700000001",
		})

		assert.True(t, errors.Is(err, service.ErrInvalidCommand))
	})

	t.Run("rejects purchase with fractional amount", func(t *testing.T) {
		amount := 100.50
		_, err := service.BuildCommandText(service.UtilityCommand{
			Kind:            model.InquiryKindTokenPurchase,
			AccountNumber:   "123456789",
			Amount:          &amount,
			RequesterMSISDN: "254700000001",
		})

		assert.True(t, errors.Is(err, service.ErrInvalidCommand))
	})

	t.Run("rejects amount on non purchase command", func(t *testing.T) {
		amount := 100.0
		_, err := service.BuildCommandText(service.UtilityCommand{
			Kind:            model.InquiryKindBalance,
			AccountNumber:   "123456789",
			Amount:          &amount,
			RequesterMSISDN: "254700000001",
		})

		assert.True(t, errors.Is(err, service.ErrInvalidCommand))
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := service.BuildCommandText(service.UtilityCommand{
			Kind:            model.InquiryKind("REBOOT"),
			AccountNumber:   "123456789",
			RequesterMSISDN: "254700000001",
		})

		assert.True(t, errors.Is(err, service.ErrInvalidCommand))
	})
}
