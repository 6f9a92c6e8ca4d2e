package service

import (
	"fmt"
	"math"

	"github.com/aurora-energy/kplcgateway/internal/model"
)

// UtilityCommand is one outbound request to the utility short code. Immutable
// after construction; consumed exactly once by the dispatcher.
type UtilityCommand struct {
	Kind            model.InquiryKind
	AccountNumber   string
	Amount          *float64
	RequesterMSISDN string
}

// BuildCommandText renders the provider command syntax for cmd. Pure: the same
// command always yields the same string.
func BuildCommandText(cmd UtilityCommand) (string, error) {
	if err := validateCommand(cmd); err != nil {
		return "", err
	}

	switch cmd.Kind {
	case model.InquiryKindBalance:
		return fmt.Sprintf("BAL %s", cmd.AccountNumber), nil
	case model.InquiryKindTokenPurchase:
		// Provider convention: purchase amounts are whole KES.
		return fmt.Sprintf("BUY %s %d", cmd.AccountNumber, int64(*cmd.Amount)), nil
	case model.InquiryKindUnits:
		return fmt.Sprintf("UNITS %s", cmd.AccountNumber), nil
	case model.InquiryKindLastPayment:
		return fmt.Sprintf("LAST %s", cmd.AccountNumber), nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidCommand, cmd.Kind)
	}
}

func validateCommand(cmd UtilityCommand) error {
	if cmd.AccountNumber == "" {
		return fmt.Errorf("%w: account number is required", ErrInvalidCommand)
	}

	if cmd.RequesterMSISDN == "" {
		return fmt.Errorf("%w: requester MSISDN is required", ErrInvalidCommand)
	}

	if cmd.Kind == model.InquiryKindTokenPurchase {
		if cmd.Amount == nil {
			return fmt.Errorf("%w: amount is required for token purchase", ErrInvalidCommand)
		}
		if *cmd.Amount <= 0 {
			return fmt.Errorf("%w: amount must be positive", ErrInvalidCommand)
		}
		if *cmd.Amount != math.Trunc(*cmd.Amount) {
			return fmt.Errorf("%w: amount must be whole KES", ErrInvalidCommand)
		}
		return nil
	}

	if cmd.Amount != nil {
		return fmt.Errorf("%w: amount is only valid for token purchase", ErrInvalidCommand)
	}

	return nil
}
