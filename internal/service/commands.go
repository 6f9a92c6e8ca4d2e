package service

import "github.com/aurora-energy/kplcgateway/internal/model"

type FetchBalanceCommand struct {
	AccountNumber   string
	RequesterMSISDN string
}

type FetchUnitsCommand struct {
	AccountNumber   string
	RequesterMSISDN string
}

type FetchLastPaymentCommand struct {
	AccountNumber   string
	RequesterMSISDN string
}

type PurchaseTokensCommand struct {
	AccountNumber   string
	Amount          float64
	RequesterMSISDN string
}

type CreateInquiryCommand struct {
	ClientInquiryID string
	Kind            model.InquiryKind
	AccountNumber   string
	Amount          *float64
	RequesterMSISDN string
}

// ProcessInquiryCommand is the worker queue payload.
type ProcessInquiryCommand struct {
	InquiryID       int64             `json:"inquiry_id"`
	Kind            model.InquiryKind `json:"kind"`
	AccountNumber   string            `json:"account_number"`
	Amount          *float64          `json:"amount,omitempty"`
	RequesterMSISDN string            `json:"requester_msisdn"`
}

type UpdateInquiryToRunningCommand struct {
	InquiryID    int64
	AttemptCount int
}

type UpdateInquiryFailureCommand struct {
	InquiryID int64
	Kind      model.InquiryKind
	LastError string
}
