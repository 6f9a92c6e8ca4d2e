package v1

import (
	"time"

	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/aurora-energy/kplcgateway/internal/service"
)

// ResultResponse mirrors service.ParseResult on the wire. Estimated is the
// user-facing provenance flag: clients must render FALLBACK data as an
// estimate, never as a confirmed utility answer.
type ResultResponse struct {
	Provenance      string   `json:"provenance"`
	Estimated       bool     `json:"estimated"`
	Balance         *float64 `json:"balance,omitempty"`
	Units           *float64 `json:"units,omitempty"`
	TokenCode       *string  `json:"token_code,omitempty"`
	ReferenceNumber string   `json:"reference_number"`
	CurrentReading  *int64   `json:"current_reading,omitempty"`
	PreviousReading *int64   `json:"previous_reading,omitempty"`
	Consumption     *int64   `json:"consumption,omitempty"`
	BillAmount      *float64 `json:"bill_amount,omitempty"`
	DueDate         *string  `json:"due_date,omitempty"`
	AccountNumber   *string  `json:"account_number,omitempty"`
}

func newResultResponse(r service.ParseResult) ResultResponse {
	return ResultResponse{
		Provenance:      r.Provenance,
		Estimated:       r.Provenance == model.ProvenanceFallback,
		Balance:         r.Balance,
		Units:           r.Units,
		TokenCode:       r.TokenCode,
		ReferenceNumber: r.ReferenceNumber,
		CurrentReading:  r.CurrentReading,
		PreviousReading: r.PreviousReading,
		Consumption:     r.Consumption,
		BillAmount:      r.BillAmount,
		DueDate:         r.DueDate,
		AccountNumber:   r.AccountNumber,
	}
}

type CreateInquiryResponse struct {
	InquiryID int64  `json:"inquiry_id"`
	Status    string `json:"status"`
}

func newInquiryResponse(row *model.Inquiry) InquiryResponse {
	resp := InquiryResponse{
		InquiryID:       row.ID,
		ClientInquiryID: row.ClientInquiryID,
		Kind:            string(row.Kind),
		AccountNumber:   row.AccountNumber,
		Amount:          row.Amount,
		Status:          string(row.Status),
		CreatedAt:       row.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       row.UpdatedAt.Format(time.RFC3339),
	}

	if row.Provenance != nil {
		reference := ""
		if row.ReferenceNumber != nil {
			reference = *row.ReferenceNumber
		}
		resp.Result = &ResultResponse{
			Provenance:      *row.Provenance,
			Estimated:       *row.Provenance == model.ProvenanceFallback,
			Balance:         row.Balance,
			Units:           row.Units,
			TokenCode:       row.TokenCode,
			ReferenceNumber: reference,
			CurrentReading:  row.CurrentReading,
			BillAmount:      row.BillAmount,
			DueDate:         row.DueDate,
		}
	}

	return resp
}

type InquiryResponse struct {
	InquiryID       int64           `json:"inquiry_id"`
	ClientInquiryID string          `json:"client_inquiry_id"`
	Kind            string          `json:"kind"`
	AccountNumber   string          `json:"account_number"`
	Amount          *float64        `json:"amount,omitempty"`
	Status          string          `json:"status"`
	Result          *ResultResponse `json:"result,omitempty"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}
