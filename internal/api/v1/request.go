package v1

type BalanceRequest struct {
	AccountNumber string `json:"account_number"`
	Phone         string `json:"phone"`
}

type UnitsRequest struct {
	AccountNumber string `json:"account_number"`
	Phone         string `json:"phone"`
}

type LastPaymentRequest struct {
	AccountNumber string `json:"account_number"`
	Phone         string `json:"phone"`
}

type PurchaseRequest struct {
	AccountNumber string  `json:"account_number"`
	Amount        float64 `json:"amount"`
	Phone         string  `json:"phone"`
}

type CreateInquiryRequest struct {
	ClientInquiryID string   `json:"inquiry_id"`
	Kind            string   `json:"kind"`
	AccountNumber   string   `json:"account_number"`
	Amount          *float64 `json:"amount,omitempty"`
	Phone           string   `json:"phone"`
}

type InboundSMSRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Text      string `json:"text"`
	MessageID string `json:"message_id"`
}
